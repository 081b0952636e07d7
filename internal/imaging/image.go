// Package imaging crops a user selected picture and re-encodes it for upload.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
)

// MaxSelectionBytes is the largest file accepted into the crop step.
const MaxSelectionBytes = 10 << 20

// JPEGQuality is used for every output that is not png or webp.
const JPEGQuality = 92

const (
	MIMEPNG  = "image/png"
	MIMEWebP = "image/webp"
	MIMEJPEG = "image/jpeg"
)

var (
	ErrNotImage = errors.New("imaging: not an image")
	ErrTooLarge = errors.New("imaging: file exceeds 10MB")
	ErrDecode   = errors.New("imaging: decode failed")
	ErrCanvas   = errors.New("imaging: invalid crop canvas")
	ErrEncode   = errors.New("imaging: encode failed")
)

// UserMessage maps the pipeline errors to the text shown next to the picker.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotImage):
		return "Please select an image file"
	case errors.Is(err, ErrTooLarge):
		return "Image must be 10MB or smaller"
	case errors.Is(err, ErrDecode):
		return "Could not read the selected image"
	case errors.Is(err, ErrCanvas):
		return "Could not prepare the cropped image"
	case errors.Is(err, ErrEncode):
		return "Could not encode the cropped image"
	default:
		return ""
	}
}

// CheckSelection gates a file before it enters the crop step.
func CheckSelection(contentType string, size int64) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return ErrNotImage
	}
	if size > MaxSelectionBytes {
		return ErrTooLarge
	}
	return nil
}

// Sniff returns the detected MIME type of the first bytes of a file.
func Sniff(head []byte) string {
	return mimetype.Detect(head).String()
}

// Decode reads a png, jpeg, gif or webp picture.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSelectionBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if int64(len(data)) > MaxSelectionBytes {
		return nil, ErrTooLarge
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrDecode, mt.String())
	}
	var img image.Image
	if mt.Is(MIMEWebP) {
		img, err = webp.Decode(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// CropRegion is a rectangle in source pixel space as reported by the cropper.
type CropRegion struct {
	X      float64 `json:"x" form:"x"`
	Y      float64 `json:"y" form:"y"`
	Width  float64 `json:"width" form:"width"`
	Height float64 `json:"height" form:"height"`
}

// Rect rounds the region to whole pixels.
func (r CropRegion) Rect() image.Rectangle {
	x, y := int(math.Round(r.X)), int(math.Round(r.Y))
	return image.Rect(x, y, x+int(math.Round(r.Width)), y+int(math.Round(r.Height)))
}

// Crop copies exactly the region onto a new canvas the size of the region.
func Crop(src image.Image, region CropRegion) (*image.RGBA, error) {
	if src == nil {
		return nil, ErrCanvas
	}
	rect := region.Rect()
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty region %v", ErrCanvas, rect)
	}
	b := src.Bounds()
	abs := rect.Add(b.Min)
	if !abs.In(b) {
		return nil, fmt.Errorf("%w: region %v outside %dx%d image", ErrCanvas, rect, b.Dx(), b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, abs.Min, draw.Src)
	return dst, nil
}

// NormalizeMIME keeps png and webp and maps everything else to jpeg.
func NormalizeMIME(requested string) string {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case MIMEPNG:
		return MIMEPNG
	case MIMEWebP:
		return MIMEWebP
	default:
		return MIMEJPEG
	}
}

// Extension is the file extension for a normalized MIME type.
func Extension(mime string) string {
	return strings.TrimPrefix(NormalizeMIME(mime), "image/")
}

// FileName names an avatar upload, e.g. avatar-1767225600000.png.
func FileName(mime string, now time.Time) string {
	return fmt.Sprintf("avatar-%d.%s", now.UnixMilli(), Extension(mime))
}

// Blob is an encoded picture ready to upload.
type Blob struct {
	MIME string
	Data []byte
}

func (b Blob) Size() int { return len(b.Data) }

// Encode serializes img in the normalized form of the requested type.
func Encode(img image.Image, requested string) (Blob, error) {
	if img == nil || img.Bounds().Empty() {
		return Blob{}, ErrCanvas
	}
	mime := NormalizeMIME(requested)
	var buf bytes.Buffer
	var err error
	switch mime {
	case MIMEPNG:
		err = png.Encode(&buf, img)
	case MIMEWebP:
		err = webp.Encode(&buf, img, &webp.Options{Quality: JPEGQuality})
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality})
	}
	if err != nil {
		return Blob{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return Blob{MIME: mime, Data: buf.Bytes()}, nil
}
