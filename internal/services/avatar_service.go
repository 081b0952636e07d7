package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"travelportal/internal/domain"
	"travelportal/internal/imaging"
	"travelportal/internal/storage"
	"travelportal/internal/utils"
)

// ProfileStore saves the avatar URL on the user's profile.
type ProfileStore interface {
	UpdateAvatar(ctx context.Context, userID int64, url string) error
}

// AvatarInput is one selected picture plus the crop the user confirmed.
type AvatarInput struct {
	ContentType string
	Size        int64
	Body        io.Reader
	Region      imaging.CropRegion
	// OutputMIME is the type the client asked for; empty keeps the source type.
	OutputMIME string
}

type AvatarService struct {
	Uploader  storage.Uploader
	Profiles  ProfileStore
	Folder    string
	TempDir   string
	Now       func() time.Time
	RequestID string
}

func (s AvatarService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AvatarService) folder() string {
	if s.Folder != "" {
		return s.Folder
	}
	return "avatars"
}

// CropAndUpload runs select, crop, encode, upload and profile update once.
// Nothing is retried; the staged copy is always released.
func (s AvatarService) CropAndUpload(ctx context.Context, userID int64, in AvatarInput) (string, error) {
	if err := imaging.CheckSelection(in.ContentType, in.Size); err != nil {
		return "", domain.ValidationError{Field: "file", Msg: imaging.UserMessage(err), Err: err}
	}

	slot := &imaging.PreviewSlot{Dir: s.TempDir}
	defer slot.Close()
	if _, err := slot.Replace(in.Body); err != nil {
		return "", fmt.Errorf("stage avatar: %w", err)
	}
	f, err := slot.Open()
	if err != nil {
		return "", fmt.Errorf("stage avatar: %w", err)
	}
	src, err := imaging.Decode(f)
	f.Close()
	if err != nil {
		return "", s.reject("decode", err)
	}

	cropped, err := imaging.Crop(src, in.Region)
	if err != nil {
		return "", s.reject("crop", err)
	}
	want := in.OutputMIME
	if want == "" {
		want = in.ContentType
	}
	blob, err := imaging.Encode(cropped, want)
	if err != nil {
		return "", s.reject("encode", err)
	}

	url, err := s.Uploader.Upload(ctx, storage.File{
		Name:        imaging.FileName(blob.MIME, s.now()),
		ContentType: blob.MIME,
		Folder:      s.folder(),
		Body:        bytes.NewReader(blob.Data),
	})
	if err != nil {
		utils.LogError(s.RequestID, "avatar", "upload", err)
		if !errors.Is(err, storage.ErrUpload) {
			err = fmt.Errorf("%w: %v", storage.ErrUpload, err)
		}
		return "", err
	}
	if err := s.Profiles.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "avatar", "update", fmt.Sprintf("user_id=%d mime=%s bytes=%d", userID, blob.MIME, blob.Size()))
	return url, nil
}

func (s AvatarService) reject(action string, err error) error {
	utils.LogEvent(s.RequestID, "avatar", action, err.Error())
	return domain.ValidationError{Field: "file", Msg: imaging.UserMessage(err), Err: err}
}
