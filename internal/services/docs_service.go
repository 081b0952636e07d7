package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService menghasilkan PDF konfirmasi untuk booking yang sudah tersimpan.
type DocsService struct {
	Bookings  BookingStore
	RequestID string
	Loader    func(ctx context.Context, kind models.DraftKind, id int64) (models.Confirmation, error)
}

// Confirmation renders the PDF for one booking. Bookings made while logged in
// are only visible to the same user or an admin.
func (s DocsService) Confirmation(ctx context.Context, kind models.DraftKind, id int64, viewer domain.RequestContext) ([]byte, string, error) {
	c, err := s.load(ctx, kind, id)
	if err != nil {
		return nil, "", err
	}
	if c.UserID != 0 && viewer.Role != domain.RoleAdmin && int64(viewer.UserID) != c.UserID {
		return nil, "", domain.NotFoundError{Resource: "booking"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("kind=%s id=%d", kind, id))
	return buildConfirmationPDF(c)
}

func (s DocsService) load(ctx context.Context, kind models.DraftKind, id int64) (models.Confirmation, error) {
	if s.Loader != nil {
		return s.Loader(ctx, kind, id)
	}
	return loadBooking(ctx, s.Bookings, kind, id)
}

// loadBooking reads any booking kind into its printable summary.
func loadBooking(ctx context.Context, store BookingStore, kind models.DraftKind, id int64) (models.Confirmation, error) {
	switch kind {
	case models.KindPackage:
		b, err := store.GetPackageBooking(ctx, id)
		if err != nil {
			return models.Confirmation{}, err
		}
		return packageConfirmation(b), nil
	case models.KindHotel:
		b, err := store.GetHotelBooking(ctx, id)
		if err != nil {
			return models.Confirmation{}, err
		}
		return hotelConfirmation(b), nil
	case models.KindCustom:
		q, err := store.GetCustomRequest(ctx, id)
		if err != nil {
			return models.Confirmation{}, err
		}
		return customConfirmation(q), nil
	}
	return models.Confirmation{}, domain.ValidationError{Field: "kind", Msg: "jenis booking tidak dikenal", Err: ErrUnknownDraft}
}

func partyLine(adults, children, infants int) string {
	return fmt.Sprintf("%d dewasa, %d anak, %d bayi", adults, children, infants)
}

func packageConfirmation(b models.PackageBooking) models.Confirmation {
	return models.Confirmation{
		Kind: models.KindPackage, Reference: b.Reference, UserID: b.UserID,
		Title:       "Umrah Package Booking",
		ContactName: b.ContactName, Email: b.Email, Phone: b.Phone,
		Lines: [][2]string{
			{"Paket", b.PackageName},
			{"Jamaah", partyLine(b.Adults, b.Children, b.Infants)},
			{"Kamar", strconv.Itoa(b.Rooms)},
			{"Pembayaran", b.PaymentMethod},
			{"Layanan", strings.Join(b.Services, ", ")},
			{"Catatan", b.Notes},
		},
		Travelers: b.Travelers, TotalAmount: b.TotalAmount, Status: b.Status, CreatedAt: b.CreatedAt,
	}
}

func hotelConfirmation(b models.HotelBooking) models.Confirmation {
	return models.Confirmation{
		Kind: models.KindHotel, Reference: b.Reference, UserID: b.UserID,
		Title:       "Hotel Booking",
		ContactName: b.ContactName, Email: b.Email, Phone: b.Phone,
		Lines: [][2]string{
			{"Hotel", b.HotelName},
			{"Check-in", utils.DateOnly(b.CheckIn)},
			{"Check-out", utils.DateOnly(b.CheckOut)},
			{"Kamar", strconv.Itoa(b.Rooms)},
			{"Tamu", partyLine(b.Adults, b.Children, b.Infants)},
			{"Pembayaran", b.PaymentMethod},
			{"Layanan", strings.Join(b.Services, ", ")},
			{"Permintaan", b.SpecialRequests},
		},
		Travelers: b.Travelers, TotalAmount: b.TotalAmount, Status: b.Status, CreatedAt: b.CreatedAt,
	}
}

func customConfirmation(q models.CustomUmrahRequest) models.Confirmation {
	lines := [][2]string{
		{"Berangkat dari", q.DepartureCity},
		{"Tanggal", utils.DateOnly(q.DepartureDate) + " s/d " + utils.DateOnly(q.ReturnDate)},
		{"Jamaah", partyLine(q.Adults, q.Children, q.Infants)},
	}
	for _, h := range q.Hotels {
		lines = append(lines, [2]string{"Hotel " + h.City, fmt.Sprintf("%s (%d bintang, %d malam)", safe(h.Hotel, "bebas"), h.Stars, h.Nights)})
	}
	lines = append(lines,
		[2]string{"Budget", utils.FormatRupiah(q.Budget)},
		[2]string{"Layanan", strings.Join(q.Services, ", ")},
		[2]string{"Catatan", q.Notes},
	)
	return models.Confirmation{
		Kind: models.KindCustom, Reference: q.Reference, UserID: q.UserID,
		Title:       "Custom Umrah Request",
		ContactName: q.ContactName, Email: q.Email, Phone: q.Phone,
		Lines:     lines,
		Travelers: q.Travelers, Status: q.Status, CreatedAt: q.CreatedAt,
	}
}

func buildConfirmationPDF(c models.Confirmation) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(c.Title, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, strings.ToUpper(safe(c.Title, "Booking")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Kode Booking : %s", safe(c.Reference, "-")),
		fmt.Sprintf("Status       : %s", safe(c.Status, "-")),
		fmt.Sprintf("Tanggal      : %s", utils.FormatDateTime(c.CreatedAt)),
		fmt.Sprintf("Kontak       : %s", safe(c.ContactName, "-")),
		fmt.Sprintf("Email / HP   : %s / %s", safe(c.Email, "-"), safe(c.Phone, "-")),
	}
	for _, s := range header {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range c.Lines {
		pdf.MultiCell(0, 6, fmt.Sprintf("%-14s : %s", l[0], safe(l[1], "-")), "", "", false)
	}

	if rows := travelerRows(c.Travelers); len(rows) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Data Jamaah:")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for i, r := range rows {
			pdf.Cell(0, 6, fmt.Sprintf("%d) %s", i+1, r))
			pdf.Ln(6)
		}
	}

	if c.TotalAmount > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Total: "+utils.FormatRupiah(c.TotalAmount))
		pdf.Ln(10)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Simpan dokumen ini sebagai bukti pemesanan. Tim kami akan menghubungi Anda untuk konfirmasi pembayaran.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("CONFIRMATION_%s_%s.pdf", strings.ToUpper(string(c.Kind)), utils.SafeFilenamePart(c.Reference))
	return buf.Bytes(), filename, nil
}

func travelerRows(d models.TravelerDetails) []string {
	var rows []string
	add := func(label string, list []models.Traveler) {
		for _, t := range list {
			row := fmt.Sprintf("%s - %s", safe(t.Name, "-"), label)
			if t.PassportNumber != "" {
				row += ", paspor " + t.PassportNumber
			}
			rows = append(rows, row)
		}
	}
	add("dewasa", d.Adults)
	add("anak", d.Children)
	add("bayi", d.Infants)
	return rows
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
