package models

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// PackageBooking is a persisted package booking created from a submitted draft.
type PackageBooking struct {
	ID            int64           `json:"id"`
	Reference     string          `json:"reference"`
	UserID        int64           `json:"userId"`
	PackageID     int64           `json:"packageId"`
	PackageName   string          `json:"packageName"`
	ContactName   string          `json:"contactName"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Adults        int             `json:"adults"`
	Children      int             `json:"children"`
	Infants       int             `json:"infants"`
	Rooms         int             `json:"rooms"`
	Travelers     TravelerDetails `json:"travelerDetails"`
	PaymentMethod string          `json:"paymentMethod"`
	Services      []string        `json:"services"`
	Notes         string          `json:"notes"`
	TotalAmount   int64           `json:"totalAmount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type HotelBooking struct {
	ID              int64           `json:"id"`
	Reference       string          `json:"reference"`
	UserID          int64           `json:"userId"`
	HotelID         int64           `json:"hotelId"`
	HotelName       string          `json:"hotelName"`
	ContactName     string          `json:"contactName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	CheckIn         string          `json:"checkIn"`
	CheckOut        string          `json:"checkOut"`
	Rooms           int             `json:"rooms"`
	Adults          int             `json:"adults"`
	Children        int             `json:"children"`
	Infants         int             `json:"infants"`
	Travelers       TravelerDetails `json:"travelerDetails"`
	PaymentMethod   string          `json:"paymentMethod"`
	Services        []string        `json:"services"`
	SpecialRequests string          `json:"specialRequests"`
	TotalAmount     int64           `json:"totalAmount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type CustomUmrahRequest struct {
	ID            int64             `json:"id"`
	Reference     string            `json:"reference"`
	UserID        int64             `json:"userId"`
	ContactName   string            `json:"contactName"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	DepartureCity string            `json:"departureCity"`
	DepartureDate string            `json:"departureDate"`
	ReturnDate    string            `json:"returnDate"`
	Hotels        []HotelPreference `json:"hotels"`
	Adults        int               `json:"adults"`
	Children      int               `json:"children"`
	Infants       int               `json:"infants"`
	Travelers     TravelerDetails   `json:"travelerDetails"`
	Services      []string          `json:"services"`
	Budget        int64             `json:"budget"`
	Notes         string            `json:"notes"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// Confirmation is the flattened view rendered on confirmation PDFs.
type Confirmation struct {
	Kind        DraftKind
	Reference   string
	UserID      int64
	Title       string
	ContactName string
	Email       string
	Phone       string
	Lines       [][2]string
	Travelers   TravelerDetails
	TotalAmount int64
	Status      string
	CreatedAt   time.Time
}
