package models

// Package is an Umrah package offered in the catalog. Price is per adult.
type Package struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	DurationDays  int    `json:"durationDays"`
	DepartureDate string `json:"departureDate"`
	DepartureCity string `json:"departureCity"`
	Airline       string `json:"airline"`
	MakkahHotel   string `json:"makkahHotel"`
	MadinahHotel  string `json:"madinahHotel"`
	Price         int64  `json:"price"`
	Seats         int    `json:"seats"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl"`
	Status        string `json:"status"`
}

type Hotel struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	City          string `json:"city"`
	Stars         int    `json:"stars"`
	PricePerNight int64  `json:"pricePerNight"`
	Address       string `json:"address"`
	DistanceHaram string `json:"distanceToHaram"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl"`
}

// AdditionalService is an add-on (visa handling, airport transfer, ziarah tour).
type AdditionalService struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Option categories stored in form_options.category.
const (
	OptionNationality   = "nationality"
	OptionPaymentMethod = "payment_method"
	OptionDepartureCity = "departure_city"
	OptionGender        = "gender"
)

// FormOptions feeds the select inputs of every wizard.
type FormOptions struct {
	Nationalities   []Option `json:"nationalities"`
	PaymentMethods  []Option `json:"paymentMethods"`
	DepartureCities []Option `json:"departureCities"`
	Genders         []Option `json:"genders"`
}

// Values lists the option values for membership checks.
func Values(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value)
	}
	return out
}
