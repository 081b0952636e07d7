package utils

// Child and infant share of the adult fare, in percent.
const (
	childFarePercent  = 75
	infantFarePercent = 10
)

// ComputePartyFare returns the total fare for a travelling party based on the
// per-adult price. Children pay 75% and infants 10% of the adult fare.
func ComputePartyFare(adultPrice int64, adults, children, infants int) int64 {
	if adultPrice <= 0 {
		return 0
	}
	total := adultPrice * int64(max(adults, 0))
	total += adultPrice * int64(max(children, 0)) * childFarePercent / 100
	total += adultPrice * int64(max(infants, 0)) * infantFarePercent / 100
	return total
}

// ComputeStayFare returns nightly price * nights * rooms.
func ComputeStayFare(pricePerNight int64, nights, rooms int) int64 {
	if pricePerNight <= 0 || nights <= 0 || rooms <= 0 {
		return 0
	}
	return pricePerNight * int64(nights) * int64(rooms)
}
