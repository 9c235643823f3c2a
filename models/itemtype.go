package models

// BookingKind identifies which collection a BookingRef points into
type BookingKind string

// Predefined BookingKind values
const (
	BookingKindVehicleRental BookingKind = "vehicle_rental"
	BookingKindHotelBooking  BookingKind = "hotel_booking"
)

// ValidBookingKinds returns all valid BookingKind values
func ValidBookingKinds() []BookingKind {
	return []BookingKind{
		BookingKindVehicleRental,
		BookingKindHotelBooking,
	}
}

// IsValid checks if the BookingKind value is one of the predefined constants
func (k BookingKind) IsValid() bool {
	for _, validKind := range ValidBookingKinds() {
		if k == validKind {
			return true
		}
	}
	return false
}

// String returns the string representation of the BookingKind
func (k BookingKind) String() string {
	return string(k)
}
