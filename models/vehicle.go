package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Vehicle holds the structure for the vehicles collection in mongo
type Vehicle struct {
	ID           primitive.ObjectID  `json:"_id" bson:"_id"`
	Owner        primitive.ObjectID  `json:"owner" bson:"owner"`
	Make         string              `json:"make" bson:"make"`
	Model        string              `json:"model" bson:"model"`
	Year         int                 `json:"year,omitempty" bson:"year,omitempty"`
	VehicleType  string              `json:"vehicleType,omitempty" bson:"vehicleType,omitempty"`
	Seats        int                 `json:"seats,omitempty" bson:"seats,omitempty"`
	Pricing      Tariff              `json:"pricing" bson:"pricing"`
	Availability VehicleAvailability `json:"availability" bson:"availability"`
	Rating       Rating              `json:"rating" bson:"rating"`
	BookingSeq   int64               `json:"-" bson:"bookingSeq"`
	CreatedAt    primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// Tariff is the per-unit price schedule of a vehicle. A zero rate means the
// owner does not offer that rental type.
type Tariff struct {
	Hourly       float64 `json:"hourly" bson:"hourly"`
	Daily        float64 `json:"daily" bson:"daily"`
	Weekly       float64 `json:"weekly" bson:"weekly"`
	Monthly      float64 `json:"monthly" bson:"monthly"`
	Currency     string  `json:"currency" bson:"currency"`
	DriverFee    float64 `json:"driverFee,omitempty" bson:"driverFee,omitempty"`
	InsuranceFee float64 `json:"insuranceFee,omitempty" bson:"insuranceFee,omitempty"`
}

// Rate returns the unit price for the given rental type, or 0 when the
// tariff has no entry for it.
func (t Tariff) Rate(rt RentalType) float64 {
	switch rt {
	case RentalTypeHourly:
		return t.Hourly
	case RentalTypeDaily:
		return t.Daily
	case RentalTypeWeekly:
		return t.Weekly
	case RentalTypeMonthly:
		return t.Monthly
	}
	return 0
}

// VehicleAvailability holds the owner controlled availability toggle
type VehicleAvailability struct {
	IsAvailable bool `json:"isAvailable" bson:"isAvailable"`
}

// Rating is the cached aggregate of an asset's reviews
type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

// UpdateAvailabilityRequest is the body accepted when an owner toggles a vehicle
type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}
