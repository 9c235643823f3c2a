package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleRental holds the structure for the vehiclerentals collection in mongo
type VehicleRental struct {
	ID              primitive.ObjectID  `json:"_id" bson:"_id"`
	Vehicle         primitive.ObjectID  `json:"vehicle" bson:"vehicle"`
	Renter          primitive.ObjectID  `json:"renter" bson:"renter"`
	Owner           primitive.ObjectID  `json:"owner" bson:"owner"`
	RentalType      RentalType          `json:"rentalType" bson:"rentalType"`
	StartDate       time.Time           `json:"startDate" bson:"startDate"`
	EndDate         time.Time           `json:"endDate" bson:"endDate"`
	Duration        int                 `json:"duration" bson:"duration"`
	PickupLocation  string              `json:"pickupLocation" bson:"pickupLocation"`
	DropoffLocation string              `json:"dropoffLocation,omitempty" bson:"dropoffLocation,omitempty"`
	DriverRequired  bool                `json:"driverRequired" bson:"driverRequired"`
	Insurance       bool                `json:"insurance" bson:"insurance"`
	SpecialRequests string              `json:"specialRequests,omitempty" bson:"specialRequests,omitempty"`
	Pricing         RentalPricing       `json:"pricing" bson:"pricing"`
	Payment         RentalPayment       `json:"payment" bson:"payment"`
	Status          RentalStatus        `json:"status" bson:"status"`
	Cancellation    *RentalCancellation `json:"cancellation,omitempty" bson:"cancellation,omitempty"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// RentalPricing is the price snapshot taken when the rental was created
type RentalPricing struct {
	BasePrice   float64 `json:"basePrice" bson:"basePrice"`
	Subtotal    float64 `json:"subtotal" bson:"subtotal"`
	TotalAmount float64 `json:"totalAmount" bson:"totalAmount"`
	Currency    string  `json:"currency" bson:"currency"`
}

// RentalPayment tracks how and whether the renter has paid
type RentalPayment struct {
	Method string `json:"method" bson:"method"`
	Status string `json:"status" bson:"status"` // pending, paid, refunded
}

// RentalCancellation records who cancelled a rental and why
type RentalCancellation struct {
	Reason      string             `json:"reason" bson:"reason"`
	CancelledBy primitive.ObjectID `json:"cancelledBy" bson:"cancelledBy"`
	CancelledAt time.Time          `json:"cancelledAt" bson:"cancelledAt"`
}

// Payment status values
const (
	PaymentStatusPending = "pending"
	PaymentMethodCash    = "cash"
)

// CreateRentalRequest is the body accepted by POST /rentals
type CreateRentalRequest struct {
	VehicleID       string     `json:"vehicleId"`
	RentalType      RentalType `json:"rentalType"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	Duration        int        `json:"duration"`
	PickupLocation  string     `json:"pickupLocation"`
	DropoffLocation string     `json:"dropoffLocation,omitempty"`
	DriverRequired  bool       `json:"driverRequired,omitempty"`
	Insurance       bool       `json:"insurance,omitempty"`
	SpecialRequests string     `json:"specialRequests,omitempty"`
	PaymentMethod   string     `json:"paymentMethod,omitempty"`
}

// CheckAvailabilityRequest is the body accepted by POST /rentals/check-availability
type CheckAvailabilityRequest struct {
	VehicleID string     `json:"vehicleId"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// AvailabilityResult is returned by the availability check
type AvailabilityResult struct {
	Available          bool  `json:"available"`
	ConflictingRentals int64 `json:"conflictingRentals"`
}

// CalculateCostRequest is the body accepted by POST /rentals/calculate-cost
type CalculateCostRequest struct {
	VehicleID      string     `json:"vehicleId"`
	RentalType     RentalType `json:"rentalType"`
	Duration       int        `json:"duration"`
	DriverRequired bool       `json:"driverRequired,omitempty"`
	Insurance      bool       `json:"insurance,omitempty"`
}

// CostQuote is the computed price of a prospective rental
type CostQuote struct {
	BaseAmount  float64       `json:"baseAmount"`
	TotalAmount float64       `json:"totalAmount"`
	Currency    string        `json:"currency"`
	Breakdown   CostBreakdown `json:"breakdown"`
}

// CostBreakdown itemises a CostQuote
type CostBreakdown struct {
	RentalType      RentalType `json:"rentalType"`
	UnitRate        float64    `json:"unitRate"`
	Duration        int        `json:"duration"`
	BaseAmount      float64    `json:"baseAmount"`
	DriverCharge    float64    `json:"driverCharge"`
	InsuranceCharge float64    `json:"insuranceCharge"`
}

// UpdateRentalStatusRequest is the body accepted by PATCH /rentals/{id}/status
type UpdateRentalStatusRequest struct {
	Status RentalStatus `json:"status"`
	Reason string       `json:"reason,omitempty"`
}

// CancelRentalRequest is the body accepted by PATCH /rentals/{id}/cancel
type CancelRentalRequest struct {
	Reason string `json:"reason"`
}

// RentalList is a page of rentals
type RentalList struct {
	Rentals    []VehicleRental `json:"rentals"`
	Pagination Pagination      `json:"pagination"`
}

// Pagination describes the page returned in a list response
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}
