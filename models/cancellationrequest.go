package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CancellationRequest holds the structure for the cancellationrequests collection in mongo
type CancellationRequest struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Booking     BookingRef         `json:"booking" bson:"booking"`
	RequestedBy primitive.ObjectID `json:"requestedBy" bson:"requestedBy"`
	Reason      string             `json:"reason" bson:"reason"`
	Status      string             `json:"status" bson:"status"` // pending, approved, rejected
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BookingRef points at a booking of any kind
type BookingRef struct {
	Kind BookingKind        `json:"kind" bson:"kind"`
	ID   primitive.ObjectID `json:"id" bson:"id"`
}

// BookingSummary is the kind-independent view of a referenced booking
type BookingSummary struct {
	Ref      BookingRef         `json:"ref"`
	BookedBy primitive.ObjectID `json:"bookedBy"`
	Start    time.Time          `json:"start"`
	End      time.Time          `json:"end"`
	Status   string             `json:"status"`
	Closed   bool               `json:"closed"`
}

// CreateCancellationRequest is the body accepted by POST /cancellation-requests
type CreateCancellationRequest struct {
	BookingKind BookingKind `json:"bookingKind"`
	BookingID   string      `json:"bookingId"`
	Reason      string      `json:"reason"`
}

// SchedulerLock is a lease document guarding a scheduled job
type SchedulerLock struct {
	ID        string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	ExpiresAt time.Time `bson:"expiresAt"`
}
