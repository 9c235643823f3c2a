package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleReview holds the structure for the vehiclereviews collection in mongo
type VehicleReview struct {
	ID         primitive.ObjectID   `json:"_id" bson:"_id"`
	Vehicle    primitive.ObjectID   `json:"vehicle" bson:"vehicle"`
	User       primitive.ObjectID   `json:"user" bson:"user"`
	Rental     *primitive.ObjectID  `json:"rental,omitempty" bson:"rental,omitempty"`
	Rating     int                  `json:"rating" bson:"rating"`
	Comment    string               `json:"comment" bson:"comment"`
	Categories []string             `json:"categories,omitempty" bson:"categories,omitempty"`
	Helpful    []primitive.ObjectID `json:"helpful" bson:"helpful"`
	CreatedAt  time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HotelReview holds the structure for the hotelreviews collection in mongo
type HotelReview struct {
	ID         primitive.ObjectID   `json:"_id" bson:"_id"`
	Hotel      primitive.ObjectID   `json:"hotel" bson:"hotel"`
	User       primitive.ObjectID   `json:"user" bson:"user"`
	Rating     int                  `json:"rating" bson:"rating"`
	Comment    string               `json:"comment" bson:"comment"`
	Categories []string             `json:"categories,omitempty" bson:"categories,omitempty"`
	Helpful    []primitive.ObjectID `json:"helpful" bson:"helpful"`
	Status     ReviewStatus         `json:"status" bson:"status"`
	CreatedAt  time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ReviewStatus is the moderation state of a hotel review
type ReviewStatus string

// Predefined ReviewStatus values
const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// IsValid checks if the ReviewStatus value is one of the predefined constants
func (s ReviewStatus) IsValid() bool {
	return s == ReviewStatusPending || s == ReviewStatusApproved || s == ReviewStatusRejected
}

// ReviewRequest is the body accepted when creating or editing a review
type ReviewRequest struct {
	Rating     int      `json:"rating"`
	Comment    string   `json:"comment"`
	Categories []string `json:"categories,omitempty"`
	RentalID   string   `json:"rentalId,omitempty"`
}

// ReviewStatusRequest is the body accepted when moderating a hotel review
type ReviewStatusRequest struct {
	Status ReviewStatus `json:"status"`
}

// Review ratings are whole stars in this range
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)
