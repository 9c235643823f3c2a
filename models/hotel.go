package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hotel holds the fields of the hotels collection this service reads or writes
type Hotel struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner"`
	Name      string             `json:"name" bson:"name"`
	Rating    Rating             `json:"rating" bson:"rating"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// HotelBooking holds the fields of the bookings collection needed to resolve
// a cancellation request
type HotelBooking struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Hotel    primitive.ObjectID `json:"hotel" bson:"hotel"`
	User     primitive.ObjectID `json:"user" bson:"user"`
	CheckIn  time.Time          `json:"checkIn" bson:"checkIn"`
	CheckOut time.Time          `json:"checkOut" bson:"checkOut"`
	Status   string             `json:"status" bson:"status"`
}
