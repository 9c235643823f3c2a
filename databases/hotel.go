package databases

//go generate: mockery --name HotelDatabase
//go generate: mockery --name HotelBookingDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/serendibgo/rental-api/models"
)

const (
	hotelName        = "hotels"
	hotelBookingName = "bookings"
)

// HotelDatabase contains the methods to use with the hotel database
type HotelDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Hotel, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Hotel, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
}

// HotelBookingDatabase contains the methods to use with the hotel booking database
type HotelBookingDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.HotelBooking, error)
}

type hotelDatabase struct {
	db DatabaseHelper
}

type hotelBookingDatabase struct {
	db DatabaseHelper
}

// NewHotelDatabase initializes a new instance of hotel database with the provided db connection
func NewHotelDatabase(db DatabaseHelper) HotelDatabase {
	return &hotelDatabase{
		db: db,
	}
}

// NewHotelBookingDatabase initializes a new instance of hotel booking database with the provided db connection
func NewHotelBookingDatabase(db DatabaseHelper) HotelBookingDatabase {
	return &hotelBookingDatabase{
		db: db,
	}
}

func (c *hotelDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Hotel, error) {
	hotel := &models.Hotel{}
	err := c.db.Collection(hotelName).FindOne(ctx, filter, opts...).Decode(&hotel)
	if err != nil {
		return nil, err
	}
	return hotel, nil
}

func (c *hotelDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Hotel, error) {
	var hotels []models.Hotel
	curr, err := c.db.Collection(hotelName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &hotels)
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (c *hotelDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(hotelName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *hotelBookingDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.HotelBooking, error) {
	booking := &models.HotelBooking{}
	err := c.db.Collection(hotelBookingName).FindOne(ctx, filter, opts...).Decode(&booking)
	if err != nil {
		return nil, err
	}
	return booking, nil
}
