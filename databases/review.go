package databases

//go generate: mockery --name VehicleReviewDatabase
//go generate: mockery --name HotelReviewDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/serendibgo/rental-api/models"
)

const (
	vehicleReviewName = "vehiclereviews"
	hotelReviewName   = "hotelreviews"
)

// VehicleReviewDatabase contains the methods to use with the vehicle review database
type VehicleReviewDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.VehicleReview, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleReview, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

// HotelReviewDatabase contains the methods to use with the hotel review database
type HotelReviewDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.HotelReview, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.HotelReview, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type vehicleReviewDatabase struct {
	db DatabaseHelper
}

type hotelReviewDatabase struct {
	db DatabaseHelper
}

// NewVehicleReviewDatabase initializes a new instance of vehicle review database with the provided db connection
func NewVehicleReviewDatabase(db DatabaseHelper) VehicleReviewDatabase {
	return &vehicleReviewDatabase{
		db: db,
	}
}

// NewHotelReviewDatabase initializes a new instance of hotel review database with the provided db connection
func NewHotelReviewDatabase(db DatabaseHelper) HotelReviewDatabase {
	return &hotelReviewDatabase{
		db: db,
	}
}

func (c *vehicleReviewDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.VehicleReview, error) {
	review := &models.VehicleReview{}
	err := c.db.Collection(vehicleReviewName).FindOne(ctx, filter, opts...).Decode(&review)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (c *vehicleReviewDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleReview, error) {
	var reviews []models.VehicleReview
	curr, err := c.db.Collection(vehicleReviewName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *vehicleReviewDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(vehicleReviewName).InsertOne(ctx, document, opts...)
}

func (c *vehicleReviewDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(vehicleReviewName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *vehicleReviewDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	_, err := c.db.Collection(vehicleReviewName).DeleteOne(ctx, filter, opts...)
	return err
}

func (c *hotelReviewDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.HotelReview, error) {
	review := &models.HotelReview{}
	err := c.db.Collection(hotelReviewName).FindOne(ctx, filter, opts...).Decode(&review)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (c *hotelReviewDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.HotelReview, error) {
	var reviews []models.HotelReview
	curr, err := c.db.Collection(hotelReviewName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *hotelReviewDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(hotelReviewName).InsertOne(ctx, document, opts...)
}

func (c *hotelReviewDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(hotelReviewName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *hotelReviewDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	_, err := c.db.Collection(hotelReviewName).DeleteOne(ctx, filter, opts...)
	return err
}
