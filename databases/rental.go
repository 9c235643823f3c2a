package databases

//go generate: mockery --name RentalDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/serendibgo/rental-api/models"
)

const rentalName = "vehiclerentals"

// RentalDatabase contains the methods to use with the vehicle rental database.
// UpdateOne returns mongo.ErrNoDocuments when its filter matched nothing.
type RentalDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.VehicleRental, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleRental, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	UpdateMany(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (int64, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type rentalDatabase struct {
	db DatabaseHelper
}

// NewRentalDatabase initializes a new instance of rental database with the provided db connection
func NewRentalDatabase(db DatabaseHelper) RentalDatabase {
	return &rentalDatabase{
		db: db,
	}
}

func (c *rentalDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.VehicleRental, error) {
	rental := &models.VehicleRental{}
	err := c.db.Collection(rentalName).FindOne(ctx, filter, opts...).Decode(&rental)
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (c *rentalDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VehicleRental, error) {
	var rentals []models.VehicleRental
	curr, err := c.db.Collection(rentalName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &rentals)
	if err != nil {
		return nil, err
	}
	return rentals, nil
}

func (c *rentalDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := c.db.Collection(rentalName).InsertOne(ctx, document, opts...)
	return res, err
}

func (c *rentalDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	res, err := c.db.Collection(rentalName).UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (c *rentalDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error) {
	res, err := c.db.Collection(rentalName).UpdateMany(ctx, filter, update, opts...)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (c *rentalDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(rentalName).CountDocuments(ctx, filter, opts...)
}
