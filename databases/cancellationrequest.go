package databases

//go generate: mockery --name CancellationRequestDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/serendibgo/rental-api/models"
)

const cancellationRequestName = "cancellationrequests"

// CancellationRequestDatabase contains the methods to use with the cancellation request database
type CancellationRequestDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.CancellationRequest, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type cancellationRequestDatabase struct {
	db DatabaseHelper
}

// NewCancellationRequestDatabase initializes a new instance of cancellation request database with the provided db connection
func NewCancellationRequestDatabase(db DatabaseHelper) CancellationRequestDatabase {
	return &cancellationRequestDatabase{
		db: db,
	}
}

func (c *cancellationRequestDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.CancellationRequest, error) {
	var requests []models.CancellationRequest
	curr, err := c.db.Collection(cancellationRequestName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &requests)
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *cancellationRequestDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(cancellationRequestName).InsertOne(ctx, document, opts...)
}

func (c *cancellationRequestDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(cancellationRequestName).CountDocuments(ctx, filter, opts...)
}
