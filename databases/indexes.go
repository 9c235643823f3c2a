package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the rental and review flows rely on. The
// review indexes enforce one review per user and asset.
func EnsureIndexes(ctx context.Context, db DatabaseHelper) error {
	indexes := map[string][]mongo.IndexModel{
		rentalName: {
			{Keys: bson.D{{Key: "vehicle", Value: 1}, {Key: "status", Value: 1}, {Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}}},
			{Keys: bson.D{{Key: "renter", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		vehicleReviewName: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "vehicle", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		hotelReviewName: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "hotel", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "hotel", Value: 1}, {Key: "status", Value: 1}}},
		},
		cancellationRequestName: {
			{Keys: bson.D{{Key: "booking.kind", Value: 1}, {Key: "booking.id", Value: 1}, {Key: "status", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if err := db.Collection(name).CreateIndexes(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
