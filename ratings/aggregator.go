// Package ratings keeps the denormalized rating summary on vehicles and
// hotels in step with their reviews.
package ratings

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/serendibgo/rental-api/databases"
	"github.com/serendibgo/rental-api/models"
)

// Aggregator recomputes rating summaries from the review collections
type Aggregator struct {
	VehicleReviews databases.VehicleReviewDatabase
	HotelReviews   databases.HotelReviewDatabase
	Vehicles       databases.VehicleDatabase
	Hotels         databases.HotelDatabase
}

// Summarize averages ratings to one decimal place. No ratings yields a zero summary.
func Summarize(ratings []int) models.Rating {
	if len(ratings) == 0 {
		return models.Rating{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return models.Rating{
		Average: math.Round(mean*10) / 10,
		Count:   len(ratings),
	}
}

// RecomputeVehicle refreshes a vehicle's rating from all of its reviews.
// Failures are logged and never returned; the review write that triggered
// the recompute has already succeeded.
func (a *Aggregator) RecomputeVehicle(ctx context.Context, vehicleID primitive.ObjectID) {
	if _, err := a.recomputeVehicle(ctx, vehicleID); err != nil {
		zap.S().Errorw("failed to recompute vehicle rating", "vehicleId", vehicleID.Hex(), "error", err)
	}
}

// RecomputeHotel refreshes a hotel's rating from its approved reviews.
// Failures are logged and never returned.
func (a *Aggregator) RecomputeHotel(ctx context.Context, hotelID primitive.ObjectID) {
	if _, err := a.recomputeHotel(ctx, hotelID); err != nil {
		zap.S().Errorw("failed to recompute hotel rating", "hotelId", hotelID.Hex(), "error", err)
	}
}

func (a *Aggregator) recomputeVehicle(ctx context.Context, vehicleID primitive.ObjectID) (models.Rating, error) {
	reviews, err := a.VehicleReviews.Find(ctx, bson.M{"vehicle": vehicleID}, ratingProjection())
	if err != nil {
		return models.Rating{}, errors.Wrap(err, "loading vehicle reviews")
	}
	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}

	summary := Summarize(ratings)
	err = a.Vehicles.UpdateOne(ctx, bson.M{"_id": vehicleID}, ratingUpdate(summary))
	if err != nil {
		return summary, errors.Wrap(err, "saving vehicle rating")
	}
	return summary, nil
}

func (a *Aggregator) recomputeHotel(ctx context.Context, hotelID primitive.ObjectID) (models.Rating, error) {
	reviews, err := a.HotelReviews.Find(ctx, bson.M{"hotel": hotelID, "status": models.ReviewStatusApproved}, ratingProjection())
	if err != nil {
		return models.Rating{}, errors.Wrap(err, "loading hotel reviews")
	}
	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}

	summary := Summarize(ratings)
	err = a.Hotels.UpdateOne(ctx, bson.M{"_id": hotelID}, ratingUpdate(summary))
	if err != nil {
		return summary, errors.Wrap(err, "saving hotel rating")
	}
	return summary, nil
}

// ReconcileAll recomputes every vehicle and hotel rating. A failure on one
// asset is logged and the sweep moves on; only failing to list the assets
// aborts it.
func (a *Aggregator) ReconcileAll(ctx context.Context) (vehicles, hotels int, err error) {
	idOnly := options.Find().SetProjection(bson.M{"_id": 1})

	vs, err := a.Vehicles.Find(ctx, bson.M{}, idOnly)
	if err != nil {
		return 0, 0, errors.Wrap(err, "listing vehicles")
	}
	for _, v := range vs {
		if ctx.Err() != nil {
			return vehicles, hotels, ctx.Err()
		}
		if _, err := a.recomputeVehicle(ctx, v.ID); err != nil {
			zap.S().Errorw("failed to reconcile vehicle rating", "vehicleId", v.ID.Hex(), "error", err)
			continue
		}
		vehicles++
	}

	hs, err := a.Hotels.Find(ctx, bson.M{}, idOnly)
	if err != nil {
		return vehicles, 0, errors.Wrap(err, "listing hotels")
	}
	for _, h := range hs {
		if ctx.Err() != nil {
			return vehicles, hotels, ctx.Err()
		}
		if _, err := a.recomputeHotel(ctx, h.ID); err != nil {
			zap.S().Errorw("failed to reconcile hotel rating", "hotelId", h.ID.Hex(), "error", err)
			continue
		}
		hotels++
	}

	zap.S().Infow("ratings reconciled", "vehicles", vehicles, "hotels", hotels)
	return vehicles, hotels, nil
}

func ratingProjection() *options.FindOptions {
	return options.Find().SetProjection(bson.M{"rating": 1})
}

func ratingUpdate(r models.Rating) bson.M {
	return bson.M{"$set": bson.M{
		"rating.average": r.Average,
		"rating.count":   r.Count,
	}}
}
