package booking

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/serendibgo/rental-api/models"
)

// Interval is a closed date range
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether a and b share at least one instant, endpoints included
func Overlaps(a, b Interval) bool {
	return !a.Start.After(b.End) && !a.End.Before(b.Start)
}

// conflicts reports whether an existing rental blocks the candidate range
func conflicts(existing models.VehicleRental, candidate Interval) bool {
	return existing.Status.Blocks() && Overlaps(Interval{Start: existing.StartDate, End: existing.EndDate}, candidate)
}

// conflictFilter selects the rentals of vehicleID that conflicts would report
// for candidate. exclude, when set, leaves one rental out of the count.
func conflictFilter(vehicleID primitive.ObjectID, candidate Interval, exclude *primitive.ObjectID) bson.M {
	filter := bson.M{
		"vehicle":   vehicleID,
		"status":    bson.M{"$in": models.BlockingRentalStatuses()},
		"startDate": bson.M{"$lte": candidate.End},
		"endDate":   bson.M{"$gte": candidate.Start},
	}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}
	return filter
}
