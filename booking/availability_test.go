package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/serendibgo/rental-api/models"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"inside", Interval{day(1), day(10)}, Interval{day(3), day(4)}, true},
		{"straddles end", Interval{day(1), day(5)}, Interval{day(4), day(10)}, true},
		{"touching endpoints", Interval{day(1), day(5)}, Interval{day(5), day(8)}, true},
		{"disjoint", Interval{day(1), day(5)}, Interval{day(6), day(8)}, false},
		{"before", Interval{day(10), day(12)}, Interval{day(1), day(2)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, Overlaps(tt.a, tt.b), Overlaps(tt.b, tt.a))
		})
	}
}

func TestConflictsIgnoresNonBlockingStatuses(t *testing.T) {
	candidate := Interval{day(2), day(3)}
	for _, status := range []models.RentalStatus{
		models.RentalStatusPending,
		models.RentalStatusCancelled,
		models.RentalStatusCompleted,
		models.RentalStatusDisputed,
	} {
		existing := models.VehicleRental{Status: status, StartDate: day(1), EndDate: day(5)}
		assert.False(t, conflicts(existing, candidate), "status %s must not block", status)
	}
}

func TestConflictsConfirmedOverlap(t *testing.T) {
	existing := models.VehicleRental{Status: models.RentalStatusConfirmed, StartDate: day(1), EndDate: day(5)}

	assert.True(t, conflicts(existing, Interval{day(4), day(10)}))
	assert.False(t, conflicts(existing, Interval{day(6), day(10)}))
}

func TestConflictFilter(t *testing.T) {
	vehicleID := primitive.NewObjectID()
	rentalID := primitive.NewObjectID()

	filter := conflictFilter(vehicleID, Interval{day(4), day(10)}, &rentalID)

	assert.Equal(t, vehicleID, filter["vehicle"])
	assert.Equal(t, bson.M{"$in": []models.RentalStatus{models.RentalStatusConfirmed, models.RentalStatusActive}}, filter["status"])
	assert.Equal(t, bson.M{"$lte": day(10)}, filter["startDate"])
	assert.Equal(t, bson.M{"$gte": day(4)}, filter["endDate"])
	assert.Equal(t, bson.M{"$ne": rentalID}, filter["_id"])
}
