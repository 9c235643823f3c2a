package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/serendibgo/rental-api/api"
	"github.com/serendibgo/rental-api/apperror"
	"github.com/serendibgo/rental-api/databases"
	"github.com/serendibgo/rental-api/models"
)

// Vehicle exists for handlers that act on vehicles directly
type Vehicle struct {
	DB databases.VehicleDatabase
}

// UpdateAvailabilityHandler lets a vehicle's owner take it off or put it back on the market
func (v Vehicle) UpdateAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperror.Validation("Invalid vehicle ID"))
		return
	}
	var req models.UpdateAvailabilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.IsAvailable == nil {
		writeError(w, apperror.Validation("isAvailable is required"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	vehicle, err := v.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Vehicle not found"))
			return
		}
		writeError(w, apperror.Internal(err, "Failed to load vehicle"))
		return
	}
	if vehicle.Owner != p.UserID && !p.IsAdmin() {
		writeError(w, apperror.Authorization("Not authorized to update this vehicle"))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	err = v.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"availability.isAvailable": *req.IsAvailable,
		"updatedAt":                now,
	}})
	if err != nil {
		writeError(w, apperror.Internal(err, "Failed to update vehicle availability"))
		return
	}
	zap.S().Infow("vehicle availability updated", "vehicleId", id.Hex(), "isAvailable", *req.IsAvailable, "by", p.UserID.Hex())

	vehicle.Availability.IsAvailable = *req.IsAvailable
	vehicle.UpdatedAt = now
	writeSuccess(w, http.StatusOK, "Vehicle availability updated", vehicle)
}
