package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
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

// RatingRecomputer refreshes the rating summary of a reviewed asset
type RatingRecomputer interface {
	RecomputeVehicle(ctx context.Context, vehicleID primitive.ObjectID)
	RecomputeHotel(ctx context.Context, hotelID primitive.ObjectID)
}

// Review holds the databases for vehicle and hotel reviews
type Review struct {
	Vehicles       databases.VehicleDatabase
	Hotels         databases.HotelDatabase
	Rentals        databases.RentalDatabase
	VehicleReviews databases.VehicleReviewDatabase
	HotelReviews   databases.HotelReviewDatabase
	Ratings        RatingRecomputer
}

// VehicleReviewsHandler lists the reviews of a vehicle, newest first
func (rv Review) VehicleReviewsHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id", "vehicle")
	if err != nil {
		writeError(w, err)
		return
	}
	page, limit := pageParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reviews, err := rv.VehicleReviews.Find(ctx, bson.M{"vehicle": vehicleID}, databases.NewPaginate(limit, page).GetPaginatedOpts())
	if err != nil {
		writeError(w, apperror.Internal(err, "Failed to get reviews"))
		return
	}
	if reviews == nil {
		reviews = []models.VehicleReview{}
	}
	writeSuccess(w, http.StatusOK, "", reviews)
}

// CreateVehicleReviewHandler adds the caller's review of a vehicle
func (rv Review) CreateVehicleReviewHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	vehicleID, err := pathID(r, "id", "vehicle")
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateReview(req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := rv.Vehicles.FindOne(ctx, bson.M{"_id": vehicleID}); err != nil {
		writeError(w, notFoundOr(err, "Vehicle not found", "Failed to load vehicle"))
		return
	}

	now := time.Now()
	review := models.VehicleReview{
		ID:         primitive.NewObjectID(),
		Vehicle:    vehicleID,
		User:       p.UserID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		Categories: req.Categories,
		Helpful:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.RentalID != "" {
		rentalID, err := rv.reviewedRental(ctx, req.RentalID, vehicleID, p.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		review.Rental = &rentalID
	}

	if _, err := rv.VehicleReviews.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, apperror.Validation("You have already reviewed this vehicle"))
			return
		}
		writeError(w, apperror.Internal(err, "Failed to create review"))
		return
	}
	zap.S().Infow("vehicle review created", "reviewId", review.ID.Hex(), "vehicleId", vehicleID.Hex(), "userId", p.UserID.Hex())

	rv.Ratings.RecomputeVehicle(ctx, vehicleID)
	writeSuccess(w, http.StatusCreated, "Review created successfully", review)
}

// UpdateVehicleReviewHandler edits a vehicle review. Only its author or an admin may edit it.
func (rv Review) UpdateVehicleReviewHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	vehicleID, reviewID, err := reviewPath(r, "vehicle")
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateReview(req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	review, err := rv.VehicleReviews.FindOne(ctx, bson.M{"_id": reviewID, "vehicle": vehicleID})
	if err != nil {
		writeError(w, notFoundOr(err, "Review not found", "Failed to load review"))
		return
	}
	if review.User != p.UserID && !p.IsAdmin() {
		writeError(w, apperror.Authorization("Not authorized to update this review"))
		return
	}

	review.Rating = req.Rating
	review.Comment = strings.TrimSpace(req.Comment)
	review.Categories = req.Categories
	review.UpdatedAt = time.Now()
	err = rv.VehicleReviews.UpdateOne(ctx, bson.M{"_id": review.ID}, bson.M{"$set": bson.M{
		"rating":     review.Rating,
		"comment":    review.Comment,
		"categories": review.Categories,
		"updatedAt":  review.UpdatedAt,
	}})
	if err != nil {
		writeError(w, apperror.Internal(err, "Failed to update review"))
		return
	}

	rv.Ratings.RecomputeVehicle(ctx, vehicleID)
	writeSuccess(w, http.StatusOK, "Review updated successfully", review)
}

// DeleteVehicleReviewHandler removes a vehicle review. Only its author or an admin may remove it.
func (rv Review) DeleteVehicleReviewHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	vehicleID, reviewID, err := reviewPath(r, "vehicle")
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	review, err := rv.VehicleReviews.FindOne(ctx, bson.M{"_id": reviewID, "vehicle": vehicleID})
	if err != nil {
		writeError(w, notFoundOr(err, "Review not found", "Failed to load review"))
		return
	}
	if review.User != p.UserID && !p.IsAdmin() {
		writeError(w, apperror.Authorization("Not authorized to delete this review"))
		return
	}
	if err := rv.VehicleReviews.DeleteOne(ctx, bson.M{"_id": review.ID}); err != nil {
		writeError(w, apperror.Internal(err, "Failed to delete review"))
		return
	}

	rv.Ratings.RecomputeVehicle(ctx, vehicleID)
	writeSuccess(w, http.StatusOK, "Review deleted successfully", nil)
}

// HotelReviewsHandler lists the approved reviews of a hotel. Moderators may
// pass a status query value to see pending or rejected ones.
func (rv Review) HotelReviewsHandler(w http.ResponseWriter, r *http.Request) {
	hotelID, err := pathID(r, "id", "hotel")
	if err != nil {
		writeError(w, err)
		return
	}
	status := models.ReviewStatusApproved
	if s := models.ReviewStatus(r.URL.Query().Get("status")); s != "" {
		p, _ := api.PrincipalFrom(r.Context())
		if !p.Role.IsModerator() {
			writeError(w, apperror.Authorization("Only moderators can list unapproved reviews"))
			return
		}
		if !s.IsValid() {
			writeError(w, apperror.Validation(fmt.Sprintf("Invalid review status %q", s)))
			return
		}
		status = s
	}
	page, limit := pageParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reviews, err := rv.HotelReviews.Find(ctx, bson.M{"hotel": hotelID, "status": status}, databases.NewPaginate(limit, page).GetPaginatedOpts())
	if err != nil {
		writeError(w, apperror.Internal(err, "Failed to get reviews"))
		return
	}
	if reviews == nil {
		reviews = []models.HotelReview{}
	}
	writeSuccess(w, http.StatusOK, "", reviews)
}

// CreateHotelReviewHandler adds the caller's review of a hotel. It counts
// toward the hotel's rating once a moderator approves it.
func (rv Review) CreateHotelReviewHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	hotelID, err := pathID(r, "id", "hotel")
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateReview(req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := rv.Hotels.FindOne(ctx, bson.M{"_id": hotelID}); err != nil {
		writeError(w, notFoundOr(err, "Hotel not found", "Failed to load hotel"))
		return
	}

	now := time.Now()
	review := models.HotelReview{
		ID:         primitive.NewObjectID(),
		Hotel:      hotelID,
		User:       p.UserID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		Categories: req.Categories,
		Helpful:    []primitive.ObjectID{},
		Status:     models.ReviewStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := rv.HotelReviews.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, apperror.Validation("You have already reviewed this hotel"))
			return
		}
		writeError(w, apperror.Internal(err, "Failed to create review"))
		return
	}
	zap.S().Infow("hotel review created", "reviewId", review.ID.Hex(), "hotelId", hotelID.Hex(), "userId", p.UserID.Hex())

	rv.Ratings.RecomputeHotel(ctx, hotelID)
	writeSuccess(w, http.StatusCreated, "Review submitted for moderation", review)
}

// UpdateHotelReviewHandler edits a hotel review and sends it back to moderation
func (rv Review) UpdateHotelReviewHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	hotelID, reviewID, err := reviewPath(r, "hotel")
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateReview(req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	review, err := rv.HotelReviews.FindOne(ctx, bson.M{"_id": reviewID, "hotel": hotelID})
	if err != nil {
		writeError(w, notFoundOr(err, "Review not found", "Failed to load review"))
		return
	}
	if review.User != p.UserID && !p.IsAdmin() {
		writeError(w, apperror.Authorization("Not authorized to update this review"))
		return
	}

	review.Rating = req.Rating
	review.Comment = strings.TrimSpace(req.Comment)
	review.Categories = req.Categories
	review.Status = models.ReviewStatusPending
	review.UpdatedAt = time.Now()
	err = rv.HotelReviews.UpdateOne(ctx, bson.M{"_id": review.ID}, bson.M{"$set": bson.M{
		"rating":     review.Rating,
		"comment":    review.Comment,
		"categories": review.Categories,
		"status":     review.Status,
		"updatedAt":  review.UpdatedAt,
	}})
	if err != nil {
		writeError(w, apperror.Internal(err, "Failed to update review"))
		return
	}

	rv.Ratings.RecomputeHotel(ctx, hotelID)
	writeSuccess(w, http.StatusOK, "Review updated successfully", review)
}

// DeleteHotelReviewHandler removes a hotel review. Only its author or an admin may remove it.
func (rv Review) DeleteHotelReviewHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	hotelID, reviewID, err := reviewPath(r, "hotel")
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	review, err := rv.HotelReviews.FindOne(ctx, bson.M{"_id": reviewID, "hotel": hotelID})
	if err != nil {
		writeError(w, notFoundOr(err, "Review not found", "Failed to load review"))
		return
	}
	if review.User != p.UserID && !p.IsAdmin() {
		writeError(w, apperror.Authorization("Not authorized to delete this review"))
		return
	}
	if err := rv.HotelReviews.DeleteOne(ctx, bson.M{"_id": review.ID}); err != nil {
		writeError(w, apperror.Internal(err, "Failed to delete review"))
		return
	}

	rv.Ratings.RecomputeHotel(ctx, hotelID)
	writeSuccess(w, http.StatusOK, "Review deleted successfully", nil)
}

// UpdateHotelReviewStatusHandler approves or rejects a hotel review
func (rv Review) UpdateHotelReviewStatusHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	if !p.Role.IsModerator() {
		writeError(w, apperror.Authorization("Only moderators can change review status"))
		return
	}
	hotelID, reviewID, err := reviewPath(r, "hotel")
	if err != nil {
		writeError(w, err)
		return
	}
	var req models.ReviewStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !req.Status.IsValid() {
		writeError(w, apperror.Validation(fmt.Sprintf("Invalid review status %q", req.Status)))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	review, err := rv.HotelReviews.FindOne(ctx, bson.M{"_id": reviewID, "hotel": hotelID})
	if err != nil {
		writeError(w, notFoundOr(err, "Review not found", "Failed to load review"))
		return
	}

	review.Status = req.Status
	review.UpdatedAt = time.Now()
	err = rv.HotelReviews.UpdateOne(ctx, bson.M{"_id": review.ID}, bson.M{"$set": bson.M{
		"status":    review.Status,
		"updatedAt": review.UpdatedAt,
	}})
	if err != nil {
		writeError(w, apperror.Internal(err, "Failed to update review status"))
		return
	}
	zap.S().Infow("hotel review moderated", "reviewId", review.ID.Hex(), "status", review.Status, "by", p.UserID.Hex())

	rv.Ratings.RecomputeHotel(ctx, hotelID)
	writeSuccess(w, http.StatusOK, "Review status updated successfully", review)
}

// reviewedRental checks that a review's rental was a rental of vehicleID by userID
func (rv Review) reviewedRental(ctx context.Context, hexID string, vehicleID, userID primitive.ObjectID) (primitive.ObjectID, error) {
	rentalID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, apperror.Validation("Invalid rental ID")
	}
	_, err = rv.Rentals.FindOne(ctx, bson.M{"_id": rentalID, "vehicle": vehicleID, "renter": userID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, apperror.Validation("Rental does not belong to you or this vehicle")
		}
		return primitive.NilObjectID, apperror.Internal(err, "Failed to load rental")
	}
	return rentalID, nil
}

func validateReview(req models.ReviewRequest) error {
	if req.Rating < models.MinReviewRating || req.Rating > models.MaxReviewRating {
		return apperror.Validation(fmt.Sprintf("Rating must be between %d and %d", models.MinReviewRating, models.MaxReviewRating))
	}
	return nil
}

func pathID(r *http.Request, key, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[key])
	if err != nil {
		return primitive.NilObjectID, apperror.Validation(fmt.Sprintf("Invalid %s ID", what))
	}
	return id, nil
}

func reviewPath(r *http.Request, what string) (assetID, reviewID primitive.ObjectID, err error) {
	if assetID, err = pathID(r, "id", what); err != nil {
		return
	}
	reviewID, err = pathID(r, "reviewId", "review")
	return
}

func notFoundOr(err error, notFound, internal string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.NotFound(notFound)
	}
	return apperror.Internal(err, internal)
}
