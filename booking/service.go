// Package booking prices vehicle rentals, checks them against a vehicle's
// calendar and drives their status from request to completion.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/serendibgo/rental-api/apperror"
	"github.com/serendibgo/rental-api/databases"
	"github.com/serendibgo/rental-api/models"
)

// Notifier is told about rental events. Implementations must not fail the
// caller; delivery problems are theirs to log.
type Notifier interface {
	RentalRequested(ctx context.Context, rental models.VehicleRental, vehicle models.Vehicle, renter models.User)
	RentalStatusChanged(ctx context.Context, rental models.VehicleRental)
}

// Service exposes the rental lifecycle
type Service struct {
	Vehicles databases.VehicleDatabase
	Rentals  databases.RentalDatabase
	Users    databases.UserDatabase
	Tx       databases.Transactor
	Notifier Notifier
	Now      func() time.Time
}

// NewService wires a Service with the wall clock
func NewService(vehicles databases.VehicleDatabase, rentals databases.RentalDatabase, users databases.UserDatabase, tx databases.Transactor, notifier Notifier) *Service {
	return &Service{
		Vehicles: vehicles,
		Rentals:  rentals,
		Users:    users,
		Tx:       tx,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// CheckAvailability counts the confirmed or active rentals of a vehicle that
// overlap the requested range. The vehicle's own availability toggle is not
// consulted here.
func (s *Service) CheckAvailability(ctx context.Context, req models.CheckAvailabilityRequest) (*models.AvailabilityResult, error) {
	if req.VehicleID == "" || req.StartDate == nil || req.EndDate == nil {
		return nil, apperror.Validation("Vehicle ID, start date and end date are required")
	}
	vehicleID, err := primitive.ObjectIDFromHex(req.VehicleID)
	if err != nil {
		return nil, apperror.Validation("Invalid vehicle ID")
	}
	if !req.EndDate.After(*req.StartDate) {
		return nil, apperror.Validation("End date must be after start date")
	}

	count, err := s.Rentals.CountDocuments(ctx, conflictFilter(vehicleID, Interval{Start: *req.StartDate, End: *req.EndDate}, nil))
	if err != nil {
		return nil, apperror.Internal(err, "Failed to check availability")
	}

	return &models.AvailabilityResult{
		Available:          count == 0,
		ConflictingRentals: count,
	}, nil
}

// CalculateCost quotes a rental without creating it
func (s *Service) CalculateCost(ctx context.Context, req models.CalculateCostRequest) (*models.CostQuote, error) {
	if req.VehicleID == "" || req.RentalType == "" || req.Duration == 0 {
		return nil, apperror.Validation("Vehicle ID, rental type and duration are required")
	}
	if err := validateTerms(req.RentalType, req.Duration); err != nil {
		return nil, err
	}
	vehicle, err := s.findVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	q := Quote(vehicle.Pricing, req.RentalType, req.Duration, req.DriverRequired, req.Insurance)
	return &q, nil
}

// Create books a vehicle for the caller. The rental starts out pending with
// an unpaid payment record.
func (s *Service) Create(ctx context.Context, caller models.Principal, req models.CreateRentalRequest) (*models.VehicleRental, error) {
	if req.VehicleID == "" || req.RentalType == "" || req.StartDate == nil || req.EndDate == nil ||
		req.Duration == 0 || strings.TrimSpace(req.PickupLocation) == "" {
		return nil, apperror.Validation("Vehicle ID, rental type, start date, end date, duration and pickup location are required")
	}
	if err := validateTerms(req.RentalType, req.Duration); err != nil {
		return nil, err
	}

	vehicle, err := s.findVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Availability.IsAvailable {
		return nil, apperror.Unavailable("Vehicle is not available for rental")
	}

	renter, err := s.Users.FindOne(ctx, bson.M{"_id": caller.UserID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err, "Failed to load user")
	}

	now := s.Now()
	start, end := *req.StartDate, *req.EndDate
	if !start.After(now) {
		return nil, apperror.Validation("Start date must be in the future")
	}
	if !end.After(start) {
		return nil, apperror.Validation("End date must be after start date")
	}

	quote := Quote(vehicle.Pricing, req.RentalType, req.Duration, req.DriverRequired, req.Insurance)
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCash
	}

	rental := models.VehicleRental{
		ID:              primitive.NewObjectID(),
		Vehicle:         vehicle.ID,
		Renter:          renter.ID,
		Owner:           vehicle.Owner,
		RentalType:      req.RentalType,
		StartDate:       start,
		EndDate:         end,
		Duration:        req.Duration,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		DriverRequired:  req.DriverRequired,
		Insurance:       req.Insurance,
		SpecialRequests: req.SpecialRequests,
		Pricing:         rentalPricing(quote),
		Payment:         models.RentalPayment{Method: paymentMethod, Status: models.PaymentStatusPending},
		Status:          models.RentalStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.claimCalendar(ctx, vehicle.ID, Interval{Start: start, End: end}, nil); err != nil {
			return err
		}
		if _, err := s.Rentals.InsertOne(ctx, rental); err != nil {
			return apperror.Internal(err, "Failed to create rental")
		}
		return nil
	})
	if err != nil {
		return nil, classify(err, "Failed to create rental")
	}

	zap.S().Infow("rental created",
		"rentalId", rental.ID.Hex(),
		"vehicleId", vehicle.ID.Hex(),
		"renterId", renter.ID.Hex(),
		"totalAmount", rental.Pricing.TotalAmount,
	)

	if s.Notifier != nil {
		s.Notifier.RentalRequested(ctx, rental, *vehicle, *renter)
	}
	return &rental, nil
}

// UpdateStatus moves a rental along its lifecycle on behalf of the vehicle's
// owner. Admins may act on any rental and are the only ones who may mark it
// disputed.
func (s *Service) UpdateStatus(ctx context.Context, caller models.Principal, rentalID string, status models.RentalStatus, reason string) (*models.VehicleRental, error) {
	if caller.Role != models.RoleVehicleOwner && !caller.IsAdmin() {
		return nil, apperror.Authorization("Only vehicle owners can update rental status")
	}
	id, err := primitive.ObjectIDFromHex(rentalID)
	if err != nil {
		return nil, apperror.Validation("Invalid rental ID")
	}
	if !status.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("Invalid rental status %q", status))
	}

	filter := bson.M{"_id": id, "owner": caller.UserID}
	if caller.IsAdmin() {
		filter = bson.M{"_id": id}
	}
	rental, err := s.findRental(ctx, filter)
	if err != nil {
		return nil, err
	}

	if status == models.RentalStatusDisputed && !caller.IsAdmin() {
		return nil, apperror.Authorization("Only administrators can mark a rental as disputed")
	}
	if !rental.Status.CanTransitionTo(status) {
		return nil, apperror.InvalidState(fmt.Sprintf("Cannot change rental status from %s to %s", rental.Status, status))
	}

	now := s.Now()
	set := bson.M{"status": status, "updatedAt": now}
	if status == models.RentalStatusCancelled {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			reason = "Cancelled by owner"
		}
		rental.Cancellation = &models.RentalCancellation{
			Reason:      reason,
			CancelledBy: caller.UserID,
			CancelledAt: now,
		}
		set["cancellation"] = rental.Cancellation
	}
	guard := bson.M{"_id": rental.ID, "status": rental.Status}

	if status == models.RentalStatusConfirmed {
		err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.claimCalendar(ctx, rental.Vehicle, Interval{Start: rental.StartDate, End: rental.EndDate}, &rental.ID); err != nil {
				return err
			}
			return s.Rentals.UpdateOne(ctx, guard, bson.M{"$set": set})
		})
	} else {
		err = s.Rentals.UpdateOne(ctx, guard, bson.M{"$set": set})
	}
	if err != nil {
		return nil, classify(staleWrite(err), "Failed to update rental status")
	}

	zap.S().Infow("rental status updated",
		"rentalId", rental.ID.Hex(),
		"from", rental.Status,
		"to", status,
		"by", caller.UserID.Hex(),
	)

	rental.Status = status
	rental.UpdatedAt = now
	if s.Notifier != nil {
		s.Notifier.RentalStatusChanged(ctx, *rental)
	}
	return rental, nil
}

// Cancel withdraws a rental on behalf of its renter
func (s *Service) Cancel(ctx context.Context, caller models.Principal, rentalID, reason string) (*models.VehicleRental, error) {
	id, err := primitive.ObjectIDFromHex(rentalID)
	if err != nil {
		return nil, apperror.Validation("Invalid rental ID")
	}
	rental, err := s.findRental(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if rental.Renter != caller.UserID {
		return nil, apperror.Authorization("Not authorized to cancel this rental")
	}
	if rental.Status == models.RentalStatusCompleted || rental.Status == models.RentalStatusCancelled {
		return nil, apperror.InvalidState(fmt.Sprintf("Cannot cancel a %s rental", rental.Status))
	}

	now := s.Now()
	cancellation := &models.RentalCancellation{
		Reason:      reason,
		CancelledBy: caller.UserID,
		CancelledAt: now,
	}
	err = s.Rentals.UpdateOne(ctx,
		bson.M{"_id": rental.ID, "status": rental.Status},
		bson.M{"$set": bson.M{
			"status":       models.RentalStatusCancelled,
			"cancellation": cancellation,
			"updatedAt":    now,
		}},
	)
	if err != nil {
		return nil, classify(staleWrite(err), "Failed to cancel rental")
	}

	zap.S().Infow("rental cancelled", "rentalId", rental.ID.Hex(), "renterId", caller.UserID.Hex())

	rental.Status = models.RentalStatusCancelled
	rental.Cancellation = cancellation
	rental.UpdatedAt = now
	if s.Notifier != nil {
		s.Notifier.RentalStatusChanged(ctx, *rental)
	}
	return rental, nil
}

// Get returns a rental visible to its renter, its owner or staff
func (s *Service) Get(ctx context.Context, caller models.Principal, rentalID string) (*models.VehicleRental, error) {
	id, err := primitive.ObjectIDFromHex(rentalID)
	if err != nil {
		return nil, apperror.Validation("Invalid rental ID")
	}
	rental, err := s.findRental(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if rental.Renter != caller.UserID && rental.Owner != caller.UserID && !caller.Role.IsModerator() {
		return nil, apperror.Authorization("Not authorized to view this rental")
	}
	return rental, nil
}

// ListMine pages through the caller's own rentals, newest first
func (s *Service) ListMine(ctx context.Context, caller models.Principal, page, limit int, status string) (*models.RentalList, error) {
	return s.list(ctx, bson.M{"renter": caller.UserID}, page, limit, status)
}

// ListOwned pages through rentals of the caller's vehicles, newest first
func (s *Service) ListOwned(ctx context.Context, caller models.Principal, page, limit int, status string) (*models.RentalList, error) {
	if caller.Role != models.RoleVehicleOwner && !caller.IsAdmin() {
		return nil, apperror.Authorization("Only vehicle owners can list incoming rentals")
	}
	return s.list(ctx, bson.M{"owner": caller.UserID}, page, limit, status)
}

func (s *Service) list(ctx context.Context, filter bson.M, page, limit int, status string) (*models.RentalList, error) {
	if status != "" {
		if !models.RentalStatus(status).IsValid() {
			return nil, apperror.Validation(fmt.Sprintf("Invalid rental status %q", status))
		}
		filter["status"] = status
	}
	p := databases.NewPaginate(limit, page)

	total, err := s.Rentals.CountDocuments(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err, "Failed to count rentals")
	}
	rentals, err := s.Rentals.Find(ctx, filter, p.GetPaginatedOpts())
	if err != nil {
		return nil, apperror.Internal(err, "Failed to get rentals")
	}
	// the frontend expects an array, never null
	if rentals == nil {
		rentals = []models.VehicleRental{}
	}

	return &models.RentalList{
		Rentals: rentals,
		Pagination: models.Pagination{
			Page:  p.Page(),
			Limit: p.Limit(),
			Total: total,
			Pages: p.Pages(total),
		},
	}, nil
}

// AdvanceStatuses starts confirmed rentals whose start date has passed and
// completes active rentals whose end date has passed
func (s *Service) AdvanceStatuses(ctx context.Context) (activated, completed int64, err error) {
	now := s.Now()
	activated, err = s.Rentals.UpdateMany(ctx,
		bson.M{"status": models.RentalStatusConfirmed, "startDate": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{"status": models.RentalStatusActive, "updatedAt": now}},
	)
	if err != nil {
		return 0, 0, errors.Wrap(err, "activating rentals")
	}
	completed, err = s.Rentals.UpdateMany(ctx,
		bson.M{"status": models.RentalStatusActive, "endDate": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": models.RentalStatusCompleted, "updatedAt": now}},
	)
	if err != nil {
		return activated, 0, errors.Wrap(err, "completing rentals")
	}
	return activated, completed, nil
}

// claimCalendar must run inside a transaction. Bumping the vehicle's booking
// sequence makes concurrent claims on the same vehicle conflict on write, so
// the losing transaction is retried against the committed calendar.
func (s *Service) claimCalendar(ctx context.Context, vehicleID primitive.ObjectID, candidate Interval, exclude *primitive.ObjectID) error {
	err := s.Vehicles.UpdateOne(ctx, bson.M{"_id": vehicleID}, bson.M{"$inc": bson.M{"bookingSeq": 1}})
	if err != nil {
		return err
	}
	count, err := s.Rentals.CountDocuments(ctx, conflictFilter(vehicleID, candidate, exclude))
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.Unavailable("Vehicle is already booked for the selected dates")
	}
	return nil
}

func (s *Service) findVehicle(ctx context.Context, hexID string) (*models.Vehicle, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, apperror.Validation("Invalid vehicle ID")
	}
	vehicle, err := s.Vehicles.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Vehicle not found")
		}
		return nil, apperror.Internal(err, "Failed to load vehicle")
	}
	return vehicle, nil
}

func (s *Service) findRental(ctx context.Context, filter bson.M) (*models.VehicleRental, error) {
	rental, err := s.Rentals.FindOne(ctx, filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Rental not found")
		}
		return nil, apperror.Internal(err, "Failed to load rental")
	}
	return rental, nil
}

func validateTerms(rentalType models.RentalType, duration int) error {
	if !rentalType.IsValid() {
		return apperror.Validation(fmt.Sprintf("Invalid rental type %q", rentalType))
	}
	if duration < 1 {
		return apperror.Validation("Duration must be a positive whole number")
	}
	return nil
}

// staleWrite reports a status-guarded update that matched nothing, meaning
// another request moved the rental after it was read
func staleWrite(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.InvalidState("Rental status changed, please retry")
	}
	return err
}

// classify keeps errors that already carry a kind and wraps the rest
func classify(err error, message string) error {
	var e *apperror.Error
	if errors.As(err, &e) {
		return err
	}
	return apperror.Internal(err, message)
}
