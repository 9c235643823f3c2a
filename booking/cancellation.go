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

// Cancellation request statuses
const (
	CancellationPending  = "pending"
	CancellationApproved = "approved"
	CancellationRejected = "rejected"
)

// BookingLoader resolves a booking id of one kind into its summary. It
// returns mongo.ErrNoDocuments when the booking does not exist.
type BookingLoader func(ctx context.Context, id primitive.ObjectID) (*models.BookingSummary, error)

// Cancellations records cancellation requests against bookings of any kind
type Cancellations struct {
	Requests databases.CancellationRequestDatabase
	Loaders  map[models.BookingKind]BookingLoader
	Now      func() time.Time
}

// NewCancellations wires the loaders for every booking kind
func NewCancellations(requests databases.CancellationRequestDatabase, rentals databases.RentalDatabase, hotelBookings databases.HotelBookingDatabase) *Cancellations {
	return &Cancellations{
		Requests: requests,
		Loaders: map[models.BookingKind]BookingLoader{
			models.BookingKindVehicleRental: RentalLoader(rentals),
			models.BookingKindHotelBooking:  HotelBookingLoader(hotelBookings),
		},
		Now: time.Now,
	}
}

// RentalLoader summarizes vehicle rentals
func RentalLoader(rentals databases.RentalDatabase) BookingLoader {
	return func(ctx context.Context, id primitive.ObjectID) (*models.BookingSummary, error) {
		r, err := rentals.FindOne(ctx, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		return &models.BookingSummary{
			Ref:      models.BookingRef{Kind: models.BookingKindVehicleRental, ID: r.ID},
			BookedBy: r.Renter,
			Start:    r.StartDate,
			End:      r.EndDate,
			Status:   r.Status.String(),
			Closed:   r.Status == models.RentalStatusCompleted || r.Status == models.RentalStatusCancelled,
		}, nil
	}
}

var closedHotelStatuses = map[string]bool{
	"completed":   true,
	"checked_out": true,
	"cancelled":   true,
	"no_show":     true,
}

// HotelBookingLoader summarizes hotel bookings
func HotelBookingLoader(bookings databases.HotelBookingDatabase) BookingLoader {
	return func(ctx context.Context, id primitive.ObjectID) (*models.BookingSummary, error) {
		b, err := bookings.FindOne(ctx, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		return &models.BookingSummary{
			Ref:      models.BookingRef{Kind: models.BookingKindHotelBooking, ID: b.ID},
			BookedBy: b.User,
			Start:    b.CheckIn,
			End:      b.CheckOut,
			Status:   b.Status,
			Closed:   closedHotelStatuses[b.Status],
		}, nil
	}
}

// Request files a pending cancellation request for a booking the caller made
func (c *Cancellations) Request(ctx context.Context, caller models.Principal, req models.CreateCancellationRequest) (*models.CancellationRequest, error) {
	if req.BookingKind == "" || req.BookingID == "" || strings.TrimSpace(req.Reason) == "" {
		return nil, apperror.Validation("Booking kind, booking ID and reason are required")
	}
	load, ok := c.Loaders[req.BookingKind]
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("Invalid booking kind %q", req.BookingKind))
	}
	id, err := primitive.ObjectIDFromHex(req.BookingID)
	if err != nil {
		return nil, apperror.Validation("Invalid booking ID")
	}

	booking, err := load(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Booking not found")
		}
		return nil, apperror.Internal(err, "Failed to load booking")
	}
	if booking.BookedBy != caller.UserID {
		return nil, apperror.Authorization("Not authorized to cancel this booking")
	}
	if booking.Closed {
		return nil, apperror.InvalidState(fmt.Sprintf("Cannot cancel a %s booking", booking.Status))
	}

	pending, err := c.Requests.CountDocuments(ctx, bson.M{
		"booking.kind": booking.Ref.Kind,
		"booking.id":   booking.Ref.ID,
		"status":       CancellationPending,
	})
	if err != nil {
		return nil, apperror.Internal(err, "Failed to check existing cancellation requests")
	}
	if pending > 0 {
		return nil, apperror.Validation("A cancellation request for this booking is already pending")
	}

	now := c.Now()
	cr := models.CancellationRequest{
		ID:          primitive.NewObjectID(),
		Booking:     booking.Ref,
		RequestedBy: caller.UserID,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      CancellationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := c.Requests.InsertOne(ctx, cr); err != nil {
		return nil, apperror.Internal(err, "Failed to create cancellation request")
	}

	zap.S().Infow("cancellation requested",
		"requestId", cr.ID.Hex(),
		"bookingKind", cr.Booking.Kind,
		"bookingId", cr.Booking.ID.Hex(),
		"userId", caller.UserID.Hex(),
	)
	return &cr, nil
}

// ListMine returns the caller's cancellation requests, newest first
func (c *Cancellations) ListMine(ctx context.Context, caller models.Principal, page, limit int) ([]models.CancellationRequest, error) {
	p := databases.NewPaginate(limit, page)
	requests, err := c.Requests.Find(ctx, bson.M{"requestedBy": caller.UserID}, p.GetPaginatedOpts())
	if err != nil {
		return nil, apperror.Internal(err, "Failed to get cancellation requests")
	}
	if requests == nil {
		requests = []models.CancellationRequest{}
	}
	return requests, nil
}
