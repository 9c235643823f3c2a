package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/serendibgo/rental-api/apperror"
	"github.com/serendibgo/rental-api/booking"
	"github.com/serendibgo/rental-api/databases/mocks"
	"github.com/serendibgo/rental-api/models"
)

var now = time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	requested []models.VehicleRental
	changed   []models.VehicleRental
}

func (n *recordingNotifier) RentalRequested(_ context.Context, rental models.VehicleRental, _ models.Vehicle, _ models.User) {
	n.requested = append(n.requested, rental)
}

func (n *recordingNotifier) RentalStatusChanged(_ context.Context, rental models.VehicleRental) {
	n.changed = append(n.changed, rental)
}

type fixture struct {
	svc      *booking.Service
	vehicles *mocks.VehicleDatabase
	rentals  *mocks.RentalDatabase
	users    *mocks.UserDatabase
	notifier *recordingNotifier
}

func newFixture(t *testing.T) fixture {
	f := fixture{
		vehicles: mocks.NewVehicleDatabase(t),
		rentals:  mocks.NewRentalDatabase(t),
		users:    mocks.NewUserDatabase(t),
		notifier: &recordingNotifier{},
	}
	f.svc = booking.NewService(f.vehicles, f.rentals, f.users, passthroughTx{}, f.notifier)
	f.svc.Now = func() time.Time { return now }
	return f
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func sampleVehicle() models.Vehicle {
	return models.Vehicle{
		ID:           primitive.NewObjectID(),
		Owner:        primitive.NewObjectID(),
		Make:         "Toyota",
		Model:        "Prius",
		Pricing:      models.Tariff{Daily: 15000, DriverFee: 2000, InsuranceFee: 2500, Currency: "LKR"},
		Availability: models.VehicleAvailability{IsAvailable: true},
	}
}

func createRequest(v models.Vehicle) models.CreateRentalRequest {
	return models.CreateRentalRequest{
		VehicleID:      v.ID.Hex(),
		RentalType:     models.RentalTypeDaily,
		StartDate:      timePtr(now.Add(48 * time.Hour)),
		EndDate:        timePtr(now.Add(120 * time.Hour)),
		Duration:       3,
		PickupLocation: "Colombo Fort",
		DriverRequired: true,
	}
}

func TestService_CreateSuccess(t *testing.T) {
	f := newFixture(t)
	v := sampleVehicle()
	renter := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}

	f.vehicles.On("FindOne", mock.Anything, bson.M{"_id": v.ID}).Return(&v, nil)
	f.users.On("FindOne", mock.Anything, bson.M{"_id": renter.ID}).Return(&renter, nil)
	f.vehicles.On("UpdateOne", mock.Anything, bson.M{"_id": v.ID}, bson.M{"$inc": bson.M{"bookingSeq": 1}}).Return(nil)
	f.rentals.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	f.rentals.On("InsertOne", mock.Anything, mock.AnythingOfType("models.VehicleRental")).Return(nil, nil)

	rental, err := f.svc.Create(context.Background(), models.Principal{UserID: renter.ID, Role: models.RoleUser}, createRequest(v))

	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusPending, rental.Status)
	assert.Equal(t, models.PaymentStatusPending, rental.Payment.Status)
	assert.Equal(t, models.PaymentMethodCash, rental.Payment.Method)
	assert.Equal(t, v.Owner, rental.Owner)
	assert.Equal(t, renter.ID, rental.Renter)
	assert.Equal(t, models.RentalPricing{BasePrice: 15000, Subtotal: 45000, TotalAmount: 51000, Currency: "LKR"}, rental.Pricing)
	assert.Len(t, f.notifier.requested, 1)
}

func TestService_CreateMissingFields(t *testing.T) {
	f := newFixture(t)
	req := createRequest(sampleVehicle())
	req.PickupLocation = "  "

	_, err := f.svc.Create(context.Background(), models.Principal{UserID: primitive.NewObjectID()}, req)

	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestService_CreateVehicleNotFound(t *testing.T) {
	f := newFixture(t)
	v := sampleVehicle()
	f.vehicles.On("FindOne", mock.Anything, bson.M{"_id": v.ID}).Return(nil, mongo.ErrNoDocuments)

	_, err := f.svc.Create(context.Background(), models.Principal{UserID: primitive.NewObjectID()}, createRequest(v))

	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "Vehicle not found", apperror.Message(err))
}

func TestService_CreateVehicleToggledOff(t *testing.T) {
	f := newFixture(t)
	v := sampleVehicle()
	v.Availability.IsAvailable = false
	f.vehicles.On("FindOne", mock.Anything, bson.M{"_id": v.ID}).Return(&v, nil)

	_, err := f.svc.Create(context.Background(), models.Principal{UserID: primitive.NewObjectID()}, createRequest(v))

	assert.True(t, apperror.Is(err, apperror.KindUnavailable))
}

func TestService_CreateRenterNotFound(t *testing.T) {
	f := newFixture(t)
	v := sampleVehicle()
	renterID := primitive.NewObjectID()
	f.vehicles.On("FindOne", mock.Anything, bson.M{"_id": v.ID}).Return(&v, nil)
	f.users.On("FindOne", mock.Anything, bson.M{"_id": renterID}).Return(nil, mongo.ErrNoDocuments)

	_, err := f.svc.Create(context.Background(), models.Principal{UserID: renterID}, createRequest(v))

	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "User not found", apperror.Message(err))
}

func TestService_CreateRejectsBadDates(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"start in the past", now.Add(-time.Hour), now.Add(24 * time.Hour)},
		{"start is now", now, now.Add(24 * time.Hour)},
		{"end equals start", now.Add(24 * time.Hour), now.Add(24 * time.Hour)},
		{"end before start", now.Add(48 * time.Hour), now.Add(24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			v := sampleVehicle()
			renter := models.User{ID: primitive.NewObjectID()}
			f.vehicles.On("FindOne", mock.Anything, bson.M{"_id": v.ID}).Return(&v, nil)
			f.users.On("FindOne", mock.Anything, bson.M{"_id": renter.ID}).Return(&renter, nil)

			req := createRequest(v)
			req.StartDate = timePtr(tt.start)
			req.EndDate = timePtr(tt.end)
			_, err := f.svc.Create(context.Background(), models.Principal{UserID: renter.ID}, req)

			assert.True(t, apperror.Is(err, apperror.KindValidation))
			f.rentals.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateCalendarConflict(t *testing.T) {
	f := newFixture(t)
	v := sampleVehicle()
	renter := models.User{ID: primitive.NewObjectID()}
	f.vehicles.On("FindOne", mock.Anything, bson.M{"_id": v.ID}).Return(&v, nil)
	f.users.On("FindOne", mock.Anything, bson.M{"_id": renter.ID}).Return(&renter, nil)
	f.vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.rentals.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err := f.svc.Create(context.Background(), models.Principal{UserID: renter.ID}, createRequest(v))

	assert.True(t, apperror.Is(err, apperror.KindUnavailable))
	f.rentals.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
	assert.Empty(t, f.notifier.requested)
}

func TestService_CreateInsertFailure(t *testing.T) {
	f := newFixture(t)
	v := sampleVehicle()
	renter := models.User{ID: primitive.NewObjectID()}
	f.vehicles.On("FindOne", mock.Anything, bson.M{"_id": v.ID}).Return(&v, nil)
	f.users.On("FindOne", mock.Anything, bson.M{"_id": renter.ID}).Return(&renter, nil)
	f.vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.rentals.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	f.rentals.On("InsertOne", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	_, err := f.svc.Create(context.Background(), models.Principal{UserID: renter.ID}, createRequest(v))

	assert.True(t, apperror.Is(err, apperror.KindInternal))
	assert.Equal(t, "Failed to create rental", apperror.Message(err))
}

func TestService_CheckAvailability(t *testing.T) {
	vehicleID := primitive.NewObjectID()
	blocking := mock.MatchedBy(func(filter bson.M) bool {
		statuses, ok := filter["status"].(bson.M)["$in"].([]models.RentalStatus)
		return ok && filter["vehicle"] == vehicleID &&
			assert.ObjectsAreEqual([]models.RentalStatus{models.RentalStatusConfirmed, models.RentalStatusActive}, statuses)
	})

	t.Run("confirmed overlap blocks", func(t *testing.T) {
		f := newFixture(t)
		f.rentals.On("CountDocuments", mock.Anything, blocking).Return(int64(1), nil)

		res, err := f.svc.CheckAvailability(context.Background(), models.CheckAvailabilityRequest{
			VehicleID: vehicleID.Hex(),
			StartDate: timePtr(time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)),
			EndDate:   timePtr(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)),
		})

		require.NoError(t, err)
		assert.Equal(t, &models.AvailabilityResult{Available: false, ConflictingRentals: 1}, res)
	})

	t.Run("no blocking rentals", func(t *testing.T) {
		f := newFixture(t)
		f.rentals.On("CountDocuments", mock.Anything, blocking).Return(int64(0), nil)

		res, err := f.svc.CheckAvailability(context.Background(), models.CheckAvailabilityRequest{
			VehicleID: vehicleID.Hex(),
			StartDate: timePtr(time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)),
			EndDate:   timePtr(time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)),
		})

		require.NoError(t, err)
		assert.Equal(t, &models.AvailabilityResult{Available: true, ConflictingRentals: 0}, res)
	})

	t.Run("missing dates", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CheckAvailability(context.Background(), models.CheckAvailabilityRequest{VehicleID: vehicleID.Hex()})

		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}

func TestService_CalculateCost(t *testing.T) {
	f := newFixture(t)
	v := sampleVehicle()
	f.vehicles.On("FindOne", mock.Anything, bson.M{"_id": v.ID}).Return(&v, nil)

	q, err := f.svc.CalculateCost(context.Background(), models.CalculateCostRequest{
		VehicleID:      v.ID.Hex(),
		RentalType:     models.RentalTypeDaily,
		Duration:       3,
		DriverRequired: true,
		Insurance:      true,
	})

	require.NoError(t, err)
	assert.Equal(t, 45000.0, q.BaseAmount)
	assert.Equal(t, 53500.0, q.TotalAmount)
}

func TestService_CalculateCostValidation(t *testing.T) {
	f := newFixture(t)
	id := primitive.NewObjectID().Hex()

	for _, req := range []models.CalculateCostRequest{
		{RentalType: models.RentalTypeDaily, Duration: 1},
		{VehicleID: id, Duration: 1},
		{VehicleID: id, RentalType: models.RentalTypeDaily},
		{VehicleID: id, RentalType: "fortnightly", Duration: 1},
		{VehicleID: id, RentalType: models.RentalTypeDaily, Duration: -2},
		{VehicleID: "not-hex", RentalType: models.RentalTypeDaily, Duration: 1},
	} {
		_, err := f.svc.CalculateCost(context.Background(), req)
		assert.True(t, apperror.Is(err, apperror.KindValidation), "%+v", req)
	}
}

func pendingRental(owner, renter primitive.ObjectID) models.VehicleRental {
	return models.VehicleRental{
		ID:        primitive.NewObjectID(),
		Vehicle:   primitive.NewObjectID(),
		Owner:     owner,
		Renter:    renter,
		Status:    models.RentalStatusPending,
		StartDate: now.Add(24 * time.Hour),
		EndDate:   now.Add(72 * time.Hour),
	}
}

func TestService_UpdateStatusConfirm(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}
	r := pendingRental(owner.UserID, primitive.NewObjectID())

	f.rentals.On("FindOne", mock.Anything, bson.M{"_id": r.ID, "owner": owner.UserID}).Return(&r, nil)
	f.vehicles.On("UpdateOne", mock.Anything, bson.M{"_id": r.Vehicle}, mock.Anything).Return(nil)
	f.rentals.On("CountDocuments", mock.Anything, mock.MatchedBy(func(filter bson.M) bool {
		return assert.ObjectsAreEqual(bson.M{"$ne": r.ID}, filter["_id"])
	})).Return(int64(0), nil)
	f.rentals.On("UpdateOne", mock.Anything, bson.M{"_id": r.ID, "status": models.RentalStatusPending}, mock.Anything).Return(nil)

	updated, err := f.svc.UpdateStatus(context.Background(), owner, r.ID.Hex(), models.RentalStatusConfirmed, "")

	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusConfirmed, updated.Status)
	assert.Len(t, f.notifier.changed, 1)
}

func TestService_UpdateStatusConfirmConflict(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}
	r := pendingRental(owner.UserID, primitive.NewObjectID())

	f.rentals.On("FindOne", mock.Anything, mock.Anything).Return(&r, nil)
	f.vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.rentals.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err := f.svc.UpdateStatus(context.Background(), owner, r.ID.Hex(), models.RentalStatusConfirmed, "")

	assert.True(t, apperror.Is(err, apperror.KindUnavailable))
	f.rentals.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateStatusOwnerCancelRecordsReason(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}
	r := pendingRental(owner.UserID, primitive.NewObjectID())

	f.rentals.On("FindOne", mock.Anything, mock.Anything).Return(&r, nil)
	f.rentals.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := f.svc.UpdateStatus(context.Background(), owner, r.ID.Hex(), models.RentalStatusCancelled, " Vehicle in for repairs ")

	require.NoError(t, err)
	require.NotNil(t, updated.Cancellation)
	assert.Equal(t, owner.UserID, updated.Cancellation.CancelledBy)
	assert.Equal(t, "Vehicle in for repairs", updated.Cancellation.Reason)
}

func TestService_UpdateStatusOwnerCancelDefaultReason(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}
	r := pendingRental(owner.UserID, primitive.NewObjectID())

	f.rentals.On("FindOne", mock.Anything, mock.Anything).Return(&r, nil)
	f.rentals.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := f.svc.UpdateStatus(context.Background(), owner, r.ID.Hex(), models.RentalStatusCancelled, "")

	require.NoError(t, err)
	assert.Equal(t, "Cancelled by owner", updated.Cancellation.Reason)
}

func TestService_UpdateStatusLostRace(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}
	r := pendingRental(owner.UserID, primitive.NewObjectID())

	f.rentals.On("FindOne", mock.Anything, mock.Anything).Return(&r, nil)
	f.rentals.On("UpdateOne", mock.Anything, bson.M{"_id": r.ID, "status": models.RentalStatusPending}, mock.Anything).
		Return(mongo.ErrNoDocuments)

	updated, err := f.svc.UpdateStatus(context.Background(), owner, r.ID.Hex(), models.RentalStatusCancelled, "")

	assert.Nil(t, updated)
	assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	assert.EqualError(t, err, "Rental status changed, please retry")
	assert.Empty(t, f.notifier.changed)
}

func TestService_UpdateStatusConfirmLostRace(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}
	r := pendingRental(owner.UserID, primitive.NewObjectID())

	f.rentals.On("FindOne", mock.Anything, mock.Anything).Return(&r, nil)
	f.vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.rentals.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	f.rentals.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(mongo.ErrNoDocuments)

	_, err := f.svc.UpdateStatus(context.Background(), owner, r.ID.Hex(), models.RentalStatusConfirmed, "")

	assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	assert.Empty(t, f.notifier.changed)
}

func TestService_UpdateStatusRejectsNonOwnerRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(),
		models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleUser},
		primitive.NewObjectID().Hex(), models.RentalStatusConfirmed, "")

	assert.True(t, apperror.Is(err, apperror.KindAuthorization))
}

func TestService_UpdateStatusNotOwnedRental(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}
	f.rentals.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	_, err := f.svc.UpdateStatus(context.Background(), owner, primitive.NewObjectID().Hex(), models.RentalStatusConfirmed, "")

	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestService_UpdateStatusIllegalTransition(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}
	r := pendingRental(owner.UserID, primitive.NewObjectID())
	r.Status = models.RentalStatusCompleted
	f.rentals.On("FindOne", mock.Anything, mock.Anything).Return(&r, nil)

	_, err := f.svc.UpdateStatus(context.Background(), owner, r.ID.Hex(), models.RentalStatusConfirmed, "")

	assert.True(t, apperror.Is(err, apperror.KindInvalidState))
}

func TestService_UpdateStatusDisputedNeedsAdmin(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}
	r := pendingRental(owner.UserID, primitive.NewObjectID())
	f.rentals.On("FindOne", mock.Anything, mock.Anything).Return(&r, nil)

	_, err := f.svc.UpdateStatus(context.Background(), owner, r.ID.Hex(), models.RentalStatusDisputed, "")

	assert.True(t, apperror.Is(err, apperror.KindAuthorization))
}

func TestService_UpdateStatusAdminDisputes(t *testing.T) {
	f := newFixture(t)
	admin := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleAdmin}
	r := pendingRental(primitive.NewObjectID(), primitive.NewObjectID())
	r.Status = models.RentalStatusActive
	f.rentals.On("FindOne", mock.Anything, bson.M{"_id": r.ID}).Return(&r, nil)
	f.rentals.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := f.svc.UpdateStatus(context.Background(), admin, r.ID.Hex(), models.RentalStatusDisputed, "")

	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusDisputed, updated.Status)
}

func TestService_UpdateStatusUnknownStatus(t *testing.T) {
	f := newFixture(t)
	owner := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleVehicleOwner}

	_, err := f.svc.UpdateStatus(context.Background(), owner, primitive.NewObjectID().Hex(), "teleported", "")

	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestService_CancelByRenter(t *testing.T) {
	f := newFixture(t)
	renter := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleUser}
	r := pendingRental(primitive.NewObjectID(), renter.UserID)
	f.rentals.On("FindOne", mock.Anything, bson.M{"_id": r.ID}).Return(&r, nil)
	f.rentals.On("UpdateOne", mock.Anything, bson.M{"_id": r.ID, "status": models.RentalStatusPending}, mock.Anything).Return(nil)

	updated, err := f.svc.Cancel(context.Background(), renter, r.ID.Hex(), "Change of plans")

	require.NoError(t, err)
	assert.Equal(t, models.RentalStatusCancelled, updated.Status)
	assert.Equal(t, "Change of plans", updated.Cancellation.Reason)
	assert.Len(t, f.notifier.changed, 1)
}

func TestService_CancelByStranger(t *testing.T) {
	f := newFixture(t)
	r := pendingRental(primitive.NewObjectID(), primitive.NewObjectID())
	f.rentals.On("FindOne", mock.Anything, bson.M{"_id": r.ID}).Return(&r, nil)

	_, err := f.svc.Cancel(context.Background(), models.Principal{UserID: primitive.NewObjectID()}, r.ID.Hex(), "")

	assert.True(t, apperror.Is(err, apperror.KindAuthorization))
	f.rentals.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelFinishedRental(t *testing.T) {
	for _, status := range []models.RentalStatus{models.RentalStatusCompleted, models.RentalStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			renter := models.Principal{UserID: primitive.NewObjectID()}
			r := pendingRental(primitive.NewObjectID(), renter.UserID)
			r.Status = status
			f.rentals.On("FindOne", mock.Anything, mock.Anything).Return(&r, nil)

			_, err := f.svc.Cancel(context.Background(), renter, r.ID.Hex(), "")

			assert.True(t, apperror.Is(err, apperror.KindInvalidState))
		})
	}
}

func TestService_CancelLostRace(t *testing.T) {
	f := newFixture(t)
	renter := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleUser}
	r := pendingRental(primitive.NewObjectID(), renter.UserID)
	f.rentals.On("FindOne", mock.Anything, bson.M{"_id": r.ID}).Return(&r, nil)
	f.rentals.On("UpdateOne", mock.Anything, bson.M{"_id": r.ID, "status": models.RentalStatusPending}, mock.Anything).
		Return(mongo.ErrNoDocuments)

	updated, err := f.svc.Cancel(context.Background(), renter, r.ID.Hex(), "Change of plans")

	assert.Nil(t, updated)
	assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	assert.Empty(t, f.notifier.changed)
}

func TestService_ListMine(t *testing.T) {
	f := newFixture(t)
	renter := models.Principal{UserID: primitive.NewObjectID()}
	filter := bson.M{"renter": renter.UserID, "status": "pending"}
	f.rentals.On("CountDocuments", mock.Anything, filter).Return(int64(23), nil)
	f.rentals.On("Find", mock.Anything, filter, mock.AnythingOfType("*options.FindOptions")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			opts := args.Get(2).(*options.FindOptions)
			assert.Equal(t, int64(10), *opts.Limit)
			assert.Equal(t, int64(10), *opts.Skip)
		})

	list, err := f.svc.ListMine(context.Background(), renter, 2, 10, "pending")

	require.NoError(t, err)
	assert.Equal(t, []models.VehicleRental{}, list.Rentals)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 10, Total: 23, Pages: 3}, list.Pagination)
}

func TestService_ListMineInvalidStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListMine(context.Background(), models.Principal{UserID: primitive.NewObjectID()}, 1, 10, "lost")

	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestService_Get(t *testing.T) {
	f := newFixture(t)
	r := pendingRental(primitive.NewObjectID(), primitive.NewObjectID())
	f.rentals.On("FindOne", mock.Anything, bson.M{"_id": r.ID}).Return(&r, nil)

	got, err := f.svc.Get(context.Background(), models.Principal{UserID: r.Owner, Role: models.RoleVehicleOwner}, r.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = f.svc.Get(context.Background(), models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleUser}, r.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindAuthorization))
}

func TestService_AdvanceStatuses(t *testing.T) {
	f := newFixture(t)
	f.rentals.On("UpdateMany", mock.Anything, bson.M{"status": models.RentalStatusConfirmed, "startDate": bson.M{"$lte": now}}, mock.Anything).
		Return(int64(2), nil)
	f.rentals.On("UpdateMany", mock.Anything, bson.M{"status": models.RentalStatusActive, "endDate": bson.M{"$lt": now}}, mock.Anything).
		Return(int64(1), nil)

	activated, completed, err := f.svc.AdvanceStatuses(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), activated)
	assert.Equal(t, int64(1), completed)
}
