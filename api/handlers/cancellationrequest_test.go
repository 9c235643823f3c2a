package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/serendibgo/rental-api/api/handlers"
	"github.com/serendibgo/rental-api/booking"
	"github.com/serendibgo/rental-api/databases/mocks"
	"github.com/serendibgo/rental-api/models"
)

func TestCancellationRequest_CreateCancellationRequestHandler(t *testing.T) {
	requests := mocks.NewCancellationRequestDatabase(t)
	rentals := mocks.NewRentalDatabase(t)
	svc := booking.NewCancellations(requests, rentals, mocks.NewHotelBookingDatabase(t))
	svc.Now = func() time.Time { return fixedNow }

	renter := primitive.NewObjectID()
	rental := models.VehicleRental{ID: primitive.NewObjectID(), Renter: renter, Status: models.RentalStatusConfirmed}
	rentals.On("FindOne", mock.Anything, bson.M{"_id": rental.ID}).Return(&rental, nil)
	requests.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	requests.On("InsertOne", mock.Anything, mock.AnythingOfType("models.CancellationRequest")).Return(nil, nil)

	p := models.Principal{UserID: renter, Role: models.RoleUser}
	body := models.CreateCancellationRequest{
		BookingKind: models.BookingKindVehicleRental,
		BookingID:   rental.ID.Hex(),
		Reason:      "Flight moved",
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.CancellationRequest{Service: svc}.CreateCancellationRequestHandler).ServeHTTP(rr, newRequest(t, "POST", "/", body, &p, nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	var cr models.CancellationRequest
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr.Body.Bytes()).Data, &cr))
	assert.Equal(t, booking.CancellationPending, cr.Status)
	assert.Equal(t, rental.ID, cr.Booking.ID)
}

func TestCancellationRequest_CreateCancellationRequestHandlerMissingReason(t *testing.T) {
	svc := booking.NewCancellations(mocks.NewCancellationRequestDatabase(t), mocks.NewRentalDatabase(t), mocks.NewHotelBookingDatabase(t))
	p := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleUser}
	body := models.CreateCancellationRequest{BookingKind: models.BookingKindHotelBooking, BookingID: primitive.NewObjectID().Hex()}

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.CancellationRequest{Service: svc}.CreateCancellationRequestHandler).ServeHTTP(rr, newRequest(t, "POST", "/", body, &p, nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCancellationRequest_MyCancellationRequestsHandler(t *testing.T) {
	requests := mocks.NewCancellationRequestDatabase(t)
	svc := booking.NewCancellations(requests, mocks.NewRentalDatabase(t), mocks.NewHotelBookingDatabase(t))
	p := models.Principal{UserID: primitive.NewObjectID(), Role: models.RoleUser}
	requests.On("Find", mock.Anything, bson.M{"requestedBy": p.UserID}, mock.Anything).Return(nil, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.CancellationRequest{Service: svc}.MyCancellationRequestsHandler).ServeHTTP(rr, newRequest(t, "GET", "/", nil, &p, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rr.Body.Bytes()).Data))
}
