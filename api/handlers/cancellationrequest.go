package handlers

import (
	"net/http"

	"github.com/serendibgo/rental-api/api"
	"github.com/serendibgo/rental-api/booking"
	"github.com/serendibgo/rental-api/models"
)

// CancellationRequest exposes cancellation requests over HTTP
type CancellationRequest struct {
	Service *booking.Cancellations
}

// CreateCancellationRequestHandler files a cancellation request for one of the caller's bookings
func (c CancellationRequest) CreateCancellationRequestHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.CreateCancellationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cr, err := c.Service.Request(ctx, p, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Cancellation request submitted", cr)
}

// MyCancellationRequestsHandler lists the caller's cancellation requests
func (c CancellationRequest) MyCancellationRequestsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	page, limit := pageParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	list, err := c.Service.ListMine(ctx, p, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}
