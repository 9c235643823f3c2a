package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/serendibgo/rental-api/api"
	"github.com/serendibgo/rental-api/booking"
	"github.com/serendibgo/rental-api/models"
)

// Rental exposes the rental lifecycle over HTTP
type Rental struct {
	Service *booking.Service
}

// CreateRentalHandler books a vehicle for the caller
func (rh Rental) CreateRentalHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.CreateRentalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	rental, err := rh.Service.Create(ctx, p, req)
	if err != nil {
		writeError(w, err)
		return
	}
	api.RentalTransitions.WithLabelValues(rental.Status.String()).Inc()
	writeSuccess(w, http.StatusCreated, "Rental request created successfully", rental)
}

// MyRentalsHandler lists the caller's rentals
func (rh Rental) MyRentalsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	page, limit := pageParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	list, err := rh.Service.ListMine(ctx, p, page, limit, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

// OwnerRentalsHandler lists rentals of the caller's vehicles
func (rh Rental) OwnerRentalsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	page, limit := pageParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	list, err := rh.Service.ListOwned(ctx, p, page, limit, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", list)
}

// RentalByIDHandler returns a single rental
func (rh Rental) RentalByIDHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	rental, err := rh.Service.Get(ctx, p, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", rental)
}

// UpdateRentalStatusHandler moves a rental to a new status on behalf of the vehicle owner
func (rh Rental) UpdateRentalStatusHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.UpdateRentalStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	rental, err := rh.Service.UpdateStatus(ctx, p, mux.Vars(r)["id"], req.Status, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	api.RentalTransitions.WithLabelValues(rental.Status.String()).Inc()
	writeSuccess(w, http.StatusOK, "Rental status updated successfully", rental)
}

// CancelRentalHandler cancels a rental on behalf of its renter
func (rh Rental) CancelRentalHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.CancelRentalRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	rental, err := rh.Service.Cancel(ctx, p, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	api.RentalTransitions.WithLabelValues(rental.Status.String()).Inc()
	writeSuccess(w, http.StatusOK, "Rental cancelled successfully", rental)
}

// CheckAvailabilityHandler reports whether a vehicle is free for a date range
func (rh Rental) CheckAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CheckAvailabilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := rh.Service.CheckAvailability(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", res)
}

// CalculateCostHandler quotes a rental without booking it
func (rh Rental) CalculateCostHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CalculateCostRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	quote, err := rh.Service.CalculateCost(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", quote)
}
