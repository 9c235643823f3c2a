// Package docs SerendibGo Rental API.
//
// Documentation of the SerendibGo vehicle rental API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//     - bearer
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/serendibgo/rental-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/auth/token auth createToken
// Exchanges basic credentials for a bearer token.
// responses:
//   200: tokenResponse
//   401: errorResponse

// A signed access token
// swagger:response tokenResponse
type tokenResponseWrapper struct {
	// in:body
	Body models.TokenResponse
}

// swagger:route POST /api/v1/rentals rentals createRental
// Requests a rental of a vehicle.
// responses:
//   201: rentalResponse
//   400: errorResponse
//   404: errorResponse

// swagger:route GET /api/v1/rentals/{id} rentals rentalByID
// Gets a single rental the caller takes part in.
// responses:
//   200: rentalResponse
//   403: errorResponse

// A single rental
// swagger:response rentalResponse
type rentalResponseWrapper struct {
	// in:body
	Body models.VehicleRental
}

// swagger:route GET /api/v1/rentals/my rentals myRentals
// Lists the caller's rentals, newest first.
// responses:
//   200: rentalListResponse

// A page of rentals
// swagger:response rentalListResponse
type rentalListResponseWrapper struct {
	// in:body
	Body models.RentalList
}

// swagger:route POST /api/v1/rentals/check-availability rentals checkAvailability
// Counts confirmed or active rentals overlapping a date range.
// responses:
//   200: availabilityResponse

// The availability of a vehicle
// swagger:response availabilityResponse
type availabilityResponseWrapper struct {
	// in:body
	Body models.AvailabilityResult
}

// swagger:route POST /api/v1/rentals/calculate-cost rentals calculateCost
// Quotes a rental without creating it.
// responses:
//   200: costQuoteResponse

// A price quote
// swagger:response costQuoteResponse
type costQuoteResponseWrapper struct {
	// in:body
	Body models.CostQuote
}

// swagger:route GET /api/v1/vehicles/{id}/reviews reviews vehicleReviews
// Lists the reviews of a vehicle.
// responses:
//   200: vehicleReviewsResponse

// Reviews of a vehicle
// swagger:response vehicleReviewsResponse
type vehicleReviewsResponseWrapper struct {
	// in:body
	Body []models.VehicleReview
}

// swagger:route GET /api/v1/hotels/{id}/reviews reviews hotelReviews
// Lists the approved reviews of a hotel.
// responses:
//   200: hotelReviewsResponse

// Reviews of a hotel
// swagger:response hotelReviewsResponse
type hotelReviewsResponseWrapper struct {
	// in:body
	Body []models.HotelReview
}

// A failed request
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
