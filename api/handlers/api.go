package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/serendibgo/rental-api/api"
	"github.com/serendibgo/rental-api/api/scheduler"
	"github.com/serendibgo/rental-api/booking"
	"github.com/serendibgo/rental-api/config"
	"github.com/serendibgo/rental-api/databases"
	"github.com/serendibgo/rental-api/models"
	"github.com/serendibgo/rental-api/notify"
	"github.com/serendibgo/rental-api/ratings"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	client    databases.ClientHelper
	dbHelper  databases.DatabaseHelper
	scheduler *scheduler.Scheduler
}

// Ratings returns a rating aggregator bound to the app's database
func (a *App) Ratings() *ratings.Aggregator {
	return &ratings.Aggregator{
		VehicleReviews: databases.NewVehicleReviewDatabase(a.dbHelper),
		HotelReviews:   databases.NewHotelReviewDatabase(a.dbHelper),
		Vehicles:       databases.NewVehicleDatabase(a.dbHelper),
		Hotels:         databases.NewHotelDatabase(a.dbHelper),
	}
}

// Bookings returns the rental lifecycle service bound to the app's database
func (a *App) Bookings() *booking.Service {
	users := databases.NewUserDatabase(a.dbHelper)
	vehicles := databases.NewVehicleDatabase(a.dbHelper)
	return booking.NewService(
		vehicles,
		databases.NewRentalDatabase(a.dbHelper),
		users,
		databases.NewTransactor(a.client),
		notify.NewEmailNotifier(&a.Config, users, vehicles),
	)
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{
		DB:       databases.NewUserDatabase(a.dbHelper),
		Secret:   []byte(a.Config.JWTSecret),
		TokenTTL: a.Config.TokenTTL,
	}
	m.SetupGoGuardian()

	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware)

	rh := Rental{Service: a.Bookings()}
	v := Vehicle{DB: databases.NewVehicleDatabase(a.dbHelper)}
	rv := Review{
		Vehicles:       databases.NewVehicleDatabase(a.dbHelper),
		Hotels:         databases.NewHotelDatabase(a.dbHelper),
		Rentals:        databases.NewRentalDatabase(a.dbHelper),
		VehicleReviews: databases.NewVehicleReviewDatabase(a.dbHelper),
		HotelReviews:   databases.NewHotelReviewDatabase(a.dbHelper),
		Ratings:        a.Ratings(),
	}
	cr := CancellationRequest{Service: booking.NewCancellations(
		databases.NewCancellationRequestDatabase(a.dbHelper),
		databases.NewRentalDatabase(a.dbHelper),
		databases.NewHotelBookingDatabase(a.dbHelper),
	)}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	r.Handle("/metrics", api.MetricsHandler()).Methods("GET")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	if a.Config.RequestTimeout > 0 {
		apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))
	}

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")

	apiCreate.Handle("/rentals", api.Middleware(http.HandlerFunc(rh.CreateRentalHandler))).Methods("POST")
	apiCreate.Handle("/rentals/my", api.Middleware(http.HandlerFunc(rh.MyRentalsHandler))).Methods("GET")
	apiCreate.Handle("/rentals/owner", api.Middleware(http.HandlerFunc(rh.OwnerRentalsHandler))).Methods("GET")
	apiCreate.Handle("/rentals/check-availability", api.Middleware(http.HandlerFunc(rh.CheckAvailabilityHandler))).Methods("POST")
	apiCreate.Handle("/rentals/calculate-cost", api.Middleware(http.HandlerFunc(rh.CalculateCostHandler))).Methods("POST")
	apiCreate.Handle("/rentals/{id}", api.Middleware(http.HandlerFunc(rh.RentalByIDHandler))).Methods("GET")
	apiCreate.Handle("/rentals/{id}/status", api.Middleware(http.HandlerFunc(rh.UpdateRentalStatusHandler))).Methods("PATCH")
	apiCreate.Handle("/rentals/{id}/cancel", api.Middleware(http.HandlerFunc(rh.CancelRentalHandler))).Methods("PATCH")

	apiCreate.Handle("/vehicles/{id}/availability", api.Middleware(http.HandlerFunc(v.UpdateAvailabilityHandler))).Methods("PATCH")
	apiCreate.Handle("/vehicles/{id}/reviews", api.Middleware(http.HandlerFunc(rv.VehicleReviewsHandler))).Methods("GET")
	apiCreate.Handle("/vehicles/{id}/reviews", api.Middleware(http.HandlerFunc(rv.CreateVehicleReviewHandler))).Methods("POST")
	apiCreate.Handle("/vehicles/{id}/reviews/{reviewId}", api.Middleware(http.HandlerFunc(rv.UpdateVehicleReviewHandler))).Methods("PUT")
	apiCreate.Handle("/vehicles/{id}/reviews/{reviewId}", api.Middleware(http.HandlerFunc(rv.DeleteVehicleReviewHandler))).Methods("DELETE")

	apiCreate.Handle("/hotels/{id}/reviews", api.Middleware(http.HandlerFunc(rv.HotelReviewsHandler))).Methods("GET")
	apiCreate.Handle("/hotels/{id}/reviews", api.Middleware(http.HandlerFunc(rv.CreateHotelReviewHandler))).Methods("POST")
	apiCreate.Handle("/hotels/{id}/reviews/{reviewId}", api.Middleware(http.HandlerFunc(rv.UpdateHotelReviewHandler))).Methods("PUT")
	apiCreate.Handle("/hotels/{id}/reviews/{reviewId}", api.Middleware(http.HandlerFunc(rv.DeleteHotelReviewHandler))).Methods("DELETE")
	apiCreate.Handle("/hotels/{id}/reviews/{reviewId}/status", api.Middleware(http.HandlerFunc(rv.UpdateHotelReviewStatusHandler))).Methods("PATCH")

	apiCreate.Handle("/cancellation-requests", api.Middleware(http.HandlerFunc(cr.CreateCancellationRequestHandler))).Methods("POST")
	apiCreate.Handle("/cancellation-requests/my", api.Middleware(http.HandlerFunc(cr.MyCancellationRequestsHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize(ctx context.Context) error {
	if err := a.Connect(ctx); err != nil {
		return err
	}

	if err := databases.EnsureIndexes(ctx, a.dbHelper); err != nil {
		zap.S().Errorw("failed to ensure indexes", "error", err)
		return err
	}

	if a.Config.SchedulerEnabled {
		a.scheduler = scheduler.NewScheduler(a.Bookings(), a.Ratings(), databases.NewSchedulerLockDatabase(a.dbHelper))
		a.scheduler.Start()
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Connect opens the database connection without starting the router or jobs
func (a *App) Connect(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().Errorw("failed to create new client", "error", err)
		return errors.Wrap(err, "creating database client")
	}

	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().Errorw("failed to connect to database", "error", err)
		return errors.Wrap(err, "connecting to database")
	}
	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	zap.S().Info("rental-api has connected to the database")
	return nil
}

// Shutdown stops background jobs and closes the database connection
func (a *App) Shutdown(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.client != nil {
		return a.client.Disconnect(ctx)
	}
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
