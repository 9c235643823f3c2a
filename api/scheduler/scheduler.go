package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/serendibgo/rental-api/api"
	"github.com/serendibgo/rental-api/databases"
)

// Job names double as their lock ids
const (
	rentalStatusJob    = "rental_status_job"
	ratingReconcileJob = "rating_reconcile_job"
)

// StatusAdvancer moves rentals along as their dates pass
type StatusAdvancer interface {
	AdvanceStatuses(ctx context.Context) (activated, completed int64, err error)
}

// RatingReconciler recomputes every stored rating summary
type RatingReconciler interface {
	ReconcileAll(ctx context.Context) (vehicles, hotels int, err error)
}

// Scheduler handles periodic background jobs for rentals and ratings
type Scheduler struct {
	cron       *cron.Cron
	Rentals    StatusAdvancer
	Ratings    RatingReconciler
	LockDB     databases.SchedulerLockDatabase
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(rentals StatusAdvancer, ratings RatingReconciler, lockDB databases.SchedulerLockDatabase) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Rentals:    rentals,
		Ratings:    ratings,
		LockDB:     lockDB,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Activate and complete rentals every five minutes
	_, err := s.cron.AddFunc("*/5 * * * *", s.advanceRentalStatuses)
	if err != nil {
		zap.S().Errorw("failed to register rental status job", "error", err)
	}

	// Reconcile ratings nightly at 21:30 UTC (03:00 in Colombo)
	_, err = s.cron.AddFunc("30 21 * * *", s.reconcileRatings)
	if err != nil {
		zap.S().Errorw("failed to register rating reconcile job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Rental scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Rental scheduler stopped")
}

func (s *Scheduler) advanceRentalStatuses() {
	s.runLocked(rentalStatusJob, 4*time.Minute, func(ctx context.Context) error {
		activated, completed, err := s.Rentals.AdvanceStatuses(ctx)
		if err != nil {
			return err
		}
		if activated > 0 || completed > 0 {
			api.RentalTransitions.WithLabelValues("active").Add(float64(activated))
			api.RentalTransitions.WithLabelValues("completed").Add(float64(completed))
		}
		zap.S().Infow("Rental status sweep complete", "activated", activated, "completed", completed)
		return nil
	})
}

func (s *Scheduler) reconcileRatings() {
	s.runLocked(ratingReconcileJob, 30*time.Minute, func(ctx context.Context) error {
		_, _, err := s.Ratings.ReconcileAll(ctx)
		return err
	})
}

// runLocked runs job on at most one instance at a time. The lock outlives
// the job's own timeout so a slow run cannot overlap the next one.
func (s *Scheduler) runLocked(name string, timeout time.Duration, job func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	acquired, err := s.LockDB.TryAcquireLock(ctx, name, s.instanceID, timeout+time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for job", "job", name, "error", err)
		api.SchedulerRuns.WithLabelValues(name, "lock_error").Inc()
		return
	}
	if !acquired {
		zap.S().Debugw("Job already running on another instance, skipping", "job", name)
		api.SchedulerRuns.WithLabelValues(name, "skipped").Inc()
		return
	}
	defer func() {
		if err := s.LockDB.ReleaseLock(context.Background(), name, s.instanceID); err != nil {
			zap.S().Warnw("failed to release job lock", "job", name, "error", err)
		}
	}()

	zap.S().Infow("Running scheduled job", "job", name, "instance", s.instanceID)
	if err := job(ctx); err != nil {
		zap.S().Errorw("scheduled job failed", "job", name, "error", err)
		api.SchedulerRuns.WithLabelValues(name, "failed").Inc()
		return
	}
	api.SchedulerRuns.WithLabelValues(name, "succeeded").Inc()
}
