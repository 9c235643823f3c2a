package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/serendibgo/rental-api/databases/mocks"
)

type fakeAdvancer struct {
	calls int
	err   error
}

func (f *fakeAdvancer) AdvanceStatuses(ctx context.Context) (int64, int64, error) {
	f.calls++
	return 2, 1, f.err
}

type fakeReconciler struct {
	calls int
}

func (f *fakeReconciler) ReconcileAll(ctx context.Context) (int, int, error) {
	f.calls++
	return 3, 1, nil
}

func TestScheduler_AdvanceRentalStatuses(t *testing.T) {
	lockDB := mocks.NewSchedulerLockDatabase(t)
	rentals := &fakeAdvancer{}
	s := NewScheduler(rentals, &fakeReconciler{}, lockDB)

	lockDB.On("TryAcquireLock", mock.Anything, rentalStatusJob, s.instanceID, mock.Anything).Return(true, nil)
	lockDB.On("ReleaseLock", mock.Anything, rentalStatusJob, s.instanceID).Return(nil)

	s.advanceRentalStatuses()

	assert.Equal(t, 1, rentals.calls)
}

func TestScheduler_SkipsWhenLockHeld(t *testing.T) {
	lockDB := mocks.NewSchedulerLockDatabase(t)
	ratings := &fakeReconciler{}
	s := NewScheduler(&fakeAdvancer{}, ratings, lockDB)

	lockDB.On("TryAcquireLock", mock.Anything, ratingReconcileJob, s.instanceID, mock.Anything).Return(false, nil)

	s.reconcileRatings()

	assert.Equal(t, 0, ratings.calls)
	lockDB.AssertNotCalled(t, "ReleaseLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_LockErrorSkipsJob(t *testing.T) {
	lockDB := mocks.NewSchedulerLockDatabase(t)
	rentals := &fakeAdvancer{}
	s := NewScheduler(rentals, &fakeReconciler{}, lockDB)

	lockDB.On("TryAcquireLock", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("mocked-error"))

	s.advanceRentalStatuses()

	assert.Equal(t, 0, rentals.calls)
}

func TestScheduler_ReleasesLockWhenJobFails(t *testing.T) {
	lockDB := mocks.NewSchedulerLockDatabase(t)
	rentals := &fakeAdvancer{err: errors.New("mocked-error")}
	s := NewScheduler(rentals, &fakeReconciler{}, lockDB)

	lockDB.On("TryAcquireLock", mock.Anything, rentalStatusJob, s.instanceID, mock.Anything).Return(true, nil)
	lockDB.On("ReleaseLock", mock.Anything, rentalStatusJob, s.instanceID).Return(nil)

	s.advanceRentalStatuses()

	assert.Equal(t, 1, rentals.calls)
}
