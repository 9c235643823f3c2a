package models

// RentalType is the billing unit of a rental
type RentalType string

// Predefined RentalType values
const (
	RentalTypeHourly  RentalType = "hourly"
	RentalTypeDaily   RentalType = "daily"
	RentalTypeWeekly  RentalType = "weekly"
	RentalTypeMonthly RentalType = "monthly"
)

// ValidRentalTypes returns all valid RentalType values
func ValidRentalTypes() []RentalType {
	return []RentalType{
		RentalTypeHourly,
		RentalTypeDaily,
		RentalTypeWeekly,
		RentalTypeMonthly,
	}
}

// IsValid checks if the RentalType value is one of the predefined constants
func (t RentalType) IsValid() bool {
	for _, validType := range ValidRentalTypes() {
		if t == validType {
			return true
		}
	}
	return false
}

// String returns the string representation of the RentalType
func (t RentalType) String() string {
	return string(t)
}

// RentalStatus is the lifecycle state of a vehicle rental
type RentalStatus string

// Predefined RentalStatus values
const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusConfirmed RentalStatus = "confirmed"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusDisputed  RentalStatus = "disputed"
)

// ValidRentalStatuses returns all valid RentalStatus values
func ValidRentalStatuses() []RentalStatus {
	return []RentalStatus{
		RentalStatusPending,
		RentalStatusConfirmed,
		RentalStatusActive,
		RentalStatusCompleted,
		RentalStatusCancelled,
		RentalStatusDisputed,
	}
}

// BlockingRentalStatuses are the statuses that occupy a vehicle's calendar
func BlockingRentalStatuses() []RentalStatus {
	return []RentalStatus{RentalStatusConfirmed, RentalStatusActive}
}

// IsValid checks if the RentalStatus value is one of the predefined constants
func (s RentalStatus) IsValid() bool {
	for _, validStatus := range ValidRentalStatuses() {
		if s == validStatus {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition may leave s
func (s RentalStatus) IsTerminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled || s == RentalStatusDisputed
}

// Blocks reports whether a rental in status s makes its date range unavailable
func (s RentalStatus) Blocks() bool {
	for _, b := range BlockingRentalStatuses() {
		if s == b {
			return true
		}
	}
	return false
}

var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPending:   {RentalStatusConfirmed, RentalStatusCancelled, RentalStatusDisputed},
	RentalStatusConfirmed: {RentalStatusActive, RentalStatusCancelled, RentalStatusDisputed},
	RentalStatusActive:    {RentalStatusCompleted, RentalStatusDisputed},
}

// CanTransitionTo reports whether moving from s to next is a legal step
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// String returns the string representation of the RentalStatus
func (s RentalStatus) String() string {
	return string(s)
}
