package databases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Pagination defaults applied when the caller does not ask for a page size
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Paginate turns page and limit query values into find options
type Paginate struct {
	limit int64
	page  int64
}

// NewPaginate clamps page and limit to sane values
func NewPaginate(limit, page int) *Paginate {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if page <= 0 {
		page = 1
	}
	return &Paginate{
		limit: int64(limit),
		page:  int64(page),
	}
}

// Page returns the 1-based page number
func (mp *Paginate) Page() int {
	return int(mp.page)
}

// Limit returns the page size
func (mp *Paginate) Limit() int {
	return int(mp.limit)
}

// Pages returns how many pages total documents span
func (mp *Paginate) Pages(total int64) int64 {
	return (total + mp.limit - 1) / mp.limit
}

// GetPaginatedOpts returns find options for the page, newest first
func (mp *Paginate) GetPaginatedOpts() *options.FindOptions {
	l := mp.limit
	skip := mp.page*mp.limit - mp.limit
	fOpt := options.FindOptions{Limit: &l, Skip: &skip}
	fOpt.SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return &fOpt
}
