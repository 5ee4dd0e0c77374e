package rental

import (
	"context"
	"time"

	"github.com/driveshare/driveshare-backend/internal/models"
)

// BidFilter narrows dashboard queries. OwnerID and BidderID select the
// role side; From/To match bids whose range intersects the window; Search
// matches vehicle or counterparty names.
type BidFilter struct {
	OwnerID    uint
	BidderID   uint
	Status     models.BidStatus
	TripStatus models.TripStatus
	From       time.Time
	To         time.Time
	Search     string
	SortBy     string
	SortDesc   bool
	Page       int
	Limit      int
}

// BidPage is one page of dashboard results with totals consistent with
// the page actually returned.
type BidPage struct {
	Bids       []models.Bid `json:"bids"`
	TotalDocs  int64        `json:"totalDocs"`
	TotalPages int64        `json:"totalPages"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
}

// ListBids is the read-only dashboard facade. No write side effects.
func (s *Service) ListBids(ctx context.Context, f BidFilter) (*BidPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	bids, total, err := s.store.ListBids(ctx, f)
	if err != nil {
		return nil, err
	}

	return &BidPage{
		Bids:       bids,
		TotalDocs:  total,
		TotalPages: (total + int64(f.Limit) - 1) / int64(f.Limit),
		Page:       f.Page,
		Limit:      f.Limit,
	}, nil
}
