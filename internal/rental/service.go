package rental

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/driveshare/driveshare-backend/internal/models"
	"github.com/driveshare/driveshare-backend/pkg/utils"
)

// Store is the persistence boundary of the engine. Transaction must give
// the callback a store whose writes commit or roll back together, and
// LockVehicle must serialize concurrent approvals on the same vehicle.
type Store interface {
	GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error)
	GetBid(ctx context.Context, id uint) (*models.Bid, error)
	CreateBid(ctx context.Context, bid *models.Bid) error
	SaveBid(ctx context.Context, bid *models.Bid) error
	ListAddOns(ctx context.Context, ownerID uint, ids []uint) ([]models.AddOn, error)
	ListPendingBids(ctx context.Context, vehicleID uint) ([]models.Bid, error)
	ListBlockingBookings(ctx context.Context, vehicleID uint) ([]models.Bid, error)
	CreateReview(ctx context.Context, review *models.Review) error
	ListBids(ctx context.Context, f BidFilter) ([]models.Bid, int64, error)
	LockVehicle(ctx context.Context, vehicleID uint) error
	Transaction(ctx context.Context, fn func(Store) error) error
}

// Notifier delivers fire-and-forget lifecycle events. Failures must never
// roll back a transition, so implementations swallow their own errors.
type Notifier interface {
	BidPlaced(bid *models.Bid)
	BidApproved(bid *models.Bid)
	BidRejected(bid *models.Bid)
	TripStarted(bid *models.Bid)
	TripEnded(bid *models.Bid)
}

// CalendarCache caches per-vehicle blocked-date lists, invalidated on
// booking state change. May be nil; the index is always recomputable.
type CalendarCache interface {
	Get(ctx context.Context, vehicleID uint) ([]time.Time, bool)
	Set(ctx context.Context, vehicleID uint, days []time.Time)
	Invalidate(ctx context.Context, vehicleID uint)
}

// Config carries the platform surcharge percentages applied on top of the
// rental subtotal.
type Config struct {
	PlatformFeePercent float64
	TaxPercent         float64
}

// Service implements the booking/bidding lifecycle and pricing engine.
// All bid and trip mutation goes through here, never through direct field
// writes, so the state-machine invariants hold.
type Service struct {
	store    Store
	notifier Notifier
	calendar CalendarCache
	cfg      Config
}

func NewService(store Store, notifier Notifier, calendar CalendarCache, cfg Config) *Service {
	return &Service{store: store, notifier: notifier, calendar: calendar, cfg: cfg}
}

// PlaceBidInput is the bid submission payload.
type PlaceBidInput struct {
	VehicleID uint
	BidderID  uint
	Amount    float64
	StartDate time.Time
	EndDate   time.Time
	AddOnIDs  []uint
}

// PlaceBid validates and persists a pending bid. Availability is not
// checked here: competing pending bids may target overlapping ranges, and
// contention is resolved at approval time.
func (s *Service) PlaceBid(ctx context.Context, in PlaceBidInput) (*models.Bid, error) {
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, validationf("amount must be a number")
	}
	if in.Amount < utils.MinBidAmount || in.Amount > utils.MaxBidAmount {
		return nil, validationf("amount must be between %.0f and %.0f", utils.MinBidAmount, utils.MaxBidAmount)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, validationf("start and end dates are required")
	}
	start := utils.StartOfDay(in.StartDate)
	end := utils.StartOfDay(in.EndDate)
	if end.Before(start) {
		return nil, validationf("start date must not be after end date")
	}

	vehicle, err := s.store.GetVehicle(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != models.VehicleStatusApproved {
		return nil, validationf("vehicle %d is not open for bids", vehicle.ID)
	}
	if in.Amount < vehicle.Price {
		return nil, validationf("amount must be at least the vehicle price %.2f", vehicle.Price)
	}

	addOns, err := s.resolveAddOns(ctx, vehicle.OwnerID, in.AddOnIDs)
	if err != nil {
		return nil, err
	}

	bid := &models.Bid{
		VehicleID:     vehicle.ID,
		BidderID:      in.BidderID,
		OwnerID:       vehicle.OwnerID,
		Amount:        in.Amount,
		StartDate:     start,
		EndDate:       end,
		Status:        models.BidStatusPending,
		StartOdometer: models.OdometerUnset,
		EndOdometer:   models.OdometerUnset,
		AddOns:        addOns,
	}
	if err := s.store.CreateBid(ctx, bid); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BidPlaced(bid)
	}
	return bid, nil
}

// resolveAddOns checks the selection is a subset of the owner's catalog.
func (s *Service) resolveAddOns(ctx context.Context, ownerID uint, ids []uint) ([]models.AddOn, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	addOns, err := s.store.ListAddOns(ctx, ownerID, unique)
	if err != nil {
		return nil, err
	}
	if len(addOns) != len(unique) {
		return nil, validationf("add-on selection is not part of the owner's catalog")
	}
	return addOns, nil
}

// ApprovalCascade is the transactional unit of work for approving one bid:
// the winning transition plus every overlapping pending bid rejected with
// it. Making the cascade a value keeps the atomicity requirement visible.
type ApprovalCascade struct {
	Approved *models.Bid
	Rejected []*models.Bid
}

// planApprovalCascade decides, without side effects, which sibling pending
// bids fall when the given bid wins.
func planApprovalCascade(bid *models.Bid, pending []models.Bid) ApprovalCascade {
	cascade := ApprovalCascade{Approved: bid}
	for i := range pending {
		sibling := &pending[i]
		if sibling.ID == bid.ID {
			continue
		}
		if BidOverlaps(sibling, bid.StartDate, bid.EndDate) {
			cascade.Rejected = append(cascade.Rejected, sibling)
		}
	}
	return cascade
}

// ApproveBid approves a pending bid and rejects every overlapping pending
// bid on the same vehicle in one transaction. The vehicle row lock
// serializes the read-overlaps-then-cascade sequence, so two concurrent
// approvals cannot both win; a retry after a completed approval finds the
// bid terminal and gets a ConflictError instead of a second cascade.
func (s *Service) ApproveBid(ctx context.Context, bidID uint) (*models.Bid, error) {
	var cascade ApprovalCascade
	err := s.store.Transaction(ctx, func(tx Store) error {
		bid, err := tx.GetBid(ctx, bidID)
		if err != nil {
			return err
		}
		if err := tx.LockVehicle(ctx, bid.VehicleID); err != nil {
			return err
		}
		// Re-read under the lock: a concurrent approval may have
		// cascaded this bid to rejected while we waited.
		bid, err = tx.GetBid(ctx, bidID)
		if err != nil {
			return err
		}
		// Placement never checks availability, so a pending bid may
		// overlap a booking approved after it was placed. Approving it
		// anyway would double-book the vehicle.
		blocking, err := tx.ListBlockingBookings(ctx, bid.VehicleID)
		if err != nil {
			return err
		}
		for i := range blocking {
			if blocking[i].ID == bid.ID {
				continue
			}
			if BidOverlaps(&blocking[i], bid.StartDate, bid.EndDate) {
				return &ConflictError{Reason: fmt.Sprintf("vehicle %d is already booked for part of this range", bid.VehicleID)}
			}
		}
		pending, err := tx.ListPendingBids(ctx, bid.VehicleID)
		if err != nil {
			return err
		}

		cascade = planApprovalCascade(bid, pending)
		if err := ApplyBidTransition(cascade.Approved, models.BidStatusApproved); err != nil {
			return err
		}
		if err := tx.SaveBid(ctx, cascade.Approved); err != nil {
			return err
		}
		for _, loser := range cascade.Rejected {
			if err := ApplyBidTransition(loser, models.BidStatusRejected); err != nil {
				return err
			}
			if err := tx.SaveBid(ctx, loser); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.calendar != nil {
		s.calendar.Invalidate(ctx, cascade.Approved.VehicleID)
	}
	if s.notifier != nil {
		s.notifier.BidApproved(cascade.Approved)
		for _, loser := range cascade.Rejected {
			s.notifier.BidRejected(loser)
		}
	}
	return cascade.Approved, nil
}

// RejectBid is the straightforward terminal transition.
func (s *Service) RejectBid(ctx context.Context, bidID uint) (*models.Bid, error) {
	var bid *models.Bid
	err := s.store.Transaction(ctx, func(tx Store) error {
		var err error
		bid, err = tx.GetBid(ctx, bidID)
		if err != nil {
			return err
		}
		if err := ApplyBidTransition(bid, models.BidStatusRejected); err != nil {
			return err
		}
		return tx.SaveBid(ctx, bid)
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.BidRejected(bid)
	}
	return bid, nil
}

// GetBid loads a bid with its vehicle and add-ons.
func (s *Service) GetBid(ctx context.Context, bidID uint) (*models.Bid, error) {
	return s.store.GetBid(ctx, bidID)
}

// OverlappingBids returns the other pending bids on the same vehicle whose
// ranges intersect the given bid's range, i.e. the bids an approval would
// cascade-reject.
func (s *Service) OverlappingBids(ctx context.Context, bidID uint) ([]models.Bid, error) {
	bid, err := s.store.GetBid(ctx, bidID)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.ListPendingBids(ctx, bid.VehicleID)
	if err != nil {
		return nil, err
	}
	overlaps := make([]models.Bid, 0)
	for i := range pending {
		if pending[i].ID == bid.ID {
			continue
		}
		if BidOverlaps(&pending[i], bid.StartDate, bid.EndDate) {
			overlaps = append(overlaps, pending[i])
		}
	}
	return overlaps, nil
}

// IsAvailable reports whether a date range is free of blocking bookings.
func (s *Service) IsAvailable(ctx context.Context, vehicleID uint, start, end time.Time) (bool, error) {
	bookings, err := s.store.ListBlockingBookings(ctx, vehicleID)
	if err != nil {
		return false, err
	}
	for i := range bookings {
		if BidOverlaps(&bookings[i], start, end) {
			return false, nil
		}
	}
	return true, nil
}

// BlockedDates returns the vehicle's unavailable calendar days, one entry
// per blocked day, via the cache when warm.
func (s *Service) BlockedDates(ctx context.Context, vehicleID uint) ([]time.Time, error) {
	if s.calendar != nil {
		if days, ok := s.calendar.Get(ctx, vehicleID); ok {
			return days, nil
		}
	}
	bookings, err := s.store.ListBlockingBookings(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	days := ExpandBlockedDates(bookings)
	if s.calendar != nil {
		s.calendar.Set(ctx, vehicleID, days)
	}
	return days, nil
}

// StartTrip records the start odometer reading and moves the booking to
// started. Only reachable from approved.
func (s *Service) StartTrip(ctx context.Context, bookingID uint, startOdometer float64) (*models.Bid, error) {
	if startOdometer < 0 {
		return nil, validationf("start odometer must be non-negative")
	}
	var bid *models.Bid
	err := s.store.Transaction(ctx, func(tx Store) error {
		var err error
		bid, err = tx.GetBid(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := ApplyTripTransition(bid, models.TripStatusStarted); err != nil {
			return err
		}
		bid.StartOdometer = startOdometer
		return tx.SaveBid(ctx, bid)
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.TripStarted(bid)
	}
	return bid, nil
}

// EndTrip records the end odometer reading, computes the authoritative
// settlement from the actual distance, and moves the booking to ended.
func (s *Service) EndTrip(ctx context.Context, bookingID uint, endOdometer float64) (*models.Bid, utils.SettlementResult, error) {
	var bid *models.Bid
	var settlement utils.SettlementResult
	err := s.store.Transaction(ctx, func(tx Store) error {
		var err error
		bid, err = tx.GetBid(ctx, bookingID)
		if err != nil {
			return err
		}
		if bid.Status != models.BidStatusApproved || bid.TripStatus != models.TripStatusStarted {
			return &InvalidStateError{Reason: "trip must be started before it can end"}
		}
		if endOdometer < bid.StartOdometer {
			return validationf("end odometer must be >= start")
		}
		if err := ApplyTripTransition(bid, models.TripStatusEnded); err != nil {
			return err
		}
		bid.EndOdometer = endOdometer

		settlement = s.Settle(bid)
		bid.FinalAmount = settlement.Total
		return tx.SaveBid(ctx, bid)
	})
	if err != nil {
		return nil, utils.SettlementResult{}, err
	}
	if s.notifier != nil {
		s.notifier.TripEnded(bid)
	}
	return bid, settlement, nil
}

// Settle computes the final amount for a booking from its dates, agreed
// daily rate, odometer delta and selected add-ons. Pure; identical inputs
// give identical results in preview and settlement call sites.
func (s *Service) Settle(bid *models.Bid) utils.SettlementResult {
	rental := utils.CalculateRentalAmount(bid.StartDate, bid.EndDate, bid.Amount)
	fine := utils.CalculateOverageFine(bid.StartOdometer, bid.EndOdometer)
	prices := make([]float64, 0, len(bid.AddOns))
	for _, a := range bid.AddOns {
		prices = append(prices, a.Price)
	}
	return utils.CalculateSettlement(rental, fine, prices, s.cfg.PlatformFeePercent, s.cfg.TaxPercent)
}

// maxCommentLength bounds review text.
const maxCommentLength = 1000

// SubmitReview attaches the one-time review to an ended booking and moves
// it to reviewed. A second attempt conflicts.
func (s *Service) SubmitReview(ctx context.Context, bookingID, reviewerID uint, rating float64, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, validationf("rating must be between 1 and 5")
	}
	if len(comment) > maxCommentLength {
		return nil, validationf("comment must be at most %d characters", maxCommentLength)
	}
	var review *models.Review
	err := s.store.Transaction(ctx, func(tx Store) error {
		bid, err := tx.GetBid(ctx, bookingID)
		if err != nil {
			return err
		}
		if bid.TripStatus == models.TripStatusReviewed {
			return &ConflictError{Reason: "booking is already reviewed"}
		}
		if err := ApplyTripTransition(bid, models.TripStatusReviewed); err != nil {
			return err
		}
		review = &models.Review{
			BidID:      bid.ID,
			ReviewerID: reviewerID,
			Rating:     rating,
			Comment:    comment,
		}
		if err := tx.CreateReview(ctx, review); err != nil {
			return err
		}
		return tx.SaveBid(ctx, bid)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}
