package rental

import (
	"context"
	"errors"

	"github.com/driveshare/driveshare-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo is the gorm-backed Store.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "vehicle", ID: id}
		}
		return nil, err
	}
	return &v, nil
}

func (r *Repo) GetBid(ctx context.Context, id uint) (*models.Bid, error) {
	var b models.Bid
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("AddOns").
		First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "bid", ID: id}
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repo) CreateBid(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *Repo) SaveBid(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Save(bid).Error
}

func (r *Repo) ListAddOns(ctx context.Context, ownerID uint, ids []uint) ([]models.AddOn, error) {
	var addOns []models.AddOn
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Find(&addOns).Error
	return addOns, err
}

func (r *Repo) ListPendingBids(ctx context.Context, vehicleID uint) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status = ?", vehicleID, models.BidStatusPending).
		Find(&bids).Error
	return bids, err
}

func (r *Repo) ListBlockingBookings(ctx context.Context, vehicleID uint) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status = ? AND trip_status IN ?",
			vehicleID, models.BidStatusApproved, BlockingTripStatuses).
		Order("start_date ASC").
		Find(&bids).Error
	return bids, err
}

func (r *Repo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// sortColumns whitelists caller-supplied sort keys.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"startDate": "start_date",
	"endDate":   "end_date",
	"amount":    "amount",
}

func (r *Repo) ListBids(ctx context.Context, f BidFilter) ([]models.Bid, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Bid{})

	if f.OwnerID != 0 {
		q = q.Where("bids.owner_id = ?", f.OwnerID)
	}
	if f.BidderID != 0 {
		q = q.Where("bids.bidder_id = ?", f.BidderID)
	}
	if f.Status != "" {
		q = q.Where("bids.status = ?", f.Status)
	}
	if f.TripStatus != "" {
		q = q.Where("bids.trip_status = ?", f.TripStatus)
	}
	if !f.From.IsZero() {
		q = q.Where("bids.end_date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("bids.start_date <= ?", f.To)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Joins("JOIN vehicles ON vehicles.id = bids.vehicle_id").
			Joins("JOIN users ON users.id = bids.bidder_id").
			Where("vehicles.name ILIKE ? OR users.username ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if f.SortDesc || f.SortBy == "" {
		direction = "DESC"
	}

	var bids []models.Bid
	err := q.Preload("Vehicle").Preload("AddOns").
		Order("bids." + column + " " + direction).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&bids).Error
	if err != nil {
		return nil, 0, err
	}
	return bids, total, nil
}

// LockVehicle takes a per-vehicle row lock (SELECT ... FOR UPDATE) so the
// read-overlaps-then-cascade sequence in ApproveBid is serialized per
// vehicle. Only meaningful inside Transaction.
func (r *Repo) LockVehicle(ctx context.Context, vehicleID uint) error {
	var v models.Vehicle
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, vehicleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: "vehicle", ID: vehicleID}
	}
	return err
}

func (r *Repo) Transaction(ctx context.Context, fn func(Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repo{db: tx})
	})
}
