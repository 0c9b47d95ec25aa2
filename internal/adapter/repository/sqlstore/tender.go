package sqlstore

import (
	"context"

	tenderDomain "github.com/zoeccivil/licitaciones-engine/internal/domain/tender"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TenderRepository struct{ db *gorm.DB }

func NewTenderRepository(db *gorm.DB) *TenderRepository { return &TenderRepository{db: db} }

func (r *TenderRepository) GetByTenderID(ctx context.Context, tenderID string) (*tenderDomain.Tender, error) {
	var out tenderDomain.Tender
	res := r.db.WithContext(ctx).
		Preload("OurCompanies").
		Where("tender_id = ?", tenderID).
		First(&out)
	return &out, res.Error
}

func (r *TenderRepository) GetByProcessNumber(ctx context.Context, processNumber string) (*tenderDomain.Tender, error) {
	var out tenderDomain.Tender
	res := r.db.WithContext(ctx).
		Preload("OurCompanies").
		Where("process_number = ?", processNumber).
		First(&out)
	return &out, res.Error
}

func (r *TenderRepository) Save(ctx context.Context, t *tenderDomain.Tender) error {
	return r.db.WithContext(ctx).Omit("OurCompanies", "Lots").Save(t).Error
}

func (r *TenderRepository) GetLots(ctx context.Context, tenderPK uint64) ([]tenderDomain.Lot, error) {
	var out []tenderDomain.Lot
	res := r.db.WithContext(ctx).
		Where("tender_id = ?", tenderPK).
		Order("number ASC").
		Find(&out)
	return out, res.Error
}

func (r *TenderRepository) GetLotForUpdate(ctx context.Context, lotPK uint64) (*tenderDomain.Lot, error) {
	q := r.db.WithContext(ctx)
	// SQLite has no SELECT ... FOR UPDATE; its single writer serializes lot
	// transactions anyway.
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out tenderDomain.Lot
	res := q.Where("id = ?", lotPK).First(&out)
	return &out, res.Error
}

func (r *TenderRepository) SaveLot(ctx context.Context, l *tenderDomain.Lot) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *TenderRepository) GetBidders(ctx context.Context, tenderPK uint64) ([]tenderDomain.Bidder, error) {
	var out []tenderDomain.Bidder
	res := r.db.WithContext(ctx).
		Where("tender_id = ?", tenderPK).
		Order("name ASC").
		Find(&out)
	return out, res.Error
}

func (r *TenderRepository) GetOffers(ctx context.Context, tenderPK uint64, lotNumber string) ([]tenderDomain.Offer, error) {
	var out []tenderDomain.Offer
	res := r.db.WithContext(ctx).
		Where("tender_id = ? AND lot_number = ?", tenderPK, lotNumber).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *TenderRepository) SaveOffer(ctx context.Context, o *tenderDomain.Offer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *TenderRepository) GetDocument(ctx context.Context, documentPK uint64) (*tenderDomain.Document, error) {
	var out tenderDomain.Document
	res := r.db.WithContext(ctx).Where("id = ?", documentPK).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *TenderRepository) GetDocuments(ctx context.Context, lotPK uint64) ([]tenderDomain.Document, error) {
	var out []tenderDomain.Document
	res := r.db.WithContext(ctx).
		Where("lot_id = ?", lotPK).
		Order("code ASC").
		Find(&out)
	return out, res.Error
}
