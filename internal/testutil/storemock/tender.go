package storemock

import (
	"context"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/tender"
	"gorm.io/gorm"
)

var _ domain.Repository = (*TenderRepo)(nil)

// TenderRepo is a function-backed mock that satisfies tender.Repository.
// Fill in the function fields you need in a test; read methods default to
// gorm.ErrRecordNotFound, writes to a no-op.
type TenderRepo struct {
	GetByTenderIDFn      func(ctx context.Context, tenderID string) (*domain.Tender, error)
	GetByProcessNumberFn func(ctx context.Context, processNumber string) (*domain.Tender, error)
	SaveFn               func(ctx context.Context, t *domain.Tender) error

	GetLotsFn         func(ctx context.Context, tenderPK uint64) ([]domain.Lot, error)
	GetLotForUpdateFn func(ctx context.Context, lotPK uint64) (*domain.Lot, error)
	SaveLotFn         func(ctx context.Context, l *domain.Lot) error

	GetBiddersFn func(ctx context.Context, tenderPK uint64) ([]domain.Bidder, error)
	GetOffersFn  func(ctx context.Context, tenderPK uint64, lotNumber string) ([]domain.Offer, error)
	SaveOfferFn  func(ctx context.Context, o *domain.Offer) error

	GetDocumentFn  func(ctx context.Context, documentPK uint64) (*domain.Document, error)
	GetDocumentsFn func(ctx context.Context, lotPK uint64) ([]domain.Document, error)
}

func (m *TenderRepo) GetByTenderID(ctx context.Context, tenderID string) (*domain.Tender, error) {
	if m.GetByTenderIDFn != nil {
		return m.GetByTenderIDFn(ctx, tenderID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *TenderRepo) GetByProcessNumber(ctx context.Context, processNumber string) (*domain.Tender, error) {
	if m.GetByProcessNumberFn != nil {
		return m.GetByProcessNumberFn(ctx, processNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *TenderRepo) Save(ctx context.Context, t *domain.Tender) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *TenderRepo) GetLots(ctx context.Context, tenderPK uint64) ([]domain.Lot, error) {
	if m.GetLotsFn != nil {
		return m.GetLotsFn(ctx, tenderPK)
	}
	return nil, nil
}

func (m *TenderRepo) GetLotForUpdate(ctx context.Context, lotPK uint64) (*domain.Lot, error) {
	if m.GetLotForUpdateFn != nil {
		return m.GetLotForUpdateFn(ctx, lotPK)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *TenderRepo) SaveLot(ctx context.Context, l *domain.Lot) error {
	if m.SaveLotFn != nil {
		return m.SaveLotFn(ctx, l)
	}
	return nil
}

func (m *TenderRepo) GetBidders(ctx context.Context, tenderPK uint64) ([]domain.Bidder, error) {
	if m.GetBiddersFn != nil {
		return m.GetBiddersFn(ctx, tenderPK)
	}
	return nil, nil
}

func (m *TenderRepo) GetOffers(ctx context.Context, tenderPK uint64, lotNumber string) ([]domain.Offer, error) {
	if m.GetOffersFn != nil {
		return m.GetOffersFn(ctx, tenderPK, lotNumber)
	}
	return nil, nil
}

func (m *TenderRepo) SaveOffer(ctx context.Context, o *domain.Offer) error {
	if m.SaveOfferFn != nil {
		return m.SaveOfferFn(ctx, o)
	}
	return nil
}

func (m *TenderRepo) GetDocument(ctx context.Context, documentPK uint64) (*domain.Document, error) {
	if m.GetDocumentFn != nil {
		return m.GetDocumentFn(ctx, documentPK)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *TenderRepo) GetDocuments(ctx context.Context, lotPK uint64) ([]domain.Document, error) {
	if m.GetDocumentsFn != nil {
		return m.GetDocumentsFn(ctx, lotPK)
	}
	return nil, nil
}
