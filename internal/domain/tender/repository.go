package tender

import "context"

type Repository interface {
	GetByTenderID(ctx context.Context, tenderID string) (*Tender, error)
	GetByProcessNumber(ctx context.Context, processNumber string) (*Tender, error)
	Save(ctx context.Context, t *Tender) error

	GetLots(ctx context.Context, tenderPK uint64) ([]Lot, error)
	// GetLotForUpdate locks the lot row for the duration of the transaction.
	GetLotForUpdate(ctx context.Context, lotPK uint64) (*Lot, error)
	SaveLot(ctx context.Context, l *Lot) error

	GetBidders(ctx context.Context, tenderPK uint64) ([]Bidder, error)
	GetOffers(ctx context.Context, tenderPK uint64, lotNumber string) ([]Offer, error)
	SaveOffer(ctx context.Context, o *Offer) error

	GetDocument(ctx context.Context, documentPK uint64) (*Document, error)
	GetDocuments(ctx context.Context, lotPK uint64) ([]Document, error)
}
