package storage

import (
	"context"

	"procurehub/internal/core/domain"
)

// BidStorage persists bids
type BidStorage struct {
	*Collection[domain.Bid]
}

func NewBidStorage(s *Store) *BidStorage {
	return &BidStorage{Collection: NewCollection[domain.Bid](s, KeyBids)}
}

func (b *BidStorage) GetBids(ctx context.Context) []domain.Bid { return b.All(ctx) }

func (b *BidStorage) SetBids(ctx context.Context, bids []domain.Bid) { b.Replace(ctx, bids) }

func (b *BidStorage) AddBid(ctx context.Context, bid domain.Bid) { b.Upsert(ctx, bid) }

func (b *BidStorage) GetBidByID(ctx context.Context, id string) (domain.Bid, bool) {
	return b.ByID(ctx, id)
}

func (b *BidStorage) GetBidsByProject(ctx context.Context, projectID string) []domain.Bid {
	return b.Find(ctx, func(bid domain.Bid) bool { return bid.ProjectID == projectID })
}

func (b *BidStorage) GetBidsBySubcontractor(ctx context.Context, subcontractorID string) []domain.Bid {
	return b.Find(ctx, func(bid domain.Bid) bool { return bid.SubcontractorID == subcontractorID })
}
