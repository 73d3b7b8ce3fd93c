package services

import (
	"errors"
	"sync"
	"testing"

	"procurehub/internal/core/bidreview"
	"procurehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidService_AwardBid(t *testing.T) {
	f := newFixture(t)

	awarded, err := f.svc.Bids.AwardBid(f.ctx, "bid-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BidAwarded, awarded.Status)

	for _, id := range []string{"bid-2", "bid-3"} {
		b, err := f.svc.Bids.GetBid(f.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.BidRejected, b.Status, id)
	}

	project, err := f.svc.Projects.GetProject(f.ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectAwarded, project.Status)
	assert.Equal(t, f.clock.Now(), project.UpdatedAt)

	winner := f.notificationsFor(t, "sub-1")
	require.NotEmpty(t, winner)
	assert.Equal(t, "Bid awarded", winner[0].Title)

	loser := f.notificationsFor(t, "sub-2")
	require.NotEmpty(t, loser)
	assert.Equal(t, "Bid not selected", loser[0].Title)
}

func TestBidService_AwardBidExclusive(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Bids.AwardBid(f.ctx, "bid-1")
	require.NoError(t, err)

	_, err = f.svc.Bids.AwardBid(f.ctx, "bid-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.Bids.AwardBid(f.ctx, "bid-2")
	assert.ErrorIs(t, err, domain.ErrBidAlreadyAwarded)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.Bids.AwardBid(f.ctx, "bid-5")
	assert.ErrorIs(t, err, domain.ErrBidAlreadyAwarded)

	bids, err := f.svc.Bids.GetBids(f.ctx, BidFilter{ProjectID: "proj-1", Statuses: []domain.BidStatus{domain.BidAwarded}})
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, "bid-1", bids[0].ID)

	_, err = f.svc.Bids.AwardBid(f.ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrBidNotFound)
}

func TestBidService_AwardBidConcurrent(t *testing.T) {
	f := newFixture(t)

	ids := []string{"bid-1", "bid-2", "bid-3"}
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.svc.Bids.AwardBid(f.ctx, id)
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrInvalidTransition), err.Error())
	}
	assert.Equal(t, 1, succeeded)

	bids, err := f.svc.Bids.GetBids(f.ctx, BidFilter{ProjectID: "proj-1", Statuses: []domain.BidStatus{domain.BidAwarded}})
	require.NoError(t, err)
	assert.Len(t, bids, 1)
}

func TestBidService_SubmitBid(t *testing.T) {
	f := newFixture(t)

	bid, err := f.svc.Bids.SubmitBid(f.ctx, SubmitBidInput{
		ProjectID:       "proj-3",
		SubcontractorID: "sub-1",
		Amount:          640_000,
		Timeline:        " 12 weeks ",
		Description:     "Electrical rough-in and trim",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BidPending, bid.Status)
	assert.Equal(t, "12 weeks", bid.Timeline)
	assert.Equal(t, f.clock.Now(), bid.SubmittedAt)

	require.NotNil(t, bid.Contractor)
	assert.Equal(t, "Precision Electric", bid.Contractor.Name)
	assert.Equal(t, 4.8, bid.Contractor.Rating)
	assert.Equal(t, 67, bid.Contractor.CompletedProjects)
	assert.Equal(t, []string{"Electrical", "Fire Protection"}, bid.Contractor.Specializations)

	gc := f.notificationsFor(t, "gc-2")
	require.NotEmpty(t, gc)
	assert.Equal(t, "New bid received", gc[0].Title)
	assert.Equal(t, "/projects/proj-3/bids", gc[0].ActionURL)
}

func TestBidService_SubmitBidRejected(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input SubmitBidInput
		want  error
	}{
		{"draft project", SubmitBidInput{ProjectID: "proj-4", SubcontractorID: "sub-1", Amount: 1}, domain.ErrValidation},
		{"awarded project", SubmitBidInput{ProjectID: "proj-2", SubcontractorID: "sub-1", Amount: 1}, domain.ErrValidation},
		{"not a subcontractor", SubmitBidInput{ProjectID: "proj-1", SubcontractorID: "gc-2", Amount: 1}, domain.ErrValidation},
		{"negative amount", SubmitBidInput{ProjectID: "proj-1", SubcontractorID: "sub-1", Amount: -1}, domain.ErrValidation},
		{"unknown project", SubmitBidInput{ProjectID: "nope", SubcontractorID: "sub-1"}, domain.ErrProjectNotFound},
		{"unknown subcontractor", SubmitBidInput{ProjectID: "proj-1", SubcontractorID: "nope"}, domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Bids.SubmitBid(f.ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBidService_RejectAndClarify(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.Bids.RequestClarification(f.ctx, "bid-2", "Does this include fixtures?")
	require.NoError(t, err)
	assert.Contains(t, b.Notes, "Does this include fixtures?")

	_, err = f.svc.Bids.RequestClarification(f.ctx, "bid-2", "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	b, err = f.svc.Bids.RejectBid(f.ctx, "bid-2", "over budget")
	require.NoError(t, err)
	assert.Equal(t, domain.BidRejected, b.Status)
	assert.Contains(t, b.Notes, "over budget")

	_, err = f.svc.Bids.RejectBid(f.ctx, "bid-2", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	amount := 1.0
	_, err = f.svc.Bids.UpdateBid(f.ctx, "bid-2", UpdateBidInput{Amount: &amount})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBidService_ReviewBids(t *testing.T) {
	f := newFixture(t)

	review, err := f.svc.Bids.ReviewBids(f.ctx, "proj-1", "")
	require.NoError(t, err)
	assert.Equal(t, bidreview.SortByAmount, review.SortedBy)
	require.Len(t, review.Bids, 3)
	assert.Equal(t, "bid-2", review.Bids[0].ID)
	require.NotNil(t, review.Lowest)
	assert.Equal(t, "bid-2", review.Lowest.ID)
	assert.Equal(t, 3, review.Stats.Count)
	assert.Equal(t, 510_000.0, review.Stats.MaxAmount)

	_, err = f.svc.Bids.ReviewBids(f.ctx, "proj-1", "cheapest")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Bids.ReviewBids(f.ctx, "missing", "amount")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
