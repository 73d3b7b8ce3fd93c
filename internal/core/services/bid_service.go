package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"procurehub/internal/core/bidreview"
	"procurehub/internal/core/domain"
)

// BidService handles bid submission and the award workflow
type BidService struct {
	repos         *Repositories
	notifications *NotificationService
	env           Env

	// awardMu serializes awards so two bids on one project cannot both pass the sibling check
	awardMu sync.Mutex
}

// NewBidService creates a new bid service
func NewBidService(repos *Repositories, notifications *NotificationService, env Env) *BidService {
	return &BidService{repos: repos, notifications: notifications, env: env}
}

// BidFilter narrows GetBids
type BidFilter struct {
	ProjectID       string
	SubcontractorID string
	Statuses        []domain.BidStatus
	Limit           int
}

// SubmitBidInput for submitting a bid
type SubmitBidInput struct {
	ProjectID       string  `json:"projectId"`
	SubcontractorID string  `json:"subcontractorId"`
	Amount          float64 `json:"amount"`
	Timeline        string  `json:"timeline"`
	Description     string  `json:"description"`
}

// UpdateBidInput is a partial update of a pending bid
type UpdateBidInput struct {
	Amount      *float64 `json:"amount"`
	Timeline    *string  `json:"timeline"`
	Description *string  `json:"description"`
	Notes       *string  `json:"notes"`
}

// GetBids lists bids newest first
func (s *BidService) GetBids(ctx context.Context, filter BidFilter) ([]domain.Bid, error) {
	if err := s.env.begin(ctx, "GetBids"); err != nil {
		return nil, err
	}
	bids, err := s.listBids(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newestFirst(bids, bidTime, filter.Limit), nil
}

func (s *BidService) listBids(ctx context.Context, filter BidFilter) ([]domain.Bid, error) {
	return s.repos.Bids.List(ctx, func(b domain.Bid) bool {
		if filter.ProjectID != "" && b.ProjectID != filter.ProjectID {
			return false
		}
		if filter.SubcontractorID != "" && b.SubcontractorID != filter.SubcontractorID {
			return false
		}
		return containsStatus(filter.Statuses, b.Status)
	})
}

// GetBid gets a bid by ID
func (s *BidService) GetBid(ctx context.Context, id string) (*domain.Bid, error) {
	if err := s.env.begin(ctx, "GetBid"); err != nil {
		return nil, err
	}
	b, err := s.repos.Bids.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrBidNotFound, id)
	}
	return &b, nil
}

// SubmitBid places a pending bid on a project that accepts bids and notifies its GC
func (s *BidService) SubmitBid(ctx context.Context, input SubmitBidInput) (*domain.Bid, error) {
	if err := s.env.begin(ctx, "SubmitBid"); err != nil {
		return nil, err
	}
	if input.Amount < 0 {
		return nil, domain.Validationf("amount must not be negative")
	}

	project, err := s.repos.Projects.Get(ctx, input.ProjectID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProjectNotFound, input.ProjectID)
	}
	sub, err := s.repos.Users.Get(ctx, input.SubcontractorID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, input.SubcontractorID)
	}
	if sub.Role != domain.RoleSubcontractor {
		return nil, domain.Validationf("user %s is not a subcontractor", sub.ID)
	}
	if !project.Status.AcceptsBids() {
		return nil, domain.Validationf("project %s is %s and does not accept bids", project.ID, project.Status)
	}

	snapshot, err := s.contractorSnapshot(ctx, sub)
	if err != nil {
		return nil, err
	}

	bid, err := s.repos.Bids.Create(ctx, domain.Bid{
		ID:              s.env.newID(),
		ProjectID:       project.ID,
		SubcontractorID: sub.ID,
		Amount:          input.Amount,
		Timeline:        strings.TrimSpace(input.Timeline),
		Description:     input.Description,
		Status:          domain.BidPending,
		Contractor:      snapshot,
		SubmittedAt:     s.env.now(),
	})
	if err != nil {
		return nil, err
	}

	s.notifications.notifyQuietly(ctx, NotifyInput{
		UserID:    project.GCID,
		Title:     "New bid received",
		Message:   fmt.Sprintf("%s submitted a bid of $%.2f on %s.", snapshot.Name, bid.Amount, project.Name),
		Type:      domain.NotificationInfo,
		Priority:  domain.PriorityMedium,
		Category:  domain.CategoryBid,
		ActionURL: "/projects/" + project.ID + "/bids",
	})
	return &bid, nil
}

// contractorSnapshot derives the contractor view from the subcontractor's bid history.
// Rating, on-time rate and specializations carry over from the latest earlier snapshot.
func (s *BidService) contractorSnapshot(ctx context.Context, sub domain.User) (*domain.ContractorSnapshot, error) {
	history, err := s.repos.Bids.List(ctx, func(b domain.Bid) bool { return b.SubcontractorID == sub.ID })
	if err != nil {
		return nil, err
	}

	name := sub.Company
	if name == "" {
		name = sub.Name
	}
	snap := &domain.ContractorSnapshot{ID: sub.ID, Name: name, Specializations: []string{}}

	awarded := 0
	var latest *domain.Bid
	for i := range history {
		b := &history[i]
		if b.Status == domain.BidAwarded {
			awarded++
		}
		if b.Contractor != nil && (latest == nil || b.SubmittedAt.After(latest.SubmittedAt)) {
			latest = b
		}
	}
	snap.CompletedProjects = awarded
	if latest != nil {
		prev := latest.Contractor
		snap.Rating = prev.Rating
		snap.OnTimeRate = prev.OnTimeRate
		snap.Specializations = append([]string{}, prev.Specializations...)
		if prev.CompletedProjects > snap.CompletedProjects {
			snap.CompletedProjects = prev.CompletedProjects
		}
	}
	return snap, nil
}

// UpdateBid edits a bid while it is still pending
func (s *BidService) UpdateBid(ctx context.Context, id string, input UpdateBidInput) (*domain.Bid, error) {
	if err := s.env.begin(ctx, "UpdateBid"); err != nil {
		return nil, err
	}
	if input.Amount != nil && *input.Amount < 0 {
		return nil, domain.Validationf("amount must not be negative")
	}
	b, err := s.repos.Bids.Update(ctx, id, func(b *domain.Bid) error {
		if b.Status != domain.BidPending {
			return fmt.Errorf("%w: bid %s is %s", domain.ErrInvalidTransition, b.ID, b.Status)
		}
		if input.Amount != nil {
			b.Amount = *input.Amount
		}
		if input.Timeline != nil {
			b.Timeline = strings.TrimSpace(*input.Timeline)
		}
		if input.Description != nil {
			b.Description = *input.Description
		}
		if input.Notes != nil {
			b.Notes = *input.Notes
		}
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrBidNotFound, id)
	}
	return &b, nil
}

// AwardBid awards a pending bid, rejects the project's other pending bids and
// marks the project awarded. A project holds at most one awarded bid.
func (s *BidService) AwardBid(ctx context.Context, id string) (*domain.Bid, error) {
	if err := s.env.begin(ctx, "AwardBid"); err != nil {
		return nil, err
	}
	s.awardMu.Lock()
	defer s.awardMu.Unlock()

	bid, err := s.repos.Bids.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrBidNotFound, id)
	}
	if bid.Status == domain.BidAwarded {
		return nil, fmt.Errorf("%w: bid %s is already awarded", domain.ErrInvalidTransition, id)
	}
	siblings, err := s.listBids(ctx, BidFilter{ProjectID: bid.ProjectID})
	if err != nil {
		return nil, err
	}
	for _, other := range siblings {
		if other.ID != bid.ID && other.Status == domain.BidAwarded {
			return nil, domain.ErrBidAlreadyAwarded
		}
	}
	if !bid.CanTransition(domain.BidAwarded) {
		return nil, fmt.Errorf("%w: bid %s is %s", domain.ErrInvalidTransition, id, bid.Status)
	}

	project, err := s.repos.Projects.Get(ctx, bid.ProjectID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProjectNotFound, bid.ProjectID)
	}

	awarded, err := s.transition(ctx, id, domain.BidAwarded, "")
	if err != nil {
		return nil, err
	}

	for _, other := range siblings {
		if other.ID == bid.ID || other.Status != domain.BidPending {
			continue
		}
		if _, err := s.transition(ctx, other.ID, domain.BidRejected, ""); err != nil {
			return nil, err
		}
		s.notifications.notifyQuietly(ctx, NotifyInput{
			UserID:   other.SubcontractorID,
			Title:    "Bid not selected",
			Message:  fmt.Sprintf("Another bid was selected for %s.", project.Name),
			Type:     domain.NotificationWarning,
			Priority: domain.PriorityLow,
			Category: domain.CategoryBid,
		})
	}

	if _, err := s.repos.Projects.Update(ctx, project.ID, func(p *domain.Project) error {
		p.Status = domain.ProjectAwarded
		p.Touch(s.env.now())
		return nil
	}); err != nil {
		return nil, err
	}

	s.notifications.notifyQuietly(ctx, NotifyInput{
		UserID:    awarded.SubcontractorID,
		Title:     "Bid awarded",
		Message:   fmt.Sprintf("Your bid on %s has been awarded.", project.Name),
		Type:      domain.NotificationSuccess,
		Priority:  domain.PriorityHigh,
		Category:  domain.CategoryBid,
		ActionURL: "/bids/" + awarded.ID,
	})
	return awarded, nil
}

// RejectBid rejects a pending bid with an optional reason
func (s *BidService) RejectBid(ctx context.Context, id, reason string) (*domain.Bid, error) {
	if err := s.env.begin(ctx, "RejectBid"); err != nil {
		return nil, err
	}
	rejected, err := s.transition(ctx, id, domain.BidRejected, reason)
	if err != nil {
		return nil, err
	}

	message := "Your bid was not accepted."
	if reason != "" {
		message += " Reason: " + reason
	}
	s.notifications.notifyQuietly(ctx, NotifyInput{
		UserID:    rejected.SubcontractorID,
		Title:     "Bid rejected",
		Message:   message,
		Type:      domain.NotificationWarning,
		Priority:  domain.PriorityMedium,
		Category:  domain.CategoryBid,
		ActionURL: "/bids/" + rejected.ID,
	})
	return rejected, nil
}

// RequestClarification records a question on a pending bid and notifies the subcontractor
func (s *BidService) RequestClarification(ctx context.Context, id, message string) (*domain.Bid, error) {
	if err := s.env.begin(ctx, "RequestClarification"); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.Validationf("message is required")
	}

	b, err := s.repos.Bids.Update(ctx, id, func(b *domain.Bid) error {
		if b.Status != domain.BidPending {
			return fmt.Errorf("%w: bid %s is %s", domain.ErrInvalidTransition, b.ID, b.Status)
		}
		b.Notes = appendNote(b.Notes, "Clarification requested: "+message)
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrBidNotFound, id)
	}

	s.notifications.notifyQuietly(ctx, NotifyInput{
		UserID:    b.SubcontractorID,
		Title:     "Clarification requested",
		Message:   message,
		Type:      domain.NotificationInfo,
		Priority:  domain.PriorityHigh,
		Category:  domain.CategoryMessage,
		ActionURL: "/bids/" + b.ID,
	})
	return &b, nil
}

// ReviewBids ranks a project's bids by sortKey and summarizes them
func (s *BidService) ReviewBids(ctx context.Context, projectID, sortKey string) (*bidreview.Review, error) {
	if err := s.env.begin(ctx, "ReviewBids"); err != nil {
		return nil, err
	}
	key, err := bidreview.ParseSortKey(sortKey)
	if err != nil {
		return nil, err
	}
	if _, err := s.repos.Projects.Get(ctx, projectID); err != nil {
		return nil, notFoundAs(err, domain.ErrProjectNotFound, projectID)
	}
	bids, err := s.listBids(ctx, BidFilter{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	review := bidreview.Build(bids, key)
	return &review, nil
}

func (s *BidService) transition(ctx context.Context, id string, to domain.BidStatus, note string) (*domain.Bid, error) {
	b, err := s.repos.Bids.Update(ctx, id, func(b *domain.Bid) error {
		if !b.CanTransition(to) {
			return fmt.Errorf("%w: bid %s is %s", domain.ErrInvalidTransition, b.ID, b.Status)
		}
		b.Status = to
		if note != "" {
			b.Notes = appendNote(b.Notes, note)
		}
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrBidNotFound, id)
	}
	return &b, nil
}

func appendNote(notes, line string) string {
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}

func bidTime(b domain.Bid) time.Time { return b.SubmittedAt }
