// Package bidreview ranks the bids of a project and summarizes them for award decisions.
package bidreview

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"procurehub/internal/core/domain"
)

// SortKey selects the ordering applied by Sort
type SortKey string

const (
	SortByAmount     SortKey = "amount"
	SortByRating     SortKey = "rating"
	SortByTimeline   SortKey = "timeline"
	SortByExperience SortKey = "experience"
	SortBySubmitted  SortKey = "submitted"
)

// ParseSortKey maps a query value onto a SortKey. Empty means amount.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByAmount:
		return SortByAmount, nil
	case SortByRating:
		return SortByRating, nil
	case SortByTimeline:
		return SortByTimeline, nil
	case SortByExperience:
		return SortByExperience, nil
	case SortBySubmitted, "recent":
		return SortBySubmitted, nil
	}
	return "", domain.Validationf("unknown sort key %q", s)
}

var leadingInt = regexp.MustCompile(`^(\d+)`)

// TimelineDays converts a free-text duration to days.
// "N week(s)" is N*7, "N month(s)" is N*30, a bare number is itself.
// Text without a leading number normalizes to 0.
func TimelineDays(timeline string) int {
	s := strings.ToLower(strings.TrimSpace(timeline))
	m := leadingInt.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	switch {
	case strings.Contains(s, "week"):
		return n * 7
	case strings.Contains(s, "month"):
		return n * 30
	}
	return n
}

func rating(b domain.Bid) float64 {
	if b.Contractor == nil {
		return 0
	}
	return b.Contractor.Rating
}

func experience(b domain.Bid) int {
	if b.Contractor == nil {
		return 0
	}
	return b.Contractor.CompletedProjects
}

// Sort returns a new slice ordered by key. Equal elements keep their input order.
func Sort(bids []domain.Bid, key SortKey) []domain.Bid {
	out := make([]domain.Bid, len(bids))
	copy(out, bids)

	var less func(a, b domain.Bid) bool
	switch key {
	case SortByRating:
		less = func(a, b domain.Bid) bool { return rating(a) > rating(b) }
	case SortByTimeline:
		less = func(a, b domain.Bid) bool { return TimelineDays(a.Timeline) < TimelineDays(b.Timeline) }
	case SortByExperience:
		less = func(a, b domain.Bid) bool { return experience(a) > experience(b) }
	case SortBySubmitted:
		less = func(a, b domain.Bid) bool { return a.SubmittedAt.After(b.SubmittedAt) }
	default:
		less = func(a, b domain.Bid) bool { return a.Amount < b.Amount }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Stats summarizes a list of bids
type Stats struct {
	Count         int     `json:"count"`
	MinAmount     float64 `json:"minAmount"`
	MaxAmount     float64 `json:"maxAmount"`
	AverageAmount float64 `json:"averageAmount"`
	AverageRating float64 `json:"averageRating"`
}

// Summarize computes Stats in a single pass. Empty input yields all zeros.
func Summarize(bids []domain.Bid) Stats {
	var st Stats
	var total, ratingTotal float64
	rated := 0

	for i, b := range bids {
		if i == 0 || b.Amount < st.MinAmount {
			st.MinAmount = b.Amount
		}
		if i == 0 || b.Amount > st.MaxAmount {
			st.MaxAmount = b.Amount
		}
		total += b.Amount
		if b.Contractor != nil {
			ratingTotal += b.Contractor.Rating
			rated++
		}
	}

	st.Count = len(bids)
	if st.Count > 0 {
		st.AverageAmount = total / float64(st.Count)
	}
	if rated > 0 {
		st.AverageRating = ratingTotal / float64(rated)
	}
	return st
}

// Review is the decision-support view of a project's bids
type Review struct {
	SortedBy SortKey      `json:"sortedBy"`
	Bids     []domain.Bid `json:"bids"`
	Stats    Stats        `json:"stats"`
	Lowest   *domain.Bid  `json:"lowest,omitempty"`
}

// Build sorts and summarizes bids
func Build(bids []domain.Bid, key SortKey) Review {
	r := Review{
		SortedBy: key,
		Bids:     Sort(bids, key),
		Stats:    Summarize(bids),
	}
	for i := range bids {
		if r.Lowest == nil || bids[i].Amount < r.Lowest.Amount {
			b := bids[i]
			r.Lowest = &b
		}
	}
	return r
}
