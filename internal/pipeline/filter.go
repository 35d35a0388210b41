package pipeline

import (
	"time"

	"github.com/DeafMist/guestpost-report/internal/models"
)

// Filter narrows the long-form table. Zero fields do not filter.
// Date takes precedence over the From/To range, and a range needs both ends.
type Filter struct {
	Keyword string
	URL     string
	Date    *time.Time
	From    *time.Time
	To      *time.Time
}

// Apply returns the matching pairs in their original order.
func (f Filter) Apply(pairs []models.KeywordURLPair) []models.KeywordURLPair {
	out := make([]models.KeywordURLPair, 0, len(pairs))
	for _, pair := range pairs {
		if f.match(pair) {
			out = append(out, pair)
		}
	}
	return out
}

func (f Filter) match(pair models.KeywordURLPair) bool {
	if f.Keyword != "" && pair.Keyword != f.Keyword {
		return false
	}
	if f.URL != "" && pair.URL != f.URL {
		return false
	}

	switch {
	case f.Date != nil:
		return pair.PublishDate != nil && sameDay(*pair.PublishDate, *f.Date)
	case f.From != nil && f.To != nil:
		if pair.PublishDate == nil {
			return false
		}
		day := truncateDay(*pair.PublishDate)
		return !day.Before(truncateDay(*f.From)) && !day.After(truncateDay(*f.To))
	}
	return true
}
