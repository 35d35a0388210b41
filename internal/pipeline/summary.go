package pipeline

import (
	"sort"
	"time"

	"github.com/DeafMist/guestpost-report/internal/models"
)

// MonthlySummary computes the figures for one month. Unused urls are taken against
// urlUniverse, which is expected to span the whole upload rather than the month.
func MonthlySummary(pairs []models.KeywordURLPair, urlUniverse []string, month string) models.Summary {
	figures := monthFigures(pairs, month)

	used := make(map[string]struct{})
	for _, pair := range inMonth(pairs, month) {
		used[pair.URL] = struct{}{}
	}
	unused := make([]string, 0, len(urlUniverse))
	seen := make(map[string]struct{}, len(urlUniverse))
	for _, url := range urlUniverse {
		if _, ok := used[url]; ok {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		unused = append(unused, url)
	}
	sort.Strings(unused)

	return models.Summary{
		Month:          month,
		TotalPosts:     figures.TotalPosts,
		UniqueKeywords: figures.UniqueKeywords,
		UniqueURLs:     figures.UniqueURLs,
		UnusedURLs:     unused,
	}
}

// CompareMonths lays the figures of two distinct months side by side.
func CompareMonths(pairs []models.KeywordURLPair, monthA, monthB string) (models.Comparison, error) {
	if monthA == monthB {
		return models.Comparison{}, ErrSameMonth
	}
	return models.Comparison{
		Rows: [2]models.MonthFigures{
			monthFigures(pairs, monthA),
			monthFigures(pairs, monthB),
		},
	}, nil
}

// Months lists the distinct months present, latest first.
func Months(pairs []models.KeywordURLPair) []string {
	set := make(map[string]struct{})
	for _, pair := range pairs {
		if pair.Month != "" {
			set[pair.Month] = struct{}{}
		}
	}
	months := sortedKeys(set)
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Keywords lists the distinct keywords in ascending order.
func Keywords(pairs []models.KeywordURLPair) []string {
	set := make(map[string]struct{})
	for _, pair := range pairs {
		set[pair.Keyword] = struct{}{}
	}
	return sortedKeys(set)
}

// URLs lists the distinct target urls in ascending order.
func URLs(pairs []models.KeywordURLPair) []string {
	set := make(map[string]struct{})
	for _, pair := range pairs {
		set[pair.URL] = struct{}{}
	}
	return sortedKeys(set)
}

// PostsByDate counts the month's rows per publish date, oldest first.
func PostsByDate(pairs []models.KeywordURLPair, month string) []models.DateCount {
	counts := make(map[time.Time]int)
	for _, pair := range inMonth(pairs, month) {
		if pair.PublishDate == nil {
			continue
		}
		counts[truncateDay(*pair.PublishDate)]++
	}

	out := make([]models.DateCount, 0, len(counts))
	for day, count := range counts {
		out = append(out, models.DateCount{Date: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func monthFigures(pairs []models.KeywordURLPair, month string) models.MonthFigures {
	figures := models.MonthFigures{Month: month}
	keywords := make(map[string]struct{})
	urls := make(map[string]struct{})
	for _, pair := range inMonth(pairs, month) {
		if pair.LiveLink != "" {
			figures.TotalPosts++
		}
		keywords[pair.Keyword] = struct{}{}
		urls[pair.URL] = struct{}{}
	}
	figures.UniqueKeywords = len(keywords)
	figures.UniqueURLs = len(urls)
	return figures
}

// inMonth keeps pairs of the given month. Pairs without a date belong to no month.
func inMonth(pairs []models.KeywordURLPair, month string) []models.KeywordURLPair {
	out := make([]models.KeywordURLPair, 0, len(pairs))
	if month == "" {
		return out
	}
	for _, pair := range pairs {
		if pair.Month == month {
			out = append(out, pair)
		}
	}
	return out
}
