package models

import "time"

// RawTable is an uploaded sheet as read from disk: a header row and string cells.
// An empty cell is treated as absent.
type RawTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Post is one spreadsheet row reduced to the fields every view needs.
type Post struct {
	Row         int        `json:"row"`
	LiveLink    string     `json:"live_link,omitempty"`
	Title       string     `json:"title"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
	Month       string     `json:"month,omitempty"`
}

// SlotColumn is a keyword or url column together with the slot number parsed from its name.
type SlotColumn struct {
	Name  string `json:"name"`
	Slot  int    `json:"slot"`
	Index int    `json:"index"`
}

// KeywordURLPair is a single row of the long-form table.
type KeywordURLPair struct {
	Row         int        `json:"row"`
	Slot        int        `json:"slot"`
	LiveLink    string     `json:"live_link,omitempty"`
	Title       string     `json:"title"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
	Month       string     `json:"month,omitempty"`
	Keyword     string     `json:"keyword"`
	URL         string     `json:"url"`
}

// Summary holds the monthly figures.
type Summary struct {
	Month          string   `json:"month"`
	TotalPosts     int      `json:"total_posts"`
	UniqueKeywords int      `json:"unique_keywords"`
	UniqueURLs     int      `json:"unique_urls"`
	UnusedURLs     []string `json:"unused_urls"`
}

// MonthFigures is one row of a month comparison.
type MonthFigures struct {
	Month          string `json:"month"`
	TotalPosts     int    `json:"total_posts"`
	UniqueKeywords int    `json:"unique_keywords"`
	UniqueURLs     int    `json:"unique_urls"`
}

// Comparison places two months side by side, first month first.
type Comparison struct {
	Rows [2]MonthFigures `json:"rows"`
}

// DateCount is the number of long-form rows published on a given day.
type DateCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}
