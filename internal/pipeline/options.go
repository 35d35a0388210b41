package pipeline

import "time"

// Canonical column names.
const (
	ColumnLiveLink    = "Live Link"
	ColumnTitle       = "Title"
	ColumnPublishDate = "Publish Date"
	ColumnMonth       = "Month"
)

const (
	// DefaultKeywordPattern matches "Target Keyword - N" with any spacing around the dash and
	// any trailing text; the group captures the slot. Url columns also match it and are
	// told apart by DefaultURLPattern.
	DefaultKeywordPattern = `^Target Keyword\s*-\s*(\d+)\b`
	// DefaultURLPattern matches "Target Keyword-N URL" and its spacing variants.
	DefaultURLPattern = `^Target Keyword\s*-\s*(\d+)\b.*URL`
)

// DefaultRenames maps header variants seen in campaign sheets to canonical names.
var DefaultRenames = map[string]string{
	"Taregt Keyword - 1":       "Target Keyword - 1",
	"Taregt  Keyword-1 URL":    "Target Keyword-1 URL",
	"Taregt Keyword - 2":       "Target Keyword - 2",
	"Taregt Keyword - 2 (URL)": "Target Keyword-2 URL",
	"Taregt Keyword - 3":       "Target Keyword - 3",
	"Target Keyword-3 URL":     "Target Keyword-3 URL",
	"Taregt Keyword - 4":       "Target Keyword - 4",
	"Target Keyword-4 URL":     "Target Keyword-4 URL",
	"Taregt Keyword - 5":       "Target Keyword - 5",
	"Target Keyword-5 URL":     "Target Keyword-5 URL",
}

// DefaultDateLayouts are tried in order when dateparse gives up on a publish date.
var DefaultDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/06",
	"01.02.2006",
	"2-Jan-2006",
	"2-Jan-06",
	"2 Jan 2006",
	"2 January 2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// RequiredColumns must exist after renaming.
var RequiredColumns = []string{ColumnLiveLink, ColumnTitle, ColumnPublishDate}

// Options configures a Pipeline.
type Options struct {
	Renames        map[string]string
	KeywordPattern string
	URLPattern     string
	DateLayouts    []string
}

// DefaultOptions returns the options used for campaign sheets.
func DefaultOptions() Options {
	renames := make(map[string]string, len(DefaultRenames))
	for from, to := range DefaultRenames {
		renames[from] = to
	}
	layouts := make([]string, len(DefaultDateLayouts))
	copy(layouts, DefaultDateLayouts)

	return Options{
		Renames:        renames,
		KeywordPattern: DefaultKeywordPattern,
		URLPattern:     DefaultURLPattern,
		DateLayouts:    layouts,
	}
}
