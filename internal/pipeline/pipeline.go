// Package pipeline turns uploaded campaign sheets into a keyword/url long-form table and
// computes the monthly figures shown in the report.
package pipeline

import (
	"fmt"
	"regexp"

	"github.com/DeafMist/guestpost-report/internal/models"
)

// Pipeline holds the compiled normalization rules. It keeps no per-upload state.
type Pipeline struct {
	renames        map[string]string
	keywordPattern *regexp.Regexp
	urlPattern     *regexp.Regexp
	dateLayouts    []string
}

// Dataset is the result of running a sheet through the pipeline.
type Dataset struct {
	Table *CanonicalTable
	Pairs []models.KeywordURLPair
}

// New compiles the column patterns. Each pattern must capture the slot number.
func New(opts Options) (*Pipeline, error) {
	if opts.KeywordPattern == "" {
		opts.KeywordPattern = DefaultKeywordPattern
	}
	if opts.URLPattern == "" {
		opts.URLPattern = DefaultURLPattern
	}
	if len(opts.DateLayouts) == 0 {
		opts.DateLayouts = DefaultDateLayouts
	}

	keyword, err := compileSlotPattern(opts.KeywordPattern)
	if err != nil {
		return nil, fmt.Errorf("keyword pattern: %w", err)
	}
	url, err := compileSlotPattern(opts.URLPattern)
	if err != nil {
		return nil, fmt.Errorf("url pattern: %w", err)
	}

	renames := make(map[string]string, len(opts.Renames))
	for from, to := range opts.Renames {
		renames[from] = to
	}

	return &Pipeline{
		renames:        renames,
		keywordPattern: keyword,
		urlPattern:     url,
		dateLayouts:    opts.DateLayouts,
	}, nil
}

// Run canonicalizes the sheet and reshapes it into keyword/url pairs.
func (p *Pipeline) Run(raw models.RawTable) (*Dataset, error) {
	table, err := p.Canonicalize(raw)
	if err != nil {
		return nil, err
	}

	pairs, err := ToLongForm(table, table.KeywordColumns, table.URLColumns)
	if err != nil {
		return nil, err
	}

	return &Dataset{Table: table, Pairs: pairs}, nil
}

// Summary is MonthlySummary over the dataset's own url universe.
func (d *Dataset) Summary(month string) models.Summary {
	return MonthlySummary(d.Pairs, d.Table.URLUniverse(), month)
}

// Compare is CompareMonths over the dataset's pairs.
func (d *Dataset) Compare(monthA, monthB string) (models.Comparison, error) {
	return CompareMonths(d.Pairs, monthA, monthB)
}

func compileSlotPattern(raw string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(raw)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%w: %q", ErrSlotPattern, raw)
	}
	return re, nil
}
