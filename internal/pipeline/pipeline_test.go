package pipeline_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/DeafMist/guestpost-report/internal/models"
	"github.com/DeafMist/guestpost-report/internal/pipeline"
)

func newPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	p, err := pipeline.New(pipeline.DefaultOptions())
	require.NoError(t, err)
	return p
}

func day(y int, m time.Month, d int) *time.Time {
	ts := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &ts
}

// campaignSheet uses the misspelled headers found in real uploads.
func campaignSheet() models.RawTable {
	return models.RawTable{
		Columns: []string{
			"Live Link", "Title", "Publish Date",
			"Taregt Keyword - 1", "Taregt  Keyword-1 URL",
			"Taregt Keyword - 2", "Taregt Keyword - 2 (URL)",
		},
		Rows: [][]string{
			{"https://post.com/a", "A", "2024-03-05", "seo", "https://a.com", "links", "https://b.com"},
			{"", "B", "2024-03-20", "seo", "https://a.com", "", "https://c.com"},
			{"https://post.com/c", "C", "2024-04-02", "ppc", "https://c.com", "content", ""},
			{"https://post.com/d", "D", "not-a-date", "seo", "https://d.com"},
		},
	}
}

func TestCanonicalizeRenamesVariants(t *testing.T) {
	columns := []string{"Live Link", "Title", "Publish Date"}
	for variant := range pipeline.DefaultRenames {
		columns = append(columns, variant)
	}

	table, err := newPipeline(t).Canonicalize(models.RawTable{Columns: columns})
	require.NoError(t, err)

	for variant, canonical := range pipeline.DefaultRenames {
		require.Contains(t, table.Columns, canonical)
		if variant != canonical {
			require.NotContains(t, table.Columns, variant)
		}
	}
	require.Len(t, table.KeywordColumns, 5)
	require.Len(t, table.URLColumns, 5)
}

func TestCanonicalizeTrimsHeaderPadding(t *testing.T) {
	raw := models.RawTable{
		Columns: []string{" Live Link", "Title ", "Publish Date", "Taregt Keyword - 1 ", "Taregt  Keyword-1 URL"},
	}
	table, err := newPipeline(t).Canonicalize(raw)
	require.NoError(t, err)
	require.Equal(t, []string{
		"Live Link", "Title", "Publish Date", "Target Keyword - 1", "Target Keyword-1 URL", "Month",
	}, table.Columns)
}

func TestCanonicalizeMissingColumn(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		missing string
	}{
		{name: "live link", columns: []string{"Title", "Publish Date"}, missing: "Live Link"},
		{name: "title", columns: []string{"Live Link", "Publish Date"}, missing: "Title"},
		{name: "publish date", columns: []string{"Live Link", "Title"}, missing: "Publish Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := newPipeline(t).Canonicalize(models.RawTable{
				Columns: tt.columns,
				Rows:    [][]string{{"x", "y"}},
			})
			require.Nil(t, table)
			require.ErrorIs(t, err, pipeline.ErrMissingColumn)

			var missing *pipeline.MissingColumnError
			require.True(t, errors.As(err, &missing))
			require.Equal(t, tt.missing, missing.Column)
			require.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	p := newPipeline(t)
	first, err := p.Canonicalize(campaignSheet())
	require.NoError(t, err)

	second, err := p.Canonicalize(first.Raw())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second canonicalize changed the table (-first +second):\n%s", diff)
	}
}

func TestCanonicalizeUnparsableDate(t *testing.T) {
	table, err := newPipeline(t).Canonicalize(campaignSheet())
	require.NoError(t, err)

	require.Len(t, table.Rows, 4)
	post := table.Posts[3]
	require.Equal(t, "D", post.Title)
	require.Nil(t, post.PublishDate)
	require.Empty(t, post.Month)

	dateIdx := indexOf(table.Columns, pipeline.ColumnPublishDate)
	monthIdx := indexOf(table.Columns, pipeline.ColumnMonth)
	require.Empty(t, table.Rows[3][dateIdx])
	require.Empty(t, table.Rows[3][monthIdx])

	require.Equal(t, "2024-03-05", table.Rows[0][dateIdx])
	require.Equal(t, "2024-03", table.Rows[0][monthIdx])
}

func TestCanonicalizeOverwritesExistingMonth(t *testing.T) {
	raw := models.RawTable{
		Columns: []string{"Month", "Live Link", "Title", "Publish Date"},
		Rows:    [][]string{{"stale", "https://p", "T", "2024-05-01"}},
	}
	table, err := newPipeline(t).Canonicalize(raw)
	require.NoError(t, err)
	require.Equal(t, []string{"Month", "Live Link", "Title", "Publish Date"}, table.Columns)
	require.Equal(t, "2024-05", table.Rows[0][0])
}

func TestCanonicalizeDiscoversExtraSlots(t *testing.T) {
	raw := models.RawTable{
		Columns: []string{
			"Live Link", "Title", "Publish Date",
			"Target Keyword - 1", "Target Keyword-1 URL",
			"Target Keyword - 6", "Target Keyword-6 URL",
			"Notes",
		},
	}
	table, err := newPipeline(t).Canonicalize(raw)
	require.NoError(t, err)

	require.Equal(t, []models.SlotColumn{
		{Name: "Target Keyword - 1", Slot: 1, Index: 3},
		{Name: "Target Keyword - 6", Slot: 6, Index: 5},
	}, table.KeywordColumns)
	require.Equal(t, []models.SlotColumn{
		{Name: "Target Keyword-1 URL", Slot: 1, Index: 4},
		{Name: "Target Keyword-6 URL", Slot: 6, Index: 6},
	}, table.URLColumns)
}

func TestCustomPatterns(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.KeywordPattern = `^KW(\d+)$`
	opts.URLPattern = `^KW(\d+) Link$`
	p, err := pipeline.New(opts)
	require.NoError(t, err)

	ds, err := p.Run(models.RawTable{
		Columns: []string{"Live Link", "Title", "Publish Date", "KW1", "KW1 Link"},
		Rows:    [][]string{{"https://p", "T", "2024-01-09", "seo", "https://a.com"}},
	})
	require.NoError(t, err)
	require.Len(t, ds.Pairs, 1)
	require.Equal(t, "seo", ds.Pairs[0].Keyword)
	require.Equal(t, "https://a.com", ds.Pairs[0].URL)
}

func TestNewRejectsPatternWithoutSlotGroup(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.KeywordPattern = `^Target Keyword - \d+$`
	_, err := pipeline.New(opts)
	require.ErrorIs(t, err, pipeline.ErrSlotPattern)

	opts = pipeline.DefaultOptions()
	opts.URLPattern = `(`
	_, err = pipeline.New(opts)
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{name: "empty", raw: "", want: nil},
		{name: "garbage", raw: "not-a-date", want: nil},
		{name: "iso", raw: "2024-03-05", want: day(2024, time.March, 5)},
		{name: "iso with time", raw: "2024-03-05 13:45:00", want: day(2024, time.March, 5)},
		{name: "rfc3339", raw: "2024-03-05T10:00:00Z", want: day(2024, time.March, 5)},
		{name: "us slashes", raw: "3/5/2024", want: day(2024, time.March, 5)},
		{name: "padded us slashes", raw: "03/05/2024", want: day(2024, time.March, 5)},
		{name: "month name", raw: "March 5, 2024", want: day(2024, time.March, 5)},
		{name: "unpadded iso", raw: "2024-3-5", want: day(2024, time.March, 5)},
		{name: "unpadded slashes", raw: "2024/3/5", want: day(2024, time.March, 5)},
		{name: "day month name", raw: "5 March 2024", want: day(2024, time.March, 5)},
		{name: "month name without comma", raw: "March 5 2024", want: day(2024, time.March, 5)},
		{name: "short month name", raw: "Mar 5 2024", want: day(2024, time.March, 5)},
		{name: "dotted month first", raw: "05.03.2024", want: day(2024, time.May, 3)},
		{name: "day dash short month", raw: "5-Mar-24", want: day(2024, time.March, 5)},
		{name: "rfc1123 with offset", raw: "Tue, 05 Mar 2024 10:00:00 +0000", want: day(2024, time.March, 5)},
		{name: "bare year", raw: "2024", want: nil},
		{name: "small number", raw: "12", want: nil},
		{name: "excel serial", raw: "45356", want: day(2024, time.March, 5)},
		{name: "fractional excel serial", raw: "45356.75", want: day(2024, time.March, 5)},
		{name: "serial out of range", raw: "99999999", want: nil},
		{name: "no digits", raw: "someday", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pipeline.ParseDate(tt.raw, pipeline.DefaultDateLayouts)
			if tt.want == nil {
				require.False(t, ok)
				return
			}
			require.True(t, ok)
			require.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestPublishTimeIsDroppedToTheDay(t *testing.T) {
	ds, err := newPipeline(t).Run(models.RawTable{
		Columns: []string{"Live Link", "Title", "Publish Date", "Target Keyword - 1", "Target Keyword-1 URL"},
		Rows: [][]string{
			{"https://post.com/a", "A", "2024-03-05 10:00", "seo", "https://a.com"},
			{"https://post.com/b", "B", "2024-03-05 18:30", "ppc", "https://b.com"},
		},
	})
	require.NoError(t, err)

	dateIdx := indexOf(ds.Table.Columns, "Publish Date")
	for i, post := range ds.Table.Posts {
		require.Equal(t, "2024-03-05", ds.Table.Rows[i][dateIdx])
		require.True(t, day(2024, time.March, 5).Equal(*post.PublishDate), "got %s", post.PublishDate)
	}

	matched := pipeline.Filter{Date: day(2024, time.March, 5)}.Apply(ds.Pairs)
	require.Len(t, matched, 2)

	require.Equal(t, []models.DateCount{
		{Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), Count: 2},
	}, pipeline.PostsByDate(ds.Pairs, "2024-03"))
}

func TestDefaultPatternsAcceptLooseSlotHeaders(t *testing.T) {
	raw := models.RawTable{
		Columns: []string{
			"Live Link", "Title", "Publish Date",
			"Target Keyword -6", "Target Keyword - 6 URL",
			"Target Keyword - 7 (primary)", "Target Keyword-7 (URL)",
			"Target Keywords", "Target Keyword - 10x",
		},
		Rows: [][]string{
			{"https://post.com/a", "A", "2024-03-05", "seo", "https://a.com", "links", "https://b.com", "x", "y"},
		},
	}
	ds, err := newPipeline(t).Run(raw)
	require.NoError(t, err)

	require.Equal(t, []models.SlotColumn{
		{Name: "Target Keyword -6", Slot: 6, Index: 3},
		{Name: "Target Keyword - 7 (primary)", Slot: 7, Index: 5},
	}, ds.Table.KeywordColumns)
	require.Equal(t, []models.SlotColumn{
		{Name: "Target Keyword - 6 URL", Slot: 6, Index: 4},
		{Name: "Target Keyword-7 (URL)", Slot: 7, Index: 6},
	}, ds.Table.URLColumns)
	require.Len(t, ds.Pairs, 2)
	require.Equal(t, "links", ds.Pairs[1].Keyword)
	require.Equal(t, "https://b.com", ds.Pairs[1].URL)
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
