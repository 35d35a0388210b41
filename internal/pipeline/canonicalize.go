package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/DeafMist/guestpost-report/internal/models"
)

// CanonicalTable is an upload with corrected headers, parsed publish dates and a Month column.
type CanonicalTable struct {
	Columns        []string
	Rows           [][]string
	Posts          []models.Post
	KeywordColumns []models.SlotColumn
	URLColumns     []models.SlotColumn
}

// Canonicalize renames known header variants, coerces publish dates and derives the month.
// Unparsable dates become empty cells; a missing structural column is an error.
func (p *Pipeline) Canonicalize(raw models.RawTable) (*CanonicalTable, error) {
	columns := make([]string, len(raw.Columns), len(raw.Columns)+1)
	index := make(map[string]int, len(raw.Columns))
	for i, name := range raw.Columns {
		name = strings.TrimSpace(name)
		if canonical, ok := p.renames[name]; ok {
			name = canonical
		}
		columns[i] = name
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	for _, required := range RequiredColumns {
		if _, ok := index[required]; !ok {
			return nil, &MissingColumnError{Column: required}
		}
	}

	monthIdx, ok := index[ColumnMonth]
	if !ok {
		monthIdx = len(columns)
		columns = append(columns, ColumnMonth)
	}
	linkIdx := index[ColumnLiveLink]
	titleIdx := index[ColumnTitle]
	dateIdx := index[ColumnPublishDate]

	table := &CanonicalTable{
		Columns: columns,
		Rows:    make([][]string, 0, len(raw.Rows)),
		Posts:   make([]models.Post, 0, len(raw.Rows)),
	}

	for rowIdx, rawRow := range raw.Rows {
		cells := make([]string, len(columns))
		for i := 0; i < len(raw.Columns) && i < len(rawRow); i++ {
			cells[i] = strings.TrimSpace(rawRow[i])
		}

		post := models.Post{
			Row:      rowIdx,
			LiveLink: cells[linkIdx],
			Title:    cells[titleIdx],
		}

		if ts, ok := ParseDate(cells[dateIdx], p.dateLayouts); ok {
			cells[dateIdx] = ts.Format(dateFormat)
			post.PublishDate = &ts
			post.Month = FormatMonth(ts)
		} else {
			cells[dateIdx] = ""
		}
		cells[monthIdx] = post.Month

		table.Rows = append(table.Rows, cells)
		table.Posts = append(table.Posts, post)
	}

	table.KeywordColumns, table.URLColumns = p.discoverSlots(columns)
	return table, nil
}

// discoverSlots splits columns into keyword and url columns, in declaration order.
// A column matching the url pattern is never a keyword column.
func (p *Pipeline) discoverSlots(columns []string) (keywords, urls []models.SlotColumn) {
	for i, name := range columns {
		if slot, ok := matchSlot(p.urlPattern.FindStringSubmatch(name)); ok {
			urls = append(urls, models.SlotColumn{Name: name, Slot: slot, Index: i})
			continue
		}
		if p.urlPattern.MatchString(name) {
			continue
		}
		if slot, ok := matchSlot(p.keywordPattern.FindStringSubmatch(name)); ok {
			keywords = append(keywords, models.SlotColumn{Name: name, Slot: slot, Index: i})
		}
	}
	return keywords, urls
}

func matchSlot(match []string) (int, bool) {
	if len(match) < 2 {
		return 0, false
	}
	slot, err := strconv.Atoi(strings.TrimSpace(match[1]))
	if err != nil {
		return 0, false
	}
	return slot, true
}

// Raw returns the canonical table in upload form.
func (t *CanonicalTable) Raw() models.RawTable {
	return models.RawTable{Columns: t.Columns, Rows: t.Rows}
}

// URLUniverse lists every distinct url found in the url columns, across all rows.
func (t *CanonicalTable) URLUniverse() []string {
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		for _, col := range t.URLColumns {
			if v := row[col.Index]; v != "" {
				seen[v] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
