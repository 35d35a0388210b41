package pipeline

import (
	"sort"

	"github.com/DeafMist/guestpost-report/internal/models"
)

type slotKey struct {
	row  int
	slot int
}

type meltedCell struct {
	slotKey
	value string
}

// ToLongForm unpivots keyword and url columns and joins them on (row, slot).
// Output is row-major: every slot of the first row in column order, then the next row.
// Pairs missing either side are dropped.
func ToLongForm(table *CanonicalTable, keywordCols, urlCols []models.SlotColumn) ([]models.KeywordURLPair, error) {
	if err := checkSlots(keywordCols, urlCols); err != nil {
		return nil, err
	}

	keywords := melt(table, keywordCols)
	urls := make(map[slotKey]string, len(keywords))
	for _, cell := range melt(table, urlCols) {
		urls[cell.slotKey] = cell.value
	}

	pairs := make([]models.KeywordURLPair, 0, len(keywords))
	for _, cell := range keywords {
		url := urls[cell.slotKey]
		if cell.value == "" || url == "" {
			continue
		}
		post := table.Posts[cell.row]
		pairs = append(pairs, models.KeywordURLPair{
			Row:         cell.row,
			Slot:        cell.slot,
			LiveLink:    post.LiveLink,
			Title:       post.Title,
			PublishDate: post.PublishDate,
			Month:       post.Month,
			Keyword:     cell.value,
			URL:         url,
		})
	}

	return pairs, nil
}

func melt(table *CanonicalTable, cols []models.SlotColumn) []meltedCell {
	cells := make([]meltedCell, 0, len(table.Rows)*len(cols))
	for rowIdx, row := range table.Rows {
		for _, col := range cols {
			var value string
			if col.Index < len(row) {
				value = row[col.Index]
			}
			cells = append(cells, meltedCell{
				slotKey: slotKey{row: rowIdx, slot: col.Slot},
				value:   value,
			})
		}
	}
	return cells
}

// checkSlots requires both column lists to declare the same slots, each exactly once.
func checkSlots(keywordCols, urlCols []models.SlotColumn) error {
	keywordSlots, dup, ok := slotsOf(keywordCols)
	if !ok {
		return &SlotMismatchError{Duplicate: dup, Duplicated: true}
	}
	urlSlots, dup, ok := slotsOf(urlCols)
	if !ok {
		return &SlotMismatchError{Duplicate: dup, Duplicated: true}
	}

	mismatch := &SlotMismatchError{KeywordSlots: keywordSlots, URLSlots: urlSlots}
	if len(keywordSlots) != len(urlSlots) {
		return mismatch
	}
	for i := range keywordSlots {
		if keywordSlots[i] != urlSlots[i] {
			return mismatch
		}
	}
	return nil
}

// slotsOf returns the sorted slots, or the first repeated slot and false.
func slotsOf(cols []models.SlotColumn) ([]int, int, bool) {
	seen := make(map[int]struct{}, len(cols))
	slots := make([]int, 0, len(cols))
	for _, col := range cols {
		if _, ok := seen[col.Slot]; ok {
			return nil, col.Slot, false
		}
		seen[col.Slot] = struct{}{}
		slots = append(slots, col.Slot)
	}
	sort.Ints(slots)
	return slots, 0, true
}
