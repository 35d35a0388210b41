package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrSlotMismatch  = errors.New("keyword and url columns do not pair up")
	ErrSameMonth     = errors.New("months to compare must differ")
	ErrSlotPattern   = errors.New("column pattern must capture the slot number")
)

// MissingColumnError names a structural column absent from the upload.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// SlotMismatchError reports keyword and url columns whose slot numbers cannot be joined.
type SlotMismatchError struct {
	KeywordSlots []int
	URLSlots     []int
	Duplicate    int
	Duplicated   bool
}

func (e *SlotMismatchError) Error() string {
	if e.Duplicated {
		return fmt.Sprintf("slot %d is declared by more than one column", e.Duplicate)
	}
	return fmt.Sprintf("keyword slots [%s] do not match url slots [%s]",
		joinInts(e.KeywordSlots), joinInts(e.URLSlots))
}

func (e *SlotMismatchError) Is(target error) bool {
	return target == ErrSlotMismatch
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, " ")
}
