// Package factor maps raw categorical values onto contiguous 1-based codes.
//
// Archives store categories as sparse raw keys (for example 0, 5, 9). Hosts
// expect dense codes 1..n that index a label list. Translate performs that
// remapping against a sorted key table; Compose pairs the resulting codes with
// labels afterwards without touching the decoded data.
package factor

import (
	"fmt"
	"slices"

	"github.com/arloliu/redbin/errs"
	"github.com/arloliu/redbin/format"
)

// LevelTable holds the distinct raw keys of a categorical column in ascending
// order, optionally paired by position with display labels.
type LevelTable struct {
	keys   []int32
	labels []string
}

// NewLevelTable copies keys and labels into a validated table.
//
// keys must be strictly ascending. labels may be nil when the host keeps them
// elsewhere; otherwise it must have the same length as keys.
//
// Returns errs.ErrInvalidLevelTable if either condition fails.
func NewLevelTable(keys []int32, labels []string) (*LevelTable, error) {
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			return nil, fmt.Errorf("%w: key %d at position %d is not greater than %d",
				errs.ErrInvalidLevelTable, keys[i], i, keys[i-1])
		}
	}
	if labels != nil && len(labels) != len(keys) {
		return nil, fmt.Errorf("%w: %d labels for %d keys", errs.ErrInvalidLevelTable, len(labels), len(keys))
	}

	return &LevelTable{
		keys:   slices.Clone(keys),
		labels: slices.Clone(labels),
	}, nil
}

// Len returns the number of levels.
func (t *LevelTable) Len() int {
	if t == nil {
		return 0
	}

	return len(t.keys)
}

// Keys returns the raw keys. The caller must not modify the result.
func (t *LevelTable) Keys() []int32 {
	return t.keys
}

// Labels returns the labels, or nil if the table has none. The caller must not modify the result.
func (t *LevelTable) Labels() []string {
	return t.labels
}

// Code returns the 1-based code of raw key v, or format.NAInt32 if v is not a level.
func (t *LevelTable) Code(v int32) int32 {
	return code(t.keys, v)
}

func code(keys []int32, v int32) int32 {
	if v == format.NAInt32 {
		return format.NAInt32
	}

	pos, found := slices.BinarySearch(keys, v)
	if !found {
		return format.NAInt32
	}

	return int32(pos + 1) //nolint:gosec
}

// Translate returns a new slice where each value is replaced by its 1-based
// position in keys, or format.NAInt32 when it has no exact match. NA inputs
// stay NA. keys must be ascending and duplicate-free; neither argument is modified.
func Translate(values []int32, keys []int32) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = code(keys, v)
	}

	return out
}

// Factor is a sequence of level codes paired with the labels they index.
type Factor struct {
	Codes  []int32
	Labels []string
}

// Compose pairs translated codes with the labels of t.
//
// Returns errs.ErrInvalidLevelTable if t has no labels, or if a code other than
// format.NAInt32 falls outside 1..t.Len().
func Compose(codes []int32, t *LevelTable) (Factor, error) {
	if t == nil || t.labels == nil {
		return Factor{}, fmt.Errorf("%w: no labels to compose with", errs.ErrInvalidLevelTable)
	}

	n := int32(len(t.labels)) //nolint:gosec
	for i, c := range codes {
		if c != format.NAInt32 && (c < 1 || c > n) {
			return Factor{}, fmt.Errorf("%w: code %d at position %d outside 1..%d", errs.ErrInvalidLevelTable, c, i, n)
		}
	}

	return Factor{Codes: codes, Labels: t.labels}, nil
}

// Len returns the number of codes.
func (f Factor) Len() int {
	return len(f.Codes)
}

// Label returns the label at position i, or false if the code is NA.
func (f Factor) Label(i int) (string, bool) {
	c := f.Codes[i]
	if c == format.NAInt32 {
		return "", false
	}

	return f.Labels[c-1], true
}
