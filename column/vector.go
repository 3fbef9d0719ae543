package column

import (
	"fmt"

	"github.com/arloliu/redbin/errs"
	"github.com/arloliu/redbin/factor"
	"github.com/arloliu/redbin/format"
)

// Text is a decoded CHR value. NA marks a missing record, which is distinct
// from a record holding only padding.
type Text struct {
	Value string
	NA    bool
}

// NAText is the missing-value marker for text columns.
var NAText = Text{NA: true}

// Vector is the decoded output of one Decode call, one entry per requested position.
//
// Exactly one of the typed accessors returns data, chosen by Kind: Ints for
// BIN, PCK, INT and LNG, Floats for REAL and Texts for CHR.
type Vector struct {
	kind   format.ColumnKind
	ints   []int32
	floats []float64
	texts  []Text
	levels *factor.LevelTable
}

// Kind returns the column kind the vector was decoded from.
func (v Vector) Kind() format.ColumnKind {
	return v.kind
}

// Len returns the number of decoded entries.
func (v Vector) Len() int {
	switch {
	case v.ints != nil:
		return len(v.ints)
	case v.floats != nil:
		return len(v.floats)
	default:
		return len(v.texts)
	}
}

// Ints returns integer values, or level codes when the column carries levels.
func (v Vector) Ints() []int32 {
	return v.ints
}

// Floats returns REAL values.
func (v Vector) Floats() []float64 {
	return v.floats
}

// Texts returns CHR values.
func (v Vector) Texts() []Text {
	return v.texts
}

// Levels returns the level table the codes refer to, or nil for plain columns.
func (v Vector) Levels() *factor.LevelTable {
	return v.levels
}

// IsNA reports whether entry i holds the missing-value marker.
func (v Vector) IsNA(i int) bool {
	switch {
	case v.ints != nil:
		return v.ints[i] == format.NAInt32
	case v.floats != nil:
		return format.IsNAFloat64(v.floats[i])
	default:
		return v.texts[i].NA
	}
}

// Factor pairs the level codes with the labels of the attached level table.
//
// Returns errs.ErrInvalidLevelTable if the vector has no levels or the table has no labels.
func (v Vector) Factor() (factor.Factor, error) {
	if v.levels == nil {
		return factor.Factor{}, fmt.Errorf("%w: %s column decoded without levels", errs.ErrInvalidLevelTable, v.kind)
	}

	return factor.Compose(v.ints, v.levels)
}
