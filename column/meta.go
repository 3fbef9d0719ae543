package column

import (
	"fmt"

	"github.com/arloliu/redbin/errs"
	"github.com/arloliu/redbin/format"
	"github.com/arloliu/redbin/internal/hash"
)

// MaxBitWidth is the widest value a bit-packed column can hold.
const MaxBitWidth = 32

// Meta describes one column's data file.
type Meta struct {
	// DataPath is the location of the column data file.
	DataPath string
	// UnitWidth is bits per value for bit-packed kinds and bytes per value otherwise.
	UnitWidth int
	// RecordCount is the number of records stored in the file.
	RecordCount int
	// Kind selects the value type and physical layout.
	Kind format.ColumnKind
}

// NewMeta builds and validates column metadata.
//
// Returns errs.ErrInvalidColumn if the combination cannot describe a column.
func NewMeta(path string, kind format.ColumnKind, unitWidth, recordCount int) (Meta, error) {
	m := Meta{
		DataPath:    path,
		UnitWidth:   unitWidth,
		RecordCount: recordCount,
		Kind:        kind,
	}

	if err := m.Validate(); err != nil {
		return Meta{}, err
	}

	return m, nil
}

// Validate checks that the metadata describes a decodable column.
func (m Meta) Validate() error {
	if m.DataPath == "" {
		return fmt.Errorf("%w: empty data path", errs.ErrInvalidColumn)
	}
	if m.RecordCount < 0 {
		return fmt.Errorf("%w: negative record count %d", errs.ErrInvalidColumn, m.RecordCount)
	}

	switch m.Kind.Layout() {
	case format.LayoutBitPacked:
		if m.UnitWidth < 1 || m.UnitWidth > MaxBitWidth {
			return fmt.Errorf("%w: %s width %d bits outside 1..%d", errs.ErrInvalidColumn, m.Kind, m.UnitWidth, MaxBitWidth)
		}
	case format.LayoutFixedBytes:
		if m.UnitWidth < m.Kind.ScalarSize() {
			return fmt.Errorf("%w: %s width %d bytes, need at least %d",
				errs.ErrInvalidColumn, m.Kind, m.UnitWidth, m.Kind.ScalarSize())
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", errs.ErrInvalidColumn, m.Kind)
	}

	return nil
}

// Layout returns the physical layout of the column.
func (m Meta) Layout() format.Layout {
	return m.Kind.Layout()
}

// ID returns a stable identifier derived from the data path and kind.
func (m Meta) ID() uint64 {
	return hash.IDParts(m.DataPath, m.Kind.String())
}
