// Package dictionary reads the header record at the start of an archive dictionary.
//
// The header holds, in order:
//
//	unknown1           uint32, little-endian
//	name               short string
//	creation date      8 raw bytes
//	modification date  8 raw bytes
//	root directory     short string
//	unknown2           short string
//
// The field order comes from the archive's own declarations. The encoding of
// the two date fields has not been pinned against a reference file, so they
// are kept as raw bytes.
package dictionary

import (
	"encoding/hex"
	"fmt"

	"github.com/arloliu/redbin/internal/hash"
)

// DateSize is the width of each raw date field.
const DateSize = 8

// Metadata is the parsed dictionary header. It is immutable once returned.
type Metadata struct {
	Unknown1         uint32
	Name             string
	CreationDate     [DateSize]byte
	ModificationDate [DateSize]byte
	RootDir          string
	Unknown2         string
}

// ID returns the xxHash64 of the dictionary name.
func (m Metadata) ID() uint64 {
	return hash.ID(m.Name)
}

func (m Metadata) String() string {
	return fmt.Sprintf("dictionary %q (root %q, created %s, modified %s)",
		m.Name, m.RootDir, hex.EncodeToString(m.CreationDate[:]), hex.EncodeToString(m.ModificationDate[:]))
}
