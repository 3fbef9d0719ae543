// Package hash derives stable 64-bit identifiers for dictionaries and columns.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// IDParts computes the xxHash64 of parts joined by a NUL separator, so
// ("ab", "c") and ("a", "bc") produce different identifiers.
func IDParts(parts ...string) uint64 {
	d := xxhash.New()
	for i, p := range parts {
		if i > 0 {
			_, _ = d.Write([]byte{0})
		}
		_, _ = d.WriteString(p)
	}

	return d.Sum64()
}
