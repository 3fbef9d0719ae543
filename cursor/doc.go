// Package cursor reads semi-structured binary blobs through a movable read position.
//
// A Cursor pairs an immutable byte slice with a mutable position. It offers
// primitive consumption (bytes, 16-bit and 32-bit integers, fixed-length
// character runs and length-prefixed strings) and inspection helpers that let
// callers peek, rewind and search without committing to a layout.
//
// # Short Strings
//
// Strings in dictionary blobs carry a 16-bit little-endian length prefix:
//
//	+--------+--------+-----------------+
//	| len lo | len hi | len bytes ...   |
//	+--------+--------+-----------------+
//
// A prefix of 0xFFFF escapes to the long form, where a 4-byte length follows,
// stored as two little-endian 16-bit words with the high word first:
//
//	+------+------+---------+---------+---------+---------+-------------+
//	| 0xFF | 0xFF | hi lo   | hi hi   | lo lo   | lo hi   | bytes ...   |
//	+------+------+---------+---------+---------+---------+-------------+
//
// # String Recovery
//
// Metadata records are not always laid out exactly as expected. The recovery
// helpers (PeekPlausibleString, EatPlausibleString, ScanBackwardForString,
// RecoverStrings and RecoverAnchored) locate embedded strings by accepting only
// short, length-bounded runs of lowercase letters, digits, spaces, hyphens and
// underscores. They are best-effort: they report success with a boolean and
// never return errors.
//
// # Bounds
//
// Seek and SetPos never fail; a position outside the buffer is only rejected
// by the next read, which returns errs.ErrOutOfBounds. A failed read leaves the
// position where it was before the call.
//
// # Thread Safety
//
// A Cursor is not safe for concurrent use. Independent cursors may share the
// same underlying data since reads never modify it.
package cursor
