package cursor

const (
	// MaxPlausibleLength is the longest string the recovery helpers accept.
	MaxPlausibleLength = 128
	// DefaultBackwardScanLimit bounds ScanBackwardForString when callers have no better limit.
	DefaultBackwardScanLimit = 65536
)

// Fragment is a string recovered from a blob together with the offset of its length prefix.
type Fragment struct {
	Offset int
	Text   string
}

func isPlausibleByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == ' ' || c == '-' || c == '_'
}

func isPlausibleBytes(b []byte) bool {
	for _, c := range b {
		if !isPlausibleByte(c) {
			return false
		}
	}

	return true
}

// IsPlausibleText reports whether every byte of s is a lowercase ASCII letter,
// digit, space, hyphen or underscore. The empty string is plausible.
func IsPlausibleText(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isPlausibleByte(s[i]) {
			return false
		}
	}

	return true
}

// PeekPlausibleString checks whether a short string that could be real text
// starts at the read position, without moving it.
//
// The 16-bit length must be at most MaxPlausibleLength and the body must fit in
// the buffer. At least three bytes must remain after the position. With
// filterByContent the body must also satisfy IsPlausibleText.
//
// Returns:
//   - string: The candidate text (empty on failure)
//   - bool: Whether the candidate passed every check
func (c *Cursor) PeekPlausibleString(filterByContent bool) (string, bool) {
	if c.pos < 0 || c.pos+2 >= len(c.data) {
		return "", false
	}

	length := int(c.data[c.pos]) | int(c.data[c.pos+1])<<8
	body := c.pos + 2
	if length > MaxPlausibleLength || body+length > len(c.data) {
		return "", false
	}

	text := c.data[body : body+length]
	if filterByContent && !isPlausibleBytes(text) {
		return "", false
	}

	return string(text), true
}

// EatPlausibleString behaves like PeekPlausibleString and, only on success,
// advances the read position past the string.
func (c *Cursor) EatPlausibleString(filterByContent bool) (string, bool) {
	text, ok := c.PeekPlausibleString(filterByContent)
	if !ok {
		return "", false
	}
	c.pos += 2 + len(text)

	return text, true
}

// ScanBackwardForString looks for plausible text ending at the read position.
//
// The position first moves back two bytes, onto where the tail of a string
// would start. Candidate windows data[p-offset : p+2] then grow leftward from
// offset 0 while offset < p, failing once a window would exceed maxLength. The
// first window consisting of plausible bytes wins.
//
// Returns:
//   - int: The offset of the winning window measured back from the new position
//   - bool: false if no window qualified
func (c *Cursor) ScanBackwardForString(maxLength int) (int, bool) {
	c.pos -= 2
	p := c.pos

	if p <= 0 || p+2 > len(c.data) || maxLength < 2 {
		return 0, false
	}

	// Each wider window contains data[p:p+2], so no later window can pass if this one fails.
	if !isPlausibleBytes(c.data[p : p+2]) {
		return 0, false
	}

	return 0, true
}

// RecoverStrings walks data from start and collects every non-empty plausible
// short string, skipping past each one found.
func RecoverStrings(data []byte, start int) []Fragment {
	c := New(data)
	c.SetPos(max(start, 0))

	var frags []Fragment
	for c.Pos() < c.Len() {
		if text, ok := c.PeekPlausibleString(true); ok && text != "" {
			frags = append(frags, Fragment{Offset: c.Pos(), Text: text})
			c.Seek(2 + len(text))

			continue
		}
		c.Seek(1)
	}

	return frags
}

// RecoverAnchored finds every occurrence of anchor in data and recovers the
// plausible short string that ends immediately before it.
//
// Only strings of at least two bytes are considered. Occurrences with no such
// string are skipped.
func RecoverAnchored(data []byte, anchor []byte) []Fragment {
	c := New(data)

	var frags []Fragment
	for _, m := range c.FindAllForward(anchor) {
		c.SetPos(m)
		if _, ok := c.ScanBackwardForString(DefaultBackwardScanLimit); !ok {
			continue
		}

		for length := 2; length <= MaxPlausibleLength && m-2-length >= 0; length++ {
			c.SetPos(m - 2 - length)
			if text, ok := c.PeekPlausibleString(true); ok && len(text) == length {
				frags = append(frags, Fragment{Offset: c.Pos(), Text: text})
				break
			}
		}
	}

	return frags
}
