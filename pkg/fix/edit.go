// Package fix provides byte-range text edits and their application,
// used to carry and apply rule suggestions.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Replace builds an edit substituting bytes [start, end) with text.
func Replace(start, end int, text string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

// Insert builds an edit inserting text at offset.
func Insert(offset int, text string) TextEdit {
	return Replace(offset, offset, text)
}

// Delete builds an edit removing bytes [start, end).
func Delete(start, end int) TextEdit {
	return Replace(start, end, "")
}

// IsInsert reports whether the edit adds text without removing any.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset && e.NewText != ""
}

// IsDelete reports whether the edit removes text without adding any.
func (e TextEdit) IsDelete() bool {
	return e.EndOffset > e.StartOffset && e.NewText == ""
}
