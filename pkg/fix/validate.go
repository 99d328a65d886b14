package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit whose range does not fit the
// content it targets.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks every edit range against the content length.
// Returns the first invalid edit found.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		if edit.StartOffset < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.EndOffset < edit.StartOffset {
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.EndOffset > contentLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset, giving a
// deterministic application order.
func SortEdits(edits []TextEdit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset < edits[j].StartOffset
		}
		return edits[i].EndOffset < edits[j].EndOffset
	})
}

// MergeAndFilterConflicts resolves overlap in a sorted edit slice.
// Overlapping pure deletions merge into one deletion covering the
// union; any other overlap keeps the earlier edit and skips the later
// one. Returns the edits to apply, the edits skipped, and how many
// merges happened.
func MergeAndFilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit, int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	accepted := make([]TextEdit, 0, len(edits))
	skipped := make([]TextEdit, 0)
	merged := 0

	current := edits[0]
	for _, edit := range edits[1:] {
		if edit.StartOffset >= current.EndOffset {
			accepted = append(accepted, current)
			current = edit
			continue
		}

		if current.IsDelete() && edit.IsDelete() {
			if edit.EndOffset > current.EndOffset {
				current.EndOffset = edit.EndOffset
			}
			merged++
			continue
		}

		skipped = append(skipped, edit)
	}
	accepted = append(accepted, current)

	return accepted, skipped, merged
}

// PrepareEdits validates, sorts, and resolves conflicts in one pass.
// Conflicts are not errors: deletions merge and other overlaps drop
// the later edit. The error is non-nil only for invalid ranges.
func PrepareEdits(edits []TextEdit, contentLen int) (accepted, skipped []TextEdit, merged int, err error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, 0, err
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	accepted, skipped, merged = MergeAndFilterConflicts(sorted)
	return accepted, skipped, merged, nil
}
