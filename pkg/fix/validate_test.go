package fix_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yaklabco/leptomcp/pkg/fix"
)

func TestTextEditConstructors(t *testing.T) {
	t.Parallel()

	replace := fix.Replace(2, 5, "x")
	if replace.StartOffset != 2 || replace.EndOffset != 5 || replace.NewText != "x" {
		t.Errorf("Replace: got %+v", replace)
	}
	if replace.IsInsert() || replace.IsDelete() {
		t.Error("replacement should be neither insert nor delete")
	}

	insert := fix.Insert(3, "abc")
	if !insert.IsInsert() {
		t.Errorf("Insert should report IsInsert: %+v", insert)
	}

	del := fix.Delete(1, 4)
	if !del.IsDelete() {
		t.Errorf("Delete should report IsDelete: %+v", del)
	}
}

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		edits      []fix.TextEdit
		contentLen int
		wantErr    bool
	}{
		{
			name:       "no edits",
			edits:      nil,
			contentLen: 10,
			wantErr:    false,
		},
		{
			name: "valid edits",
			edits: []fix.TextEdit{
				fix.Replace(0, 5, "x"),
				fix.Insert(10, "y"),
			},
			contentLen: 10,
			wantErr:    false,
		},
		{
			name: "negative start",
			edits: []fix.TextEdit{
				{StartOffset: -1, EndOffset: 3},
			},
			contentLen: 10,
			wantErr:    true,
		},
		{
			name: "end before start",
			edits: []fix.TextEdit{
				{StartOffset: 5, EndOffset: 3},
			},
			contentLen: 10,
			wantErr:    true,
		},
		{
			name: "end past content",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 11},
			},
			contentLen: 10,
			wantErr:    true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(testCase.edits, testCase.contentLen)
			if (err != nil) != testCase.wantErr {
				t.Errorf("ValidateEdits: wantErr=%v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 10, EndOffset: 12},
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 10, EndOffset: 11},
		{StartOffset: 6, EndOffset: 8},
	}

	fix.SortEdits(edits)

	want := []fix.TextEdit{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 6, EndOffset: 8},
		{StartOffset: 10, EndOffset: 11},
		{StartOffset: 10, EndOffset: 12},
	}
	if !reflect.DeepEqual(edits, want) {
		t.Errorf("SortEdits: got %+v", edits)
	}
}

func TestMergeAndFilterConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		edits        []fix.TextEdit
		wantAccepted []fix.TextEdit
		wantSkipped  int
		wantMerged   int
	}{
		{
			name: "no overlap",
			edits: []fix.TextEdit{
				fix.Replace(0, 2, "a"),
				fix.Replace(4, 6, "b"),
			},
			wantAccepted: []fix.TextEdit{
				fix.Replace(0, 2, "a"),
				fix.Replace(4, 6, "b"),
			},
		},
		{
			name: "overlapping deletions merge",
			edits: []fix.TextEdit{
				fix.Delete(0, 5),
				fix.Delete(3, 8),
			},
			wantAccepted: []fix.TextEdit{
				fix.Delete(0, 8),
			},
			wantMerged: 1,
		},
		{
			name: "overlapping replacements skip the later",
			edits: []fix.TextEdit{
				fix.Replace(0, 5, "a"),
				fix.Replace(3, 8, "b"),
			},
			wantAccepted: []fix.TextEdit{
				fix.Replace(0, 5, "a"),
			},
			wantSkipped: 1,
		},
		{
			name: "contained deletion merges without extending",
			edits: []fix.TextEdit{
				fix.Delete(0, 10),
				fix.Delete(2, 4),
			},
			wantAccepted: []fix.TextEdit{
				fix.Delete(0, 10),
			},
			wantMerged: 1,
		},
		{
			name: "mixed chain",
			edits: []fix.TextEdit{
				fix.Delete(0, 4),
				fix.Delete(2, 6),
				fix.Replace(5, 7, "x"),
				fix.Replace(8, 9, "y"),
			},
			wantAccepted: []fix.TextEdit{
				fix.Delete(0, 6),
				fix.Replace(8, 9, "y"),
			},
			wantSkipped: 1,
			wantMerged:  1,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			accepted, skipped, merged := fix.MergeAndFilterConflicts(testCase.edits)
			if !reflect.DeepEqual(accepted, testCase.wantAccepted) {
				t.Errorf("accepted: expected %+v, got %+v", testCase.wantAccepted, accepted)
			}
			if len(skipped) != testCase.wantSkipped {
				t.Errorf("skipped: expected %d, got %d", testCase.wantSkipped, len(skipped))
			}
			if merged != testCase.wantMerged {
				t.Errorf("merged: expected %d, got %d", testCase.wantMerged, merged)
			}
		})
	}
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	t.Run("sorts and resolves", func(t *testing.T) {
		t.Parallel()

		edits := []fix.TextEdit{
			fix.Replace(10, 12, "b"),
			fix.Replace(0, 2, "a"),
		}

		accepted, skipped, merged, err := fix.PrepareEdits(edits, 20)
		if err != nil {
			t.Fatalf("PrepareEdits: %v", err)
		}
		if len(accepted) != 2 || accepted[0].StartOffset != 0 {
			t.Errorf("accepted not sorted: %+v", accepted)
		}
		if len(skipped) != 0 || merged != 0 {
			t.Errorf("unexpected conflicts: skipped=%d merged=%d", len(skipped), merged)
		}
	})

	t.Run("invalid range errors", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := fix.PrepareEdits([]fix.TextEdit{fix.Replace(0, 99, "x")}, 10)
		if err == nil {
			t.Fatal("expected a validation error")
		}

		var validationErr *fix.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("expected *fix.ValidationError, got %T", err)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		t.Parallel()

		edits := []fix.TextEdit{
			fix.Replace(10, 12, "b"),
			fix.Replace(0, 2, "a"),
		}

		_, _, _, err := fix.PrepareEdits(edits, 20)
		if err != nil {
			t.Fatalf("PrepareEdits: %v", err)
		}
		if edits[0].StartOffset != 10 {
			t.Error("input slice order should be preserved")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		accepted, skipped, merged, err := fix.PrepareEdits(nil, 0)
		if err != nil || accepted != nil || skipped != nil || merged != 0 {
			t.Errorf("empty prepare: got %v %v %d %v", accepted, skipped, merged, err)
		}
	})
}
