package fix_test

import (
	"testing"

	"github.com/yaklabco/leptomcp/pkg/fix"
)

func FuzzGenerateDiff(f *testing.F) {
	// Seed corpus.
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("use leptos::*;"), []byte("use leptos::*;"))
	f.Add([]byte("create_signal(0)"), []byte("signal(0)"))
	f.Add([]byte("fn main() {}\n"), []byte("fn main() {}\n"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte("let a = 1;\nlet b = 2;\n"), []byte("let a = 1;\nlet b = 2;\nlet c = 3;\n"))
	f.Add([]byte("let a = 1;\nlet b = 2;\nlet c = 3;\n"), []byte("let a = 1;\nlet c = 3;\n"))
	f.Add([]byte("a\nb\nc\nd\ne\n"), []byte("a\nB\nc\nD\ne\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		// GenerateDiff should not panic on arbitrary byte input.
		diff := fix.GenerateDiff("src/app.rs", original, modified)

		// A nil diff means the content is equivalent line-by-line.
		if diff == nil {
			return
		}

		if diff.Path != "src/app.rs" {
			t.Errorf("Path = %q, want src/app.rs", diff.Path)
		}

		// String() should not panic.
		_ = diff.String()

		if !diff.HasChanges() && len(diff.Hunks) > 0 {
			t.Error("HasChanges() inconsistent with Hunks")
		}

		for hunkIdx, hunk := range diff.Hunks {
			if hunk.OriginalStart < 1 {
				t.Errorf("hunk %d: OriginalStart = %d, want >= 1", hunkIdx, hunk.OriginalStart)
			}
			if hunk.ModifiedStart < 1 {
				t.Errorf("hunk %d: ModifiedStart = %d, want >= 1", hunkIdx, hunk.ModifiedStart)
			}
			if hunk.OriginalCount < 0 {
				t.Errorf("hunk %d: OriginalCount = %d, want >= 0", hunkIdx, hunk.OriginalCount)
			}
			if hunk.ModifiedCount < 0 {
				t.Errorf("hunk %d: ModifiedCount = %d, want >= 0", hunkIdx, hunk.ModifiedCount)
			}

			var ctxCount, addCount, remCount int
			for _, line := range hunk.Lines {
				switch line.Kind {
				case fix.DiffLineContext:
					ctxCount++
				case fix.DiffLineAdd:
					addCount++
				case fix.DiffLineRemove:
					remCount++
				}
			}

			// Hunk headers must agree with the lines they carry.
			if ctxCount+remCount != hunk.OriginalCount {
				t.Errorf("hunk %d: context(%d) + remove(%d) != OriginalCount(%d)",
					hunkIdx, ctxCount, remCount, hunk.OriginalCount)
			}
			if ctxCount+addCount != hunk.ModifiedCount {
				t.Errorf("hunk %d: context(%d) + add(%d) != ModifiedCount(%d)",
					hunkIdx, ctxCount, addCount, hunk.ModifiedCount)
			}
		}
	})
}

func FuzzApplyEdits(f *testing.F) {
	// Seed corpus.
	f.Add([]byte("create_signal"), 0, 13, "signal")
	f.Add([]byte("count.get()"), 0, 0, "move || ")
	f.Add([]byte("view! { <p/> }"), 14, 14, "\n")
	f.Add([]byte("println!(\"x\");"), 0, 14, "")
	f.Add([]byte("abcdef"), 2, 4, "")

	f.Fuzz(func(t *testing.T, content []byte, start, end int, newText string) {
		if start < 0 || end < start || end > len(content) {
			return // Invalid edit, skip.
		}

		edits := []fix.TextEdit{
			{StartOffset: start, EndOffset: end, NewText: newText},
		}

		// ApplyEdits should not panic.
		result := fix.ApplyEdits(content, edits)

		expectedLen := len(content) - (end - start) + len(newText)
		if len(result) != expectedLen {
			t.Errorf("result length = %d, want %d", len(result), expectedLen)
		}

		// Content before the edit is preserved.
		for i := range start {
			if result[i] != content[i] {
				t.Errorf("byte %d modified before edit: got %d, want %d", i, result[i], content[i])
				break
			}
		}

		// New text appears at the edit position.
		for i := range len(newText) {
			if result[start+i] != newText[i] {
				t.Errorf("new text byte %d wrong: got %d, want %d", i, result[start+i], newText[i])
				break
			}
		}

		// Content after the edit is preserved.
		afterEditStart := start + len(newText)
		for i := end; i < len(content); i++ {
			resultIdx := afterEditStart + (i - end)
			if result[resultIdx] != content[i] {
				t.Errorf("byte %d modified after edit: got %d, want %d", i, result[resultIdx], content[i])
				break
			}
		}
	})
}

func FuzzPrepareEdits(f *testing.F) {
	// Two edits with arbitrary ranges; PrepareEdits must never hand
	// ApplyEdits an overlapping or out-of-order set.
	f.Add([]byte("create_signal(0)"), 0, 13, "signal", 14, 15, "1")
	f.Add([]byte("abcdef"), 0, 3, "", 2, 5, "")
	f.Add([]byte("abcdef"), 1, 4, "x", 2, 5, "y")
	f.Add([]byte("hello"), 0, 0, "a", 5, 5, "b")

	f.Fuzz(func(t *testing.T, content []byte, s1, e1 int, t1 string, s2, e2 int, t2 string) {
		edits := []fix.TextEdit{
			{StartOffset: s1, EndOffset: e1, NewText: t1},
			{StartOffset: s2, EndOffset: e2, NewText: t2},
		}

		accepted, skipped, _, err := fix.PrepareEdits(edits, len(content))
		if err != nil {
			return // Invalid ranges are rejected up front.
		}

		if len(accepted)+len(skipped) > len(edits) {
			t.Errorf("accepted(%d) + skipped(%d) > input(%d)",
				len(accepted), len(skipped), len(edits))
		}

		// Accepted edits are sorted and non-overlapping.
		for i := 1; i < len(accepted); i++ {
			if accepted[i].StartOffset < accepted[i-1].EndOffset {
				t.Errorf("accepted edits overlap: %+v then %+v", accepted[i-1], accepted[i])
			}
		}

		// The prepared set must apply cleanly.
		_ = fix.ApplyEdits(content, accepted)
	})
}
