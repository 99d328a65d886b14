package fix_test

import (
	"testing"

	"github.com/yaklabco/leptomcp/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "empty edits returns original",
			content: "let (a, set_a) = create_signal(0);",
			edits:   nil,
			want:    "let (a, set_a) = create_signal(0);",
		},
		{
			name:    "single replacement",
			content: "let (a, set_a) = create_signal(0);",
			edits: []fix.TextEdit{
				fix.Replace(17, 30, "signal"),
			},
			want: "let (a, set_a) = signal(0);",
		},
		{
			name:    "single insertion",
			content: "{count.get()}",
			edits: []fix.TextEdit{
				fix.Insert(1, "move || "),
			},
			want: "{move || count.get()}",
		},
		{
			name:    "single deletion",
			content: "println!(\"debug\");\nrender();",
			edits: []fix.TextEdit{
				fix.Delete(0, 19),
			},
			want: "render();",
		},
		{
			name:    "multiple non-overlapping edits",
			content: "create_signal create_memo",
			edits: []fix.TextEdit{
				fix.Replace(0, 13, "signal"),
				fix.Replace(14, 25, "memo"),
			},
			want: "signal memo",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []fix.TextEdit{
				fix.Replace(0, 3, "X"),
				fix.Replace(3, 6, "Y"),
			},
			want: "XY",
		},
		{
			name:    "replace entire content",
			content: "old",
			edits: []fix.TextEdit{
				fix.Replace(0, 3, "new"),
			},
			want: "new",
		},
		{
			name:    "insert into empty content",
			content: "",
			edits: []fix.TextEdit{
				fix.Insert(0, "fresh"),
			},
			want: "fresh",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := fix.ApplyEdits([]byte(testCase.content), testCase.edits)
			if string(got) != testCase.want {
				t.Errorf("ApplyEdits: expected %q, got %q", testCase.want, string(got))
			}
		})
	}
}

func TestApplyEditsAfterPrepare(t *testing.T) {
	t.Parallel()

	content := "create_signal and create_memo and create_effect"

	// Out of order on purpose; PrepareEdits sorts them.
	edits := []fix.TextEdit{
		fix.Replace(18, 29, "memo"),
		fix.Replace(0, 13, "signal"),
		fix.Replace(34, 47, "effect"),
	}

	accepted, skipped, merged, err := fix.PrepareEdits(edits, len(content))
	if err != nil {
		t.Fatalf("PrepareEdits: %v", err)
	}
	if len(skipped) != 0 || merged != 0 {
		t.Fatalf("expected clean prepare, got skipped=%d merged=%d", len(skipped), merged)
	}

	got := fix.ApplyEdits([]byte(content), accepted)
	want := "signal and memo and effect"
	if string(got) != want {
		t.Errorf("expected %q, got %q", want, string(got))
	}
}
