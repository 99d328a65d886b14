package pretty

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/leptomcp/pkg/fix"
)

// FormatDiff renders a file diff in GitHub style with per-line coloring.
// Returns the empty string when the diff has no changes.
func (s *Styles) FormatDiff(diff *fix.Diff) string {
	if !diff.HasChanges() {
		return ""
	}

	// Use relative path for display if possible.
	displayPath := relativePath(diff.Path)

	var builder strings.Builder

	// Git-style header: "diff --git a/file b/file"
	header := fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)
	builder.WriteString(s.DiffHeader.Render(header) + "\n")

	builder.WriteString(s.DiffRemove.Render("--- a/"+displayPath) + "\n")
	builder.WriteString(s.DiffAdd.Render("+++ b/"+displayPath) + "\n")

	for _, hunk := range diff.Hunks {
		hunkHeader := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		builder.WriteString(s.DiffHunk.Render(hunkHeader) + "\n")

		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				builder.WriteString(s.DiffAdd.Render("+"+line.Content) + "\n")
			case fix.DiffLineRemove:
				builder.WriteString(s.DiffRemove.Render("-"+line.Content) + "\n")
			default:
				builder.WriteString(s.DiffContext.Render(" "+line.Content) + "\n")
			}
		}
	}

	return builder.String()
}

// FormatDiffSummary renders a git-style change summary line.
// Example: "2 files changed, 5 insertions(+), 3 deletions(-)".
func (s *Styles) FormatDiffSummary(files, additions, deletions int) string {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, s.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, s.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// relativePath converts an absolute path to a relative path from the current
// directory. If the relative path would require too many "../" traversals,
// use the basename instead.
func relativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return rel
}
