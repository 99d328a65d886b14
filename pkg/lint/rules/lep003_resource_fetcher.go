package rules

import (
	"fmt"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

//nolint:gochecknoinits // Rule registration.
func init() {
	register(ResourceFetcherSignalRead)
}

// ResourceFetcherSignalRead flags resource fetchers that read tracked
// signals directly instead of receiving them through the source.
//
//nolint:gochecknoglobals // Rule definition.
var ResourceFetcherSignalRead = lint.Rule{
	ID:          "LEP003",
	Name:        "resource-fetcher-signal-read",
	Description: "Resource fetchers should receive signal values from the source argument.",
	Kinds:       []scan.Kind{scan.KindResource},
	Severity:    config.SeverityWarning,
	Check:       checkResourceFetcherSignalRead,

	Rationale: `A resource splits tracking and fetching: the source closure names the
signals to watch, and the fetcher receives their current value as its
parameter. A fetcher that calls .get() on a signal itself runs in an untracked
context, so the resource never refetches when that signal changes. The read
belongs in the source.`,

	BadExample: `let user = Resource::new(
    || (),
    move |_| fetch_user(user_id.get()),
);`,

	GoodExample: `let user = Resource::new(
    move || user_id.get(),
    move |id| fetch_user(id),
);`,
}

func checkResourceFetcherSignalRead(u *scan.Unit, snap *scan.Snapshot) *lint.Match {
	if u.FetcherSpan.IsEmpty() {
		return nil
	}

	params := closureParams(u.FetcherText)

	for i := range snap.Units {
		r := &snap.Units[i]
		if r.Kind != scan.KindReactiveRead {
			continue
		}
		if r.Span.Start < u.FetcherSpan.Start || r.Span.End > u.FetcherSpan.End {
			continue
		}
		if untrackedRead(r) {
			continue
		}
		if r.Receiver != "" && params[r.Receiver] {
			continue
		}

		span := r.Span
		return &lint.Match{
			Message:    fmt.Sprintf("Resource fetcher reads `%s` directly; the resource will not refetch when it changes", r.Text),
			Suggestion: "Track the signal in the source argument and take its value as the fetcher parameter",
			Span:       &span,
		}
	}

	return nil
}
