package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/leptomcp/pkg/runner"
)

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "issues found", err: ErrIssuesFound, want: ExitErrors},
		{name: "strict warnings", err: ErrStrictWarnings, want: ExitWarnings},
		{name: "usage error", err: ErrUsage, want: ExitInvalidUsage},
		{name: "wrapped usage error", err: fmt.Errorf("%w: bad flag", ErrUsage), want: ExitInvalidUsage},
		{name: "config error", err: fmt.Errorf("%w: parse failed", ErrConfig), want: ExitConfigError},
		{name: "io error", err: fmt.Errorf("%w: read failed", ErrIO), want: ExitIOError},
		{name: "unclassified error", err: errors.New("boom"), want: ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestExitErrorFromResult(t *testing.T) {
	t.Parallel()

	resultWith := func(errorFindings, warningFindings, filesErrored int) *runner.Result {
		return &runner.Result{
			Stats: runner.Stats{
				FilesErrored: filesErrored,
				FindingsBySeverity: map[string]int{
					"error":   errorFindings,
					"warning": warningFindings,
				},
			},
		}
	}

	tests := []struct {
		name    string
		result  *runner.Result
		strict  bool
		wantErr error
	}{
		{name: "nil result", result: nil, wantErr: nil},
		{name: "clean run", result: resultWith(0, 0, 0), wantErr: nil},
		{name: "warnings without strict", result: resultWith(0, 3, 0), wantErr: nil},
		{name: "warnings with strict", result: resultWith(0, 3, 0), strict: true, wantErr: ErrStrictWarnings},
		{name: "error findings", result: resultWith(2, 0, 0), wantErr: ErrIssuesFound},
		{name: "errors beat strict warnings", result: resultWith(1, 5, 0), strict: true, wantErr: ErrIssuesFound},
		{name: "unreadable files", result: resultWith(0, 0, 2), wantErr: ErrIO},
		{name: "errors beat unreadable files", result: resultWith(1, 0, 2), wantErr: ErrIssuesFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := exitErrorFromResult(tt.result, tt.strict)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
