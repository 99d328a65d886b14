package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

//nolint:gochecknoinits // Rule registration.
func init() {
	register(ServerFnMissingError)
}

// ServerFnMissingError flags server functions whose return type cannot
// carry transport failures.
//
//nolint:gochecknoglobals // Rule definition.
var ServerFnMissingError = lint.Rule{
	ID:          "LEP009",
	Name:        "server-fn-missing-error",
	Description: "Server functions should return Result<_, ServerFnError>.",
	Kinds:       []scan.Kind{scan.KindFnDecl},
	Severity:    config.SeverityWarning,
	Check:       checkServerFnMissingError,

	Rationale: `A server function call crosses the network, and the network fails
independently of the function body. ServerFnError is the variant set the
framework uses to surface serialization, registration, and transport
failures to the caller. A server function returning a bare value gives the
client no channel for those failures and panics where a Result would have
carried the error.`,

	BadExample: `#[server]
async fn delete_item(id: u32) -> u32 {
    db::delete(id).await
}`,

	GoodExample: `#[server]
async fn delete_item(id: u32) -> Result<u32, ServerFnError> {
    Ok(db::delete(id).await?)
}`,
}

func checkServerFnMissingError(u *scan.Unit, _ *scan.Snapshot) *lint.Match {
	if !u.HasServerMacro {
		return nil
	}
	if strings.Contains(u.ReturnType, "ServerFnError") {
		return nil
	}

	return &lint.Match{
		Message:    fmt.Sprintf("Server function `%s` does not return `Result<_, ServerFnError>`; transport failures have nowhere to go", u.Name),
		Suggestion: "Declare the return type as `Result<T, ServerFnError>`",
	}
}
