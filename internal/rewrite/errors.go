package rewrite

import "github.com/pkg/errors"

// Sentinel errors for the rewrite taxonomy. Callers classify with errors.Is;
// the wrapped context always names the offending node.
var (
	// ErrUnresolvedConstant: an expected constant-producing node could not
	// be resolved (non-constant producer behind the identity chain).
	// Recovered locally: the current anchor is skipped.
	ErrUnresolvedConstant = errors.New("expected constant, found non-constant producer")

	// ErrUnsupportedStructure: a recognized-but-not-handled structural
	// variant, e.g. a permutation constant with an unexpected value. Fatal
	// to the enclosing pass; never silently defaulted around.
	ErrUnsupportedStructure = errors.New("unsupported graph structure")
)
