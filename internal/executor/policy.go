package executor

import (
	"context"
	"fmt"
	"strings"
)

// Policy selects how a batch reacts to failures
type Policy string

const (
	// PolicyCollectAll runs every job and reports every outcome
	PolicyCollectAll Policy = "collect-all"

	// PolicyFailFast aborts the batch on the first failure in join order
	PolicyFailFast Policy = "fail-fast"
)

// Policies lists the supported policies
func Policies() []Policy {
	return []Policy{PolicyCollectAll, PolicyFailFast}
}

// ParsePolicy converts a string to a Policy, ignoring case and surrounding spaces
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyCollectAll, PolicyFailFast:
		return p, nil
	default:
		return "", fmt.Errorf("unknown policy %q (want %s or %s)", s, PolicyCollectAll, PolicyFailFast)
	}
}

// Run executes jobs with the executor for policy.
// With PolicyCollectAll the error is always nil.
func Run[T any](ctx context.Context, policy Policy, jobs []Job[T], opts ...Option) ([]Result[T], error) {
	switch policy {
	case PolicyCollectAll:
		return NewCollectAll[T](opts...).Execute(ctx, jobs), nil
	case PolicyFailFast:
		return NewFailFast[T](opts...).Execute(ctx, jobs)
	default:
		return nil, fmt.Errorf("unknown policy %q", policy)
	}
}
