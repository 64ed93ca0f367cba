// Package guard holds the business-rule checks consulted before user and
// product mutations are committed: the admin-count bounds and the per-category
// product capacity. Guards are stateless; they read fresh counts through the
// counter interfaces and must be evaluated inside the same transaction as the
// write they protect.
package guard

// Verdict is the outcome of a guard decision.
type Verdict struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Allow returns a permitting verdict.
func Allow() Verdict {
	return Verdict{Allowed: true}
}

// Deny returns a vetoing verdict with a caller-facing reason.
func Deny(reason string) Verdict {
	return Verdict{Allowed: false, Reason: reason}
}
