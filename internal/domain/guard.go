package domain

// GuardResult is the outcome of a guard check (rate limit, circuit breaker,
// idempotency).
type GuardResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Guard   string `json:"guard,omitempty"`
}
