// Package resilience implements the circuit breaker guarding service
// providers.
//
// Every provider registered with the service registry executes behind
// its own Breaker. A provider that keeps erroring (a wedged PTY, a
// full disk) trips its circuit open and subsequent calls fail fast
// with ErrCircuitOpen instead of piling up, while the other providers
// keep serving. After the open timeout a limited number of probe
// requests run in half-open state; success closes the circuit again.
//
//	breaker := resilience.New("files", resilience.Settings{
//		Timeout: 30 * time.Second,
//		ReadyToTrip: func(c resilience.Counts) bool {
//			return c.ConsecutiveFailures > 5
//		},
//	})
//	result, err := breaker.Execute(func() (interface{}, error) {
//		return provider.Execute(toolID, params, ctx)
//	})
package resilience
