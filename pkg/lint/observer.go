package lint

import "time"

// Observer receives engine events. pkg/metrics provides a Prometheus
// implementation. Methods may be called from several goroutines.
type Observer interface {
	// RuleDone is called after each rule run in a pass.
	RuleDone(rule string, elapsed time.Duration, diagnostics int, failed bool)

	// Suppressed is called once per pass with the number of dropped
	// diagnostics.
	Suppressed(count int)

	// PassDone is called after each fix pass with the resolver outcome.
	PassDone(accepted, rejected, invalid int)

	// FixDone is called when the convergence loop stops.
	FixDone(state State, passes int)
}

type nopObserver struct{}

func (nopObserver) RuleDone(string, time.Duration, int, bool) {}
func (nopObserver) Suppressed(int)                            {}
func (nopObserver) PassDone(int, int, int)                    {}
func (nopObserver) FixDone(State, int)                        {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
