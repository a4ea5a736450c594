package mfaflow

import (
	"errors"
	"testing"
)

func TestGateAllowsListedPaths(t *testing.T) {
	provider := newFakeProvider()
	provider.aal = &Aal{
		CurrentLevel: AalSingleFactor,
		NextLevel:    AalMultiFactor,
	}
	gate := NewGate(GateOpts{Provider: provider})
	for _, path := range []string{"/", "/login", "/signup", "/mfa-verify", "/mfa-setup", "/platforms/signal", "/privacy/deleting-your-data"} {
		decision := gate.Check(path)
		if !decision.IsAllowed {
			t.Errorf("expected path[%s] to be allowed without a step-up", path)
		}
	}
	if provider.counters()["aal"] != 0 {
		t.Errorf("expected no level lookups for allow-listed paths, got: %d", provider.counters()["aal"])
	}
}

func TestGateRedirectsPendingStepUp(t *testing.T) {
	provider := newFakeProvider()
	provider.aal = &Aal{
		CurrentLevel: AalSingleFactor,
		NextLevel:    AalMultiFactor,
	}
	gate := NewGate(GateOpts{Provider: provider})
	decision := gate.Check("/garage")
	if decision.IsAllowed {
		t.Fatalf("expected a pending step-up to block the navigation")
	}
	if decision.RedirectTo != MfaRedirectPath {
		t.Errorf("expected a redirect to %s, got: %s", MfaRedirectPath, decision.RedirectTo)
	}
}

func TestGateAllowsCompletedStepUp(t *testing.T) {
	provider := newFakeProvider()
	provider.aal = &Aal{
		CurrentLevel: AalMultiFactor,
		NextLevel:    AalMultiFactor,
	}
	gate := NewGate(GateOpts{Provider: provider})
	decision := gate.Check("/garage")
	if !decision.IsAllowed {
		t.Errorf("expected a stepped-up session to pass the gate")
	}
}

func TestGateAllowsSingleFactorOnlySession(t *testing.T) {
	provider := newFakeProvider()
	provider.aal = &Aal{
		CurrentLevel: AalSingleFactor,
		NextLevel:    AalSingleFactor,
	}
	gate := NewGate(GateOpts{Provider: provider})
	decision := gate.Check("/garage")
	if !decision.IsAllowed {
		t.Errorf("expected a session with no enrolled factors to pass the gate")
	}
}

func TestGateFailsOpenOnLookupError(t *testing.T) {
	provider := newFakeProvider()
	provider.aalErr = errors.New("controller unreachable")
	var reported error
	gate := NewGate(GateOpts{
		Provider: provider,
		OnError:  func(err error) { reported = err },
	})
	decision := gate.Check("/garage")
	if !decision.IsAllowed {
		t.Errorf("expected the gate to fail open when the level lookup fails")
	}
	if !errors.Is(reported, provider.aalErr) {
		t.Errorf("expected the lookup failure to be surfaced, got: %v", reported)
	}
}

func TestGateChecksLevelOnEveryNavigation(t *testing.T) {
	provider := newFakeProvider()
	provider.aal = &Aal{
		CurrentLevel: AalSingleFactor,
		NextLevel:    AalMultiFactor,
	}
	gate := NewGate(GateOpts{Provider: provider})
	if decision := gate.Check("/garage"); decision.IsAllowed {
		t.Fatalf("expected the first check to be blocked")
	}
	if decision := gate.Check("/garage"); decision.IsAllowed {
		t.Fatalf("expected the second check to be blocked")
	}
	if got := provider.counters()["aal"]; got != 2 {
		t.Errorf("expected one level lookup per navigation, got: %d", got)
	}
	// a challenge passed in another tab lifts the block on the very
	// next navigation
	provider.mu.Lock()
	provider.aal = &Aal{
		CurrentLevel: AalMultiFactor,
		NextLevel:    AalMultiFactor,
	}
	provider.mu.Unlock()
	if decision := gate.Check("/garage"); !decision.IsAllowed {
		t.Errorf("expected the raised level to pass the gate without any reset")
	}
}
