package mfaflow

import (
	"fmt"
	"testing"
)

func TestPanelRefusesEnrollmentAtFactorLimit(t *testing.T) {
	provider := newFakeProvider()
	for i := 0; i < MaxVerifiedFactors; i++ {
		provider.addVerifiedFactor(fmt.Sprintf("factor-%d", i))
	}
	panel := NewPanel(PanelOpts{Provider: provider})
	if _, err := panel.BeginEnrollment(nil); err != ErrorFactorLimitReached {
		t.Errorf("expected ErrorFactorLimitReached at the cap, got: %s", err)
	}
	if provider.counters()["enroll"] != 0 {
		t.Errorf("expected the cap to be enforced without asking for a secret, got %d enroll calls", provider.counters()["enroll"])
	}
}

func TestPanelUnverifiedFactorsDoNotCountTowardsLimit(t *testing.T) {
	provider := newFakeProvider()
	for i := 0; i < MaxVerifiedFactors-1; i++ {
		provider.addVerifiedFactor(fmt.Sprintf("verified-%d", i))
	}
	for i := 0; i < 5; i++ {
		provider.addUnverifiedFactor(fmt.Sprintf("pending-%d", i))
	}
	panel := NewPanel(PanelOpts{Provider: provider})
	if _, err := panel.BeginEnrollment(nil); err != nil {
		t.Errorf("expected unverified factors to leave room below the cap, got: %s", err)
	}
}

func TestPanelBeginEnrollmentPurgesAbandonedFactors(t *testing.T) {
	provider := newFakeProvider()
	provider.addVerifiedFactor("keep-me")
	provider.addUnverifiedFactor("abandoned-a")
	provider.addUnverifiedFactor("abandoned-b")
	panel := NewPanel(PanelOpts{Provider: provider})
	if _, err := panel.BeginEnrollment(nil); err != nil {
		t.Fatalf("expected no error beginning an enrollment, got: %s", err)
	}
	if provider.counters()["unenroll"] != 2 {
		t.Errorf("expected both abandoned factors to be removed before enrolling, got %d unenroll calls", provider.counters()["unenroll"])
	}
	factors := panel.Factors()
	if len(factors) != 1 || factors[0].Id != "keep-me" {
		t.Errorf("expected only the verified factor to remain, got: %+v", factors)
	}
}

func TestPanelBeginEnrollmentProceedsPastPurgeFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.addUnverifiedFactor("stuck")
	provider.unenrollFailIds = map[string]bool{"stuck": true}
	panel := NewPanel(PanelOpts{Provider: provider})
	flow, err := panel.BeginEnrollment(nil)
	if err != nil {
		t.Fatalf("expected a failed purge to not block the enrollment, got: %s", err)
	}
	if _, err := flow.Start(); err != nil {
		t.Errorf("expected the flow to start despite the stuck factor, got: %s", err)
	}
}

func TestPanelRefreshesAfterEnrollment(t *testing.T) {
	provider := newFakeProvider()
	panel := NewPanel(PanelOpts{Provider: provider})
	flow, err := panel.BeginEnrollment(nil)
	if err != nil {
		t.Fatalf("expected no error beginning an enrollment, got: %s", err)
	}
	if _, err := flow.Start(); err != nil {
		t.Fatalf("expected no error starting the flow, got: %s", err)
	}
	if _, err := flow.Input("123456"); err != nil {
		t.Fatalf("expected the code to verify, got: %s", err)
	}
	factors := panel.Factors()
	if len(factors) != 1 {
		t.Fatalf("expected the panel to show the new factor, got %d factors", len(factors))
	}
	if !factors[0].IsVerified {
		t.Errorf("expected the new factor to be listed as verified")
	}
}

func TestPanelRemoveRefreshesListing(t *testing.T) {
	provider := newFakeProvider()
	provider.addVerifiedFactor("factor-a")
	provider.addVerifiedFactor("factor-b")
	panel := NewPanel(PanelOpts{Provider: provider})
	if err := panel.Refresh(); err != nil {
		t.Fatalf("expected no error refreshing the panel, got: %s", err)
	}
	if err := panel.Remove("factor-a"); err != nil {
		t.Fatalf("expected no error removing a factor, got: %s", err)
	}
	factors := panel.Factors()
	if len(factors) != 1 || factors[0].Id != "factor-b" {
		t.Errorf("expected only factor-b to remain, got: %+v", factors)
	}
}

func TestPanelRemoveUnverifiedToleratesFailures(t *testing.T) {
	provider := newFakeProvider()
	provider.addVerifiedFactor("keep-me")
	provider.addUnverifiedFactor("pending-a")
	provider.addUnverifiedFactor("stuck")
	provider.addUnverifiedFactor("pending-b")
	provider.unenrollFailIds = map[string]bool{"stuck": true}
	panel := NewPanel(PanelOpts{Provider: provider})
	removed, err := panel.RemoveUnverified()
	if err == nil {
		t.Errorf("expected the failed removal to be reported")
	}
	if removed != 2 {
		t.Errorf("expected the cleanup to carry on past the failure, got %d removed", removed)
	}
	if provider.counters()["unenroll"] != 3 {
		t.Errorf("expected every unverified factor to be attempted, got %d unenroll calls", provider.counters()["unenroll"])
	}
}

func TestPanelRemoveUnverifiedKeepsVerifiedFactors(t *testing.T) {
	provider := newFakeProvider()
	provider.addVerifiedFactor("keep-me")
	provider.addUnverifiedFactor("pending-a")
	panel := NewPanel(PanelOpts{Provider: provider})
	removed, err := panel.RemoveUnverified()
	if err != nil {
		t.Fatalf("expected no error cleaning up, got: %s", err)
	}
	if removed != 1 {
		t.Errorf("expected one factor to be removed, got: %d", removed)
	}
	factors := panel.Factors()
	if len(factors) != 1 || factors[0].Id != "keep-me" {
		t.Errorf("expected the verified factor to survive cleanup, got: %+v", factors)
	}
}
