package controller

import (
	"testing"

	"dontverifyme/internal/controller/models"
)

func TestNeedsStepUpForDeletion(t *testing.T) {
	tests := []struct {
		name         string
		currentLevel string
		nextLevel    string
		isVerified   bool
		expected     bool
	}{
		{
			name:         "verified factor with pending step-up",
			currentLevel: models.AalSingleFactor,
			nextLevel:    models.AalMultiFactor,
			isVerified:   true,
			expected:     true,
		},
		{
			name:         "unverified factor with pending step-up",
			currentLevel: models.AalSingleFactor,
			nextLevel:    models.AalMultiFactor,
			isVerified:   false,
			expected:     false,
		},
		{
			name:         "verified factor on a stepped-up session",
			currentLevel: models.AalMultiFactor,
			nextLevel:    models.AalMultiFactor,
			isVerified:   true,
			expected:     false,
		},
		{
			name:         "verified factor without any step-up available",
			currentLevel: models.AalSingleFactor,
			nextLevel:    models.AalSingleFactor,
			isVerified:   true,
			expected:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := userIdentity{
				CurrentLevel: tt.currentLevel,
				NextLevel:    tt.nextLevel,
			}
			factor := &models.UserMfa{IsVerified: tt.isVerified}
			if got := needsStepUpForDeletion(session, factor); got != tt.expected {
				t.Errorf("expected needsStepUpForDeletion to return %v, got: %v", tt.expected, got)
			}
		})
	}
}
