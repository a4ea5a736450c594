package common

import "testing"

func TestGenerateRandomString(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		value, err := GenerateRandomString(32)
		if err != nil {
			t.Fatalf("failed to generate a random string: %s", err)
		}
		if len(value) != 32 {
			t.Errorf("expected a string of length 32, got %v", len(value))
		}
		if seen[value] {
			t.Errorf("expected generated strings to be unique, got a duplicate '%s'", value)
		}
		seen[value] = true
	}
}
