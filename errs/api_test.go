package errs

import (
	"errors"
	"testing"
)

func TestSharedValuesMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"unauthorized", Unauthorized, ErrUnauthorized},
		{"not authenticated", NotAuthenticated, ErrNotAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
		})
	}

	if !IsUnauthorized(Unauthorized) {
		t.Error("IsUnauthorized(Unauthorized) = false")
	}
}
