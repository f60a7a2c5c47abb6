package apperror

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeHedgeExhausted, WithContext("BULL"))

	if err.Code != CodeHedgeExhausted {
		t.Errorf("code = %s, want %s", err.Code, CodeHedgeExhausted)
	}
	if err.Context != "BULL" {
		t.Errorf("context = %q, want BULL", err.Context)
	}
	if err.Message == "" {
		t.Error("message should never be empty")
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("connection refused")
	wrapped := Wrap(base, CodeVenueUnavailable, "get /securities")

	if GetCode(wrapped) != CodeVenueUnavailable {
		t.Errorf("code = %s, want %s", GetCode(wrapped), CodeVenueUnavailable)
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to its cause")
	}

	// Wrapping an AppError keeps the original code.
	rewrapped := Wrap(wrapped, CodeInternalError, "")
	if GetCode(rewrapped) != CodeVenueUnavailable {
		t.Errorf("rewrapped code = %s, want original %s", GetCode(rewrapped), CodeVenueUnavailable)
	}

	if Wrap(nil, CodeInternalError, "") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != CodeUnknownError {
		t.Errorf("GetCode(plain error) = %s, want %s", got, CodeUnknownError)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{CodeVenueTimeout, true},
		{CodeVenueUnavailable, true},
		{CodeCircuitOpen, true},
		{CodeRateLimitExceeded, true},
		{CodeOrderRejected, false},
		{CodeHedgeExhausted, false},
		{CodeLimitBreach, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := IsTransient(New(tt.code)); got != tt.want {
				t.Errorf("IsTransient(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
