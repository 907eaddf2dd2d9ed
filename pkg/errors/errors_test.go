package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidQuery, "unexpected token: %s", "&&")

	if err.Code != ErrCodeInvalidQuery {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidQuery)
	}

	if err.Message != "unexpected token: &&" {
		t.Errorf("Message = %v, want %v", err.Message, "unexpected token: &&")
	}

	expected := "INVALID_QUERY: unexpected token: &&"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeStorage, cause, "load graph %q", "main")

	if err.Code != ErrCodeStorage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorage)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"MatchingCode", New(ErrCodeLookup, "id 7 unassigned"), ErrCodeLookup, true},
		{"DifferentCode", New(ErrCodeLookup, "id 7 unassigned"), ErrCodeStorage, false},
		{"WrappedMatch", fmt.Errorf("outer: %w", New(ErrCodeStorage, "disk gone")), ErrCodeStorage, true},
		{"PlainError", errors.New("plain"), ErrCodeLookup, false},
		{"Nil", nil, ErrCodeLookup, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeGraphNotFound, "no such graph")); got != ErrCodeGraphNotFound {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeGraphNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeLookup, "id 7 unassigned")); got != "id 7 unassigned" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %q", got)
	}
}
