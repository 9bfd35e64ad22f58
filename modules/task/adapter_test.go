package task

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "not found survives wrapping",
			in:   fmt.Errorf("service call failed: %s", ErrNotFound),
			want: ErrNotFound,
		},
		{
			name: "ownership failure survives wrapping",
			in:   fmt.Errorf("service call failed: %s", ErrNotOwner),
			want: ErrNotOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapServiceError(tt.in)
			if !errors.Is(got, tt.want) {
				t.Errorf("mapServiceError() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("required-field message becomes ValidationError", func(t *testing.T) {
		got := mapServiceError(fmt.Errorf("service call failed: title is required"))
		var ve *ValidationError
		if !errors.As(got, &ve) {
			t.Fatalf("expected ValidationError, got %v", got)
		}
		if ve.Field != "title" {
			t.Errorf("expected field title, got %q", ve.Field)
		}
	})

	t.Run("status message becomes ValidationError", func(t *testing.T) {
		got := mapServiceError(errors.New(invalidStatus("archived").Error()))
		var ve *ValidationError
		if !errors.As(got, &ve) {
			t.Fatalf("expected ValidationError, got %v", got)
		}
		if ve.Field != "status" {
			t.Errorf("expected field status, got %q", ve.Field)
		}
	})

	// The status value is caller-controlled and echoed into the
	// validation message; a value spelling out a sentinel text must not
	// reclassify the error.
	t.Run("status echoing sentinel text stays a ValidationError", func(t *testing.T) {
		for _, value := range []string{ErrNotFound.Error(), ErrNotOwner.Error()} {
			got := mapServiceError(fmt.Errorf("service call failed: %s", invalidStatus(value)))
			if errors.Is(got, ErrNotFound) || errors.Is(got, ErrNotOwner) {
				t.Fatalf("status %q misclassified as %v", value, got)
			}
			var ve *ValidationError
			if !errors.As(got, &ve) {
				t.Fatalf("status %q: expected ValidationError, got %v", value, got)
			}
			if ve.Field != "status" {
				t.Errorf("status %q: expected field status, got %q", value, ve.Field)
			}
			if !strings.Contains(ve.Reason, "must be") {
				t.Errorf("status %q: reason lost its shape: %q", value, ve.Reason)
			}
		}
	})

	t.Run("anything else is a store failure", func(t *testing.T) {
		got := mapServiceError(errors.New("connection reset"))
		if !errors.Is(got, ErrStore) {
			t.Errorf("expected ErrStore, got %v", got)
		}
	})
}
