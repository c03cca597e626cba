package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: bad flag", ErrConfiguration), "configuration"},
		{ErrUnknownSource, "configuration"},
		{ErrImportLocked, "configuration"},
		{fmt.Errorf("%w: open failed", ErrSourceIO), "io"},
		{NewRowError("a,b,c", errors.New("short row")), "data"},
		{fmt.Errorf("%w: tx failed", ErrStore), "store"},
		{errors.New("who knows"), "internal"},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRowErrorCarriesRaw(t *testing.T) {
	cause := errors.New("bad date")
	err := NewRowError("12345,CS,2413", cause)

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatal("errors.As failed")
	}
	if rowErr.Raw != "12345,CS,2413" {
		t.Errorf("Raw = %q", rowErr.Raw)
	}
	if !errors.Is(err, ErrData) {
		t.Error("RowError does not unwrap to the data class")
	}
	if !errors.Is(err, cause) {
		t.Error("RowError does not unwrap to its cause")
	}
}
