package domain

import (
	"errors"
	"testing"
)

func TestValidationErrors_ErrorIsSorted(t *testing.T) {
	v := ValidationErrors{}
	v.Add("price", "Enter a whole number.")
	v.Add("name", "This field is required.")
	v.Add("name", "ignored")

	want := "name: This field is required.; price: Enter a whole number."
	if got := v.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestValidationErrors_OrNil(t *testing.T) {
	if err := (ValidationErrors{}).OrNil(); err != nil {
		t.Fatalf("expected nil for empty set, got %v", err)
	}

	err := ValidationErrors{"name": "required"}.OrNil()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if verrs["name"] != "required" {
		t.Fatalf("unexpected message: %v", verrs)
	}
}

func TestProduct_OwnedBy(t *testing.T) {
	p := &Product{UserID: "u1"}
	if !p.OwnedBy("u1") {
		t.Fatalf("expected owner match")
	}
	if p.OwnedBy("u2") || p.OwnedBy("") {
		t.Fatalf("expected no match for other or empty owner")
	}
}
