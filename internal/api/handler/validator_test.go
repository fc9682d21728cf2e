package handler

import (
	"errors"
	"testing"

	"github.com/kki/product-catalog/internal/core/domain"
)

func TestValidator_KeysByFormName(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&productForm{Name: "", Price: "12.5", Description: "d"})

	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if verrs["name"] != "This field is required." {
		t.Fatalf("unexpected name error: %q", verrs["name"])
	}
	if verrs["price"] != "Enter a whole number." {
		t.Fatalf("unexpected price error: %q", verrs["price"])
	}
	if _, ok := verrs["description"]; ok {
		t.Fatalf("description should be valid")
	}
}

func TestValidator_ValidForms(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&productForm{Name: "Lamp", Price: "-3", Description: "d"}); err != nil {
		t.Fatalf("expected valid product form, got %v", err)
	}
	if err := v.Validate(&registerForm{Username: "a.b+c@d-e_f", Password1: "s3cure-pass", Password2: "s3cure-pass"}); err != nil {
		t.Fatalf("expected valid register form, got %v", err)
	}
}

func TestValidator_PasswordMismatch(t *testing.T) {
	err := NewValidator().Validate(&registerForm{Username: "alice", Password1: "s3cure-pass", Password2: "s3cure-pasz"})

	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) || verrs["password2"] == "" {
		t.Fatalf("expected password2 error, got %v", err)
	}
}

func TestValidator_PriceBounds(t *testing.T) {
	cases := []struct {
		price string
		want  string
	}{
		{"3000000000", "Ensure this value is less than or equal to 2147483647."},
		{"99999999999999999999", "Ensure this value is less than or equal to 2147483647."},
		{"-2147483649", "Ensure this value is greater than or equal to -2147483648."},
		{"2147483647", ""},
		{"-2147483648", ""},
	}

	v := NewValidator()
	for _, tc := range cases {
		err := v.Validate(&productForm{Name: "n", Price: tc.price, Description: "d"})

		var verrs domain.ValidationErrors
		errors.As(err, &verrs)
		if got := verrs["price"]; got != tc.want {
			t.Fatalf("price %s: got %q, want %q", tc.price, got, tc.want)
		}
	}
}

func TestValidator_UnicodeUsername(t *testing.T) {
	v := NewValidator()

	for _, name := range []string{"José", "Zoë_99", "用户.name"} {
		if err := v.Validate(&registerForm{Username: name, Password1: "s3cure-pass", Password2: "s3cure-pass"}); err != nil {
			t.Fatalf("expected %q to be a valid username, got %v", name, err)
		}
	}
	if err := v.Validate(&registerForm{Username: "bad name", Password1: "s3cure-pass", Password2: "s3cure-pass"}); err == nil {
		t.Fatalf("expected whitespace to be rejected")
	}
}
