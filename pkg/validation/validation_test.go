package validation

import (
	"errors"
	"fmt"
	"testing"
)

type signup struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
	Confirm  string `form:"password_confirm" validate:"required,eqfield=Password"`
	Nickname string `validate:"max=5"`
}

func TestValidateOK(t *testing.T) {
	err := Validate(signup{Email: "a@b.co", Password: "longenough", Confirm: "longenough"})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	err := Validate(signup{Email: "nope", Password: "short", Confirm: "other", Nickname: "toolong"})

	ve, ok := As(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}

	want := map[string]string{
		"email":            "Enter a valid email address.",
		"password":         "Ensure this value has at least 8 characters.",
		"password_confirm": "The two password fields didn't match.",
		"Nickname":         "Ensure this value has at most 5 characters.",
	}
	if len(ve.Fields) != len(want) {
		t.Fatalf("expected %d field errors, got %+v", len(want), ve.Fields)
	}
	for field, msg := range want {
		got := ve.For(field)
		if len(got) != 1 || got[0] != msg {
			t.Fatalf("field %s: expected %q, got %v", field, msg, got)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	ve, ok := As(Validate(signup{}))
	if !ok {
		t.Fatal("expected validation error")
	}
	if got := ve.For("email"); len(got) != 1 || got[0] != MsgRequired {
		t.Fatalf("expected required message, got %v", got)
	}
}

func TestValidateMaxBytes(t *testing.T) {
	type secret struct {
		Password string `form:"password" validate:"maxbytes=4"`
	}

	if err := Validate(secret{Password: "abcd"}); err != nil {
		t.Fatalf("4 bytes: expected nil, got %v", err)
	}

	// Three characters, six bytes.
	ve, ok := As(Validate(secret{Password: "ééé"}))
	if !ok {
		t.Fatal("expected validation error")
	}
	if got := ve.For("password"); len(got) != 1 || got[0] != "Ensure this value has at most 4 bytes." {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("checkout: %w", Field("city", MsgRequired))
	ve, ok := As(err)
	if !ok || ve.For("city")[0] != MsgRequired {
		t.Fatalf("expected wrapped field error, got %v", err)
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Fatal("plain error is not a validation error")
	}
	var nilErr *Error
	if nilErr.For("x") != nil {
		t.Fatal("nil error has no fields")
	}
}
