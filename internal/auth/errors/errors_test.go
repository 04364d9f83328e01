package errors

import "testing"

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}

	if !IsInvalidToken(ErrInvalidToken) {
		t.Fatal("expected invalid token")
	}
	if IsInvalidToken(ErrInvalidCredentials) {
		t.Fatal("credentials must not match token")
	}
	if !IsTooManyAttempts(ErrTooManyAttempts) {
		t.Fatal("expected too many attempts")
	}
}
