package apiclient

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorHierarchy(t *testing.T) {
	authErr := newAuthenticationError()
	authzErr := newAuthorizationError()
	apiErr := &APIError{Message: "API failed", Status: 500}

	var base *APIError
	if !errors.As(authErr, &base) {
		t.Fatal("AuthenticationError should unwrap to APIError")
	}
	if base.Status != 401 {
		t.Errorf("status = %d, want 401", base.Status)
	}
	if authErr.Error() != MsgAuthenticationRequired {
		t.Errorf("message = %q, want %q", authErr.Error(), MsgAuthenticationRequired)
	}

	base = nil
	if !errors.As(authzErr, &base) {
		t.Fatal("AuthorizationError should unwrap to APIError")
	}
	if base.Status != 403 {
		t.Errorf("status = %d, want 403", base.Status)
	}
	if authzErr.Error() != MsgAccessDenied {
		t.Errorf("message = %q, want %q", authzErr.Error(), MsgAccessDenied)
	}

	if apiErr.Status != 500 {
		t.Errorf("status = %d, want 500", apiErr.Status)
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("call failed: %w", newAuthenticationError())
	if !IsAuthentication(wrapped) {
		t.Error("IsAuthentication should see through wrapping")
	}
	if IsAuthorization(wrapped) {
		t.Error("a 401 is not an authorization failure")
	}

	if IsAuthentication(newAuthorizationError()) {
		t.Error("a 403 is not an authentication failure")
	}
	if !IsAuthorization(newAuthorizationError()) {
		t.Error("IsAuthorization should match AuthorizationError")
	}

	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Error("AsAPIError should reject foreign errors")
	}
	if _, ok := AsAPIError(newAuthenticationError()); !ok {
		t.Error("AsAPIError should accept the whole taxonomy")
	}
}

func TestIsMemberConflict(t *testing.T) {
	conflict := &APIError{Message: "Some attendees are already in other groups", Status: 400}
	if !IsMemberConflict(conflict) {
		t.Error("conflict message should be recognized")
	}
	if IsMemberConflict(&APIError{Message: "group not found", Status: 404}) {
		t.Error("generic failure should not read as a conflict")
	}
	if IsMemberConflict(errors.New("already in other groups")) {
		t.Error("non-API errors should not match")
	}
}
