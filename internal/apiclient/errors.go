package apiclient

import (
	"errors"
	"strings"
)

// Messages fixed by the backend contract.
const (
	MsgAuthenticationRequired = "Authentication required"
	MsgAccessDenied           = "Access denied - user not on allowlist"
	MsgNetworkError           = "Network error occurred"

	// Substring the backend puts in its rejection when a member update
	// would move an attendee into a second group.
	msgMemberConflict = "already in other groups"
)

// APIError is the base error for every failed call. Status 0 means the
// request never produced an HTTP response (transport failure, bad response
// body). Body carries the decoded error payload when there was one.
type APIError struct {
	Message string
	Status  int
	Body    any
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthenticationError is raised for HTTP 401: the caller should prompt for
// a fresh sign-in.
type AuthenticationError struct {
	APIError
}

func (e *AuthenticationError) Unwrap() error {
	return &e.APIError
}

func newAuthenticationError() *AuthenticationError {
	return &AuthenticationError{APIError{Message: MsgAuthenticationRequired, Status: 401}}
}

// AuthorizationError is raised for HTTP 403: the identity is valid but not
// on the admin allowlist.
type AuthorizationError struct {
	APIError
}

func (e *AuthorizationError) Unwrap() error {
	return &e.APIError
}

func newAuthorizationError() *AuthorizationError {
	return &AuthorizationError{APIError{Message: MsgAccessDenied, Status: 403}}
}

// IsAuthentication reports whether err is a 401 classification.
func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// IsAuthorization reports whether err is a 403 classification.
func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

// AsAPIError extracts the APIError from any error produced by this package.
func AsAPIError(err error) (*APIError, bool) {
	var target *APIError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsMemberConflict reports whether err is the backend's rejection of a
// member update that would place an attendee in more than one group.
func IsMemberConflict(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && strings.Contains(apiErr.Message, msgMemberConflict)
}
