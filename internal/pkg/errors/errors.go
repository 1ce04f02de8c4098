package errors

import "errors"

var (
	// ErrNotAuthenticated means no identity is attached to the call. It is an
	// expected outcome of a session check, not a provider failure.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrProviderUnavailable means the authentication provider could not be
	// reached; callers may retry instead of redirecting to login.
	ErrProviderUnavailable = errors.New("auth provider unavailable")
	// ErrInvalidCredentials covers a wrong email/credential pair at sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyExists marks a duplicate insert. The identity provisioner
	// treats it as success.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUploadFailed wraps object-store write failures.
	ErrUploadFailed = errors.New("upload failed")
	// ErrAddressResolutionFailed means an object was written but no public
	// address could be resolved for it.
	ErrAddressResolutionFailed = errors.New("address resolution failed")
	// ErrRegistrationFailed wraps row-store insert failures for photo records.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrNotFound is the generic sentinel for missing rows.
	ErrNotFound = errors.New("not found")
	// ErrTimedOut maps a stage deadline to the shared failure shape.
	ErrTimedOut = errors.New("timed out")
	// ErrPermissionDenied covers acting on rows the caller does not own.
	ErrPermissionDenied = errors.New("permission denied")
)
