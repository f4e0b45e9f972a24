package portal

import "errors"

var (
	// ErrKeyNotFound is returned when the user has no registered SSH key.
	ErrKeyNotFound = errors.New("ssh key not registered")

	// ErrKeyInUse is returned when the public key is already registered
	// under another name in the tenancy.
	ErrKeyInUse = errors.New("ssh key is already registered under another name")

	// ErrWebConsoleUnavailable is returned when a request enables the web
	// console or desktop in a tenancy without apps support.
	ErrWebConsoleUnavailable = errors.New("web console is not available in this tenancy")
)
