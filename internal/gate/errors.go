package gate

import "errors"

// Public key validation errors.
var (
	ErrKeyEmpty          = errors.New("public key is empty")
	ErrKeyMalformed      = errors.New("public key is not a valid OpenSSH authorized key")
	ErrKeyTypeNotAllowed = errors.New("public key type is not allowed")
	ErrKeyTooShort       = errors.New("RSA public key is too short")
)

// ErrKeyUpdateUnsupported is returned by RunSetup when the tenancy does not
// let users register keys from the portal.
var ErrKeyUpdateUnsupported = errors.New("SSH key updates are not supported for this tenancy")
