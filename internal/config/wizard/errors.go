package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errTenancyRequired  = errors.New("tenancy name is required")
	errTenancyInvalid   = errors.New("tenancy name may only contain letters, digits, dots, dashes and underscores")
	errProxyHostInvalid = errors.New("proxy host must not contain spaces or a scheme")
	errPortInvalid      = errors.New("port must be a number between 1 and 65535")
	errURLInvalid       = errors.New("script URL must start with http:// or https://")
)
