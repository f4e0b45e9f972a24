package machine

import "errors"

// Validation errors for a machine request.
var (
	ErrNameRequired  = errors.New("machine name is required")
	ErrNameInvalid   = errors.New("machine name may only contain letters, digits, dots and hyphens")
	ErrImageRequired = errors.New("an image must be selected")
	ErrSizeRequired  = errors.New("a size must be selected")
	ErrUnknownImage  = errors.New("selected image is not in the image catalog")
	ErrUnknownSize   = errors.New("selected size is not in the size catalog")
)

// ErrCatalogNotReady is returned while a catalog the form depends on has
// not completed its first fetch. The whole form is unavailable, not a
// single field.
var ErrCatalogNotReady = errors.New("catalog not ready")
