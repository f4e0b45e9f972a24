package machine

import (
	"errors"
	"fmt"
	"regexp"
)

// nameRegex validates machine names: one or more letters, digits, dots or hyphens.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)

// Catalog is the read-only view of a resource catalog the form validates against.
type Catalog interface {
	Initialised() bool
	Contains(id string) bool
}

// Form owns one Request for the lifetime of a dialog opening.
//
// Visibility and consistency are derived on every call: the desktop option
// is only offered, and only true, while the web console is enabled, and the
// web console only while the tenancy supports apps.
type Form struct {
	caps Capabilities
	req  Request
}

// NewForm returns a form at defaults.
func NewForm(caps Capabilities) *Form {
	return &Form{caps: caps}
}

// Capabilities returns the capability snapshot the form was opened with.
func (f *Form) Capabilities() Capabilities { return f.caps }

// Request returns a copy of the current request.
func (f *Form) Request() Request { return f.req }

// Visibility returns which optional fields are currently offered.
func (f *Form) Visibility() Visibility {
	return Visibility{
		WebConsole: f.caps.SupportsApps,
		Desktop:    f.caps.SupportsApps && f.req.WebConsoleEnabled,
	}
}

// SetName sets the machine name.
func (f *Form) SetName(name string) { f.req.Name = name }

// SetImage sets the selected image id.
func (f *Form) SetImage(id string) { f.req.ImageID = id }

// SetSize sets the selected size id.
func (f *Form) SetSize(id string) { f.req.SizeID = id }

// SetWebConsoleEnabled toggles the web console. Disabling it clears the
// desktop option in the same step. It is ignored when the field is hidden.
func (f *Form) SetWebConsoleEnabled(enabled bool) {
	if !f.Visibility().WebConsole {
		return
	}
	f.req.WebConsoleEnabled = enabled
	if !enabled {
		f.req.DesktopEnabled = false
	}
}

// SetDesktopEnabled toggles the desktop. It is ignored when the field is hidden.
func (f *Form) SetDesktopEnabled(enabled bool) {
	if !f.Visibility().Desktop {
		return
	}
	f.req.DesktopEnabled = enabled
}

// Reset restores every field to its default.
func (f *Form) Reset() {
	f.req = Request{}
}

// IsDefault reports whether every field is at its default.
func (f *Form) IsDefault() bool {
	return f.req == Request{}
}

// ValidateName checks the name on its own, for field-level feedback.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if !nameRegex.MatchString(name) {
		return ErrNameInvalid
	}
	return nil
}

// Ready reports whether both catalogs have completed their first fetch.
func Ready(images, sizes Catalog) bool {
	return images != nil && sizes != nil && images.Initialised() && sizes.Initialised()
}

// Validate reports whether the request may be submitted. While a catalog
// is not ready it returns ErrCatalogNotReady alone; otherwise it joins
// every field error.
func (f *Form) Validate(images, sizes Catalog) error {
	if images == nil || !images.Initialised() {
		return fmt.Errorf("%w: images", ErrCatalogNotReady)
	}
	if sizes == nil || !sizes.Initialised() {
		return fmt.Errorf("%w: sizes", ErrCatalogNotReady)
	}

	var errs []error
	if err := ValidateName(f.req.Name); err != nil {
		errs = append(errs, err)
	}
	switch {
	case f.req.ImageID == "":
		errs = append(errs, ErrImageRequired)
	case !images.Contains(f.req.ImageID):
		errs = append(errs, ErrUnknownImage)
	}
	switch {
	case f.req.SizeID == "":
		errs = append(errs, ErrSizeRequired)
	case !sizes.Contains(f.req.SizeID):
		errs = append(errs, ErrUnknownSize)
	}
	return errors.Join(errs...)
}

// Payload copies the request into the wire payload. Hidden options are
// always sent as false.
func (f *Form) Payload() Payload {
	vis := f.Visibility()
	return Payload{
		Name:              f.req.Name,
		ImageID:           f.req.ImageID,
		SizeID:            f.req.SizeID,
		WebConsoleEnabled: vis.WebConsole && f.req.WebConsoleEnabled,
		DesktopEnabled:    vis.Desktop && f.req.DesktopEnabled,
	}
}
