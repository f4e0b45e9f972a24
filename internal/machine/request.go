// Package machine holds the in-progress machine creation request and the
// rules that keep it consistent with the tenancy's capabilities.
package machine

// Capabilities are the tenancy-scoped feature flags the form branches on.
// The form never changes them.
type Capabilities struct {
	SupportsApps bool `json:"supports_apps" yaml:"supports_apps"`
}

// Request is the machine creation request being assembled.
type Request struct {
	Name              string
	ImageID           string
	SizeID            string
	WebConsoleEnabled bool
	DesktopEnabled    bool
}

// Payload is the fixed-shape request handed to the creation action.
// The JSON names are the wire contract of the create call.
type Payload struct {
	Name              string `json:"name"`
	ImageID           string `json:"image_id"`
	SizeID            string `json:"size_id"`
	WebConsoleEnabled bool   `json:"web_console_enabled"`
	DesktopEnabled    bool   `json:"desktop_enabled"`
}

// Visibility reports which optional fields are offered.
type Visibility struct {
	WebConsole bool
	Desktop    bool
}
