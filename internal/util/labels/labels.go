package labels

import (
	"regexp"
	"strconv"
	"strings"
)

// Label keys for portal-created servers.
const (
	KeyTenancy    = "vmportal.io/tenancy"
	KeyUser       = "vmportal.io/user"
	KeyManagedBy  = "vmportal.io/managed-by"
	KeyRequestID  = "vmportal.io/request-id"
	KeyWebConsole = "vmportal.io/web-console-enabled"
	KeyDesktop    = "vmportal.io/desktop-enabled"
	KeyProxyHost  = "vmportal.io/proxy-sshd-host"
	KeyProxyPort  = "vmportal.io/proxy-sshd-port"
)

// ManagedByPortal is the value of KeyManagedBy.
const ManagedByPortal = "vmportal"

const maxValueLength = 63

var invalidValueChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// LabelBuilder provides a fluent interface for building server labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a builder with the tenancy and manager preset.
func NewLabelBuilder(tenancy string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyTenancy:   SanitizeValue(tenancy),
			KeyManagedBy: ManagedByPortal,
		},
	}
}

// WithUser records the user who requested the machine.
func (lb *LabelBuilder) WithUser(user string) *LabelBuilder {
	lb.labels[KeyUser] = SanitizeValue(user)
	return lb
}

// WithRequestID records the id correlating the request with log lines.
func (lb *LabelBuilder) WithRequestID(id string) *LabelBuilder {
	lb.labels[KeyRequestID] = SanitizeValue(id)
	return lb
}

// WithWebConsole marks the machine for the web console agent. The desktop
// flag is always written next to it as 0 or 1.
func (lb *LabelBuilder) WithWebConsole(desktop bool) *LabelBuilder {
	lb.labels[KeyWebConsole] = "1"
	lb.labels[KeyDesktop] = boolValue(desktop)
	return lb
}

// WithProxy records the SSH proxy the console tunnels through. An empty
// host is skipped.
func (lb *LabelBuilder) WithProxy(host string, port int) *LabelBuilder {
	if host == "" {
		return lb
	}
	lb.labels[KeyProxyHost] = SanitizeValue(host)
	if port > 0 {
		lb.labels[KeyProxyPort] = strconv.Itoa(port)
	}
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// SelectorForTenancy returns a label selector for all portal servers of a tenancy.
func SelectorForTenancy(tenancy string) string {
	return KeyTenancy + "=" + SanitizeValue(tenancy)
}

// SanitizeValue makes s a valid Hetzner label value: at most 63 characters
// of letters, digits, dots, dashes and underscores, starting and ending
// with an alphanumeric character.
func SanitizeValue(s string) string {
	s = invalidValueChars.ReplaceAllString(s, "-")
	if len(s) > maxValueLength {
		s = s[:maxValueLength]
	}
	return strings.Trim(s, "._-")
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
