package config

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
)

// ValidLocations contains all valid Hetzner Cloud datacenter locations.
// https://docs.hetzner.com/cloud/general/locations/
var ValidLocations = map[string]bool{
	"nbg1": true, // Nuremberg, Germany
	"fsn1": true, // Falkenstein, Germany
	"hel1": true, // Helsinki, Finland
	"ash":  true, // Ashburn, USA
	"hil":  true, // Hillsboro, USA
	"sin":  true, // Singapore
}

// minRSABits is the smallest rsa_min_bits a tenancy may configure.
const minRSABits = 2048

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.HCloudToken == "" {
		return ErrTokenRequired
	}
	if c.Location != "" && !ValidLocations[c.Location] {
		return fmt.Errorf("%w %q: must be one of %v", ErrInvalidLocation, c.Location, getMapKeys(ValidLocations))
	}
	if err := c.validateApps(); err != nil {
		return fmt.Errorf("apps validation failed: %w", err)
	}
	if err := c.validateSSH(); err != nil {
		return fmt.Errorf("ssh validation failed: %w", err)
	}
	return nil
}

func (c *Config) validateApps() error {
	if !c.Apps.Enabled {
		return nil
	}
	if c.Apps.ProxySSHDHost == "" {
		return ErrProxyHostRequired
	}
	if c.Apps.ProxySSHDPort < 1 || c.Apps.ProxySSHDPort > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Apps.ProxySSHDPort)
	}
	if c.Apps.PostDeployScriptURL != "" {
		u, err := url.Parse(c.Apps.PostDeployScriptURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidScriptURL, c.Apps.PostDeployScriptURL)
		}
	}
	return nil
}

func (c *Config) validateSSH() error {
	if c.SSH.RSAMinBits < minRSABits {
		return fmt.Errorf("%w: got %d", ErrRSAMinBitsTooLow, c.SSH.RSAMinBits)
	}
	for _, kt := range c.SSH.AllowedKeyTypes {
		if !slices.Contains(DefaultAllowedKeyTypes, kt) {
			return fmt.Errorf("%w %q: must be one of %v", ErrUnknownKeyType, kt, DefaultAllowedKeyTypes)
		}
	}
	return nil
}

// getMapKeys returns the sorted keys of a map for error messages.
func getMapKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
