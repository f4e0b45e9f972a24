package wizard

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

var tenancyRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// runIdentityGroup prompts for the tenancy, the username and the location.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tenancy").
				Description("Name of the Hetzner Cloud project, used to label machines").
				Placeholder("acme").
				Value(&result.Tenancy).
				Validate(validateTenancy),
			huh.NewInput().
				Title("Username").
				Description("Owner of the SSH key and of created machines").
				Value(&result.Username),
			huh.NewSelect[string]().
				Title("Location").
				Description("Hetzner Cloud datacenter for new machines").
				Options(LocationsToOptions()...).
				Value(&result.Location),
		).Title("Tenancy"),
	).RunWithContext(ctx)
}

// runAppsGroup asks whether machines may enable the web console.
func runAppsGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable web console").
				Description("Offer a browser console and desktop on new machines").
				Value(&result.AppsEnabled),
		).Title("Web Console"),
	).RunWithContext(ctx)
}

// runProxyGroup prompts for the SSH proxy and post-deploy script.
func runProxyGroup(ctx context.Context, result *WizardResult) error {
	port := strconv.Itoa(result.ProxySSHDPort)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Proxy SSHD host").
				Placeholder("proxy.example.com").
				Value(&result.ProxySSHDHost).
				Validate(validateProxyHost),
			huh.NewInput().
				Title("Proxy SSHD port").
				Value(&port).
				Validate(validatePort),
			huh.NewInput().
				Title("Post-deploy script URL").
				Description("Installs the console agent on new machines").
				Placeholder("https://example.com/post-deploy.sh").
				Value(&result.PostDeployScriptURL).
				Validate(validateScriptURL),
		).Title("Web Console Proxy"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.ProxySSHDPort, err = parsePort(port)
	return err
}

// runSSHPolicyGroup prompts for the SSH key policy.
func runSSHPolicyGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Allow key registration").
				Description("Let users paste or generate their SSH key from the portal").
				Value(&result.CanUpdateKeys),
			huh.NewSelect[int]().
				Title("Minimum RSA key size").
				Options(RSAMinBitsToOptions()...).
				Value(&result.RSAMinBits),
		).Title("SSH Keys"),
	).RunWithContext(ctx)
}

func validateTenancy(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errTenancyRequired
	}
	if !tenancyRegex.MatchString(s) {
		return errTenancyInvalid
	}
	return nil
}

func validateProxyHost(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " /") {
		return errProxyHostInvalid
	}
	return nil
}

func validatePort(s string) error {
	_, err := parsePort(s)
	return err
}

// parsePort reads a TCP port, ignoring surrounding whitespace.
func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return 0, errPortInvalid
	}
	return port, nil
}

// validateScriptURL accepts an empty value; apps then stay unsupported.
func validateScriptURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errURLInvalid
	}
	return nil
}
