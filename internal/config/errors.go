package config

import "errors"

// Validation errors.
var (
	ErrTokenRequired     = errors.New("HCLOUD_TOKEN is required")
	ErrProxyHostRequired = errors.New("apps.proxy_sshd_host is required when apps are enabled")
	ErrInvalidPort       = errors.New("apps.proxy_sshd_port must be between 1 and 65535")
	ErrInvalidScriptURL  = errors.New("apps.post_deploy_script_url must be an http or https URL")
	ErrRSAMinBitsTooLow  = errors.New("ssh.rsa_min_bits must be at least 2048")
	ErrUnknownKeyType    = errors.New("unknown SSH key type")
	ErrInvalidLocation   = errors.New("invalid location")
)

// ErrConfigNotFound is returned by FindConfigFile when no file exists.
var ErrConfigNotFound = errors.New("config file not found")
