// Package testing provides test utilities, builders, and fixtures shared by
// the portal's unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - PortalFixture: Pre-configured mock Hetzner client for common scenarios
//   - MockKeyUpdater: Shared testify mock for SSH key registration
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithTenancy("acme").
//	    WithApps("proxy.example.com", 22, "https://example.com/setup.sh").
//	    Build()
//
//	mock := testing.NewPortalFixture().WithKey(testing.SamplePublicKey).Ready()
package testing
