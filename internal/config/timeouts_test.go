package config

import (
	"testing"
	"time"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	for _, env := range []string{
		"VMPORTAL_TIMEOUT_CATALOG",
		"VMPORTAL_TIMEOUT_CREATE",
		"VMPORTAL_TIMEOUT_DELETE",
		"VMPORTAL_RETRY_MAX_ATTEMPTS",
		"VMPORTAL_RETRY_INITIAL_DELAY",
	} {
		t.Setenv(env, "")
	}

	timeouts := LoadTimeouts()

	if timeouts.Catalog != 30*time.Second {
		t.Errorf("Expected Catalog default 30s, got %v", timeouts.Catalog)
	}
	if timeouts.Create != 5*time.Minute {
		t.Errorf("Expected Create default 5m, got %v", timeouts.Create)
	}
	if timeouts.Delete != time.Minute {
		t.Errorf("Expected Delete default 1m, got %v", timeouts.Delete)
	}
	if timeouts.RetryMaxAttempts != 3 {
		t.Errorf("Expected RetryMaxAttempts default 3, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != time.Second {
		t.Errorf("Expected RetryInitialDelay default 1s, got %v", timeouts.RetryInitialDelay)
	}
}

func TestLoadTimeouts_FromEnv(t *testing.T) {
	t.Setenv("VMPORTAL_TIMEOUT_CATALOG", "5s")
	t.Setenv("VMPORTAL_TIMEOUT_CREATE", "2m")
	t.Setenv("VMPORTAL_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("VMPORTAL_RETRY_INITIAL_DELAY", "250ms")

	timeouts := LoadTimeouts()

	if timeouts.Catalog != 5*time.Second {
		t.Errorf("Expected Catalog 5s, got %v", timeouts.Catalog)
	}
	if timeouts.Create != 2*time.Minute {
		t.Errorf("Expected Create 2m, got %v", timeouts.Create)
	}
	if timeouts.RetryMaxAttempts != 7 {
		t.Errorf("Expected RetryMaxAttempts 7, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != 250*time.Millisecond {
		t.Errorf("Expected RetryInitialDelay 250ms, got %v", timeouts.RetryInitialDelay)
	}
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("VMPORTAL_TIMEOUT_CATALOG", "soon")
	t.Setenv("VMPORTAL_TIMEOUT_CREATE", "-1m")
	t.Setenv("VMPORTAL_RETRY_MAX_ATTEMPTS", "many")

	timeouts := LoadTimeouts()

	if timeouts.Catalog != 30*time.Second {
		t.Errorf("Expected Catalog fallback 30s, got %v", timeouts.Catalog)
	}
	if timeouts.Create != 5*time.Minute {
		t.Errorf("Expected Create fallback 5m, got %v", timeouts.Create)
	}
	if timeouts.RetryMaxAttempts != 3 {
		t.Errorf("Expected RetryMaxAttempts fallback 3, got %d", timeouts.RetryMaxAttempts)
	}
}
