package config

import (
	"testing"
	"time"
)

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, head ,POST")
	for _, want := range []string{"GET", "HEAD", "POST"} {
		if !m[want] {
			t.Errorf("parseMethods missing %s: %v", want, m)
		}
	}
	if len(m) != 3 {
		t.Errorf("parseMethods produced %d entries, want 3", len(m))
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("GIGBOOK_TEST_BOOL", "yes")
	if !envBool("GIGBOOK_TEST_BOOL", false) {
		t.Error(`envBool("yes") = false, want true`)
	}
	t.Setenv("GIGBOOK_TEST_BOOL", "garbage")
	if envBool("GIGBOOK_TEST_BOOL", false) {
		t.Error("envBool with garbage should fall back to default")
	}

	t.Setenv("GIGBOOK_TEST_DUR", "90s")
	if got := envDur("GIGBOOK_TEST_DUR", time.Second); got != 90*time.Second {
		t.Errorf("envDur = %v, want 90s", got)
	}

	t.Setenv("GIGBOOK_TEST_INT", "7")
	if got := envInt("GIGBOOK_TEST_INT", 1); got != 7 {
		t.Errorf("envInt = %d, want 7", got)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity < 1 || cfg.RefillTokens < 1 {
		t.Errorf("clamping failed: %+v", cfg)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("TTL %v below minimum %v", cfg.TTL, 5*cfg.RefillInterval)
	}
}
