package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("PLANEWAR_TEST_STR", "hello")
	if got := GetEnv("PLANEWAR_TEST_STR", "x"); got != "hello" {
		t.Errorf("GetEnv = %q, want hello", got)
	}
	if got := GetEnv("PLANEWAR_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv unset = %q, want fallback", got)
	}
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("PLANEWAR_TEST_INT", "42")
	t.Setenv("PLANEWAR_TEST_BADINT", "forty")
	t.Setenv("PLANEWAR_TEST_BOOL", "true")
	t.Setenv("PLANEWAR_TEST_SECS", "90")
	t.Setenv("PLANEWAR_TEST_DUR", "2m")
	t.Setenv("PLANEWAR_TEST_BADDUR", "soon")

	if got := GetEnvInt("PLANEWAR_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("PLANEWAR_TEST_BADINT", 7); got != 7 {
		t.Errorf("GetEnvInt bad = %d, want fallback 7", got)
	}
	if got := GetEnvInt64("PLANEWAR_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt64 = %d, want 42", got)
	}
	if got := GetEnvBool("PLANEWAR_TEST_BOOL", false); !got {
		t.Error("GetEnvBool = false, want true")
	}
	if got := GetEnvDuration("PLANEWAR_TEST_SECS", time.Second); got != 90*time.Second {
		t.Errorf("GetEnvDuration secs = %v, want 90s", got)
	}
	if got := GetEnvDuration("PLANEWAR_TEST_DUR", time.Second); got != 2*time.Minute {
		t.Errorf("GetEnvDuration = %v, want 2m", got)
	}
	if got := GetEnvDuration("PLANEWAR_TEST_BADDUR", time.Second); got != time.Second {
		t.Errorf("GetEnvDuration bad = %v, want fallback", got)
	}
}
