package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInit_ReturnsUsableLogger(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	log.Error().Str("stage", "startup").Msg("boom")

	out := buf.String()
	if !strings.Contains(out, "boom") {
		t.Fatalf("message missing from output: %s", out)
	}
	if !strings.Contains(out, "account-gateway") {
		t.Fatalf("service field missing from output: %s", out)
	}
}

func TestInit_OnlyFirstCallConfigures(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Level: "debug", Output: &first})
	log := Init(Options{Level: "debug", Output: &second})
	log.Info().Msg("routed")

	if second.Len() != 0 {
		t.Fatalf("second Init must not reconfigure output")
	}
	if !strings.Contains(first.String(), "routed") {
		t.Fatalf("expected output on the first writer, got %q", first.String())
	}
}
