package logger

import (
	"bytes"
	"os"
	"regexp"
	"testing"
)

func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	t.Cleanup(func() {
		SetVerbose(false)
		SetTimestamps(false)
		SetOutput(os.Stderr)
	})
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("ayanamsa %.2f", 23.85) }, "[DEBUG] ayanamsa 23.85\n"},
		{"info", func() { Info("backend %s", "analytic") }, "[INFO] backend analytic\n"},
		{"warn", func() { Warn("no sunrise") }, "[WARN] no sunrise\n"},
		{"section", func() { Section("Dasha") }, "\n=== Dasha ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("unexpected output: %q", got)
			}
		})
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("test message")
	Section("hidden")

	if buf.Len() > 0 {
		t.Error("expected no output when verbose is disabled")
	}
}

func TestWarn_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Warn("ephemeris %s", "unreachable")

	if got := buf.String(); got != "[WARN] ephemeris unreachable\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestTimestamps(t *testing.T) {
	buf := capture(t, true)
	SetTimestamps(true)

	Info("chart %s", "saved")

	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\S+ \[INFO\] chart saved\n$`)
	if !pattern.MatchString(buf.String()) {
		t.Errorf("unexpected timestamped output: %q", buf.String())
	}
}
