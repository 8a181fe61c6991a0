package systemd

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// fakeRunner records invocations and returns scripted results.
type fakeRunner struct {
	calls   [][]string
	output  []byte
	err     error
	hasPath bool
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func (f *fakeRunner) LookPath(string) bool { return f.hasPath }

func TestController_RunsExpectedArgs(t *testing.T) {
	tests := []struct {
		name string
		call func(c Controller) error
		want []string
	}{
		{
			name: "daemon-reload",
			call: func(c Controller) error { return c.DaemonReload(context.Background()) },
			want: []string{"systemctl", "daemon-reload"},
		},
		{
			name: "enable",
			call: func(c Controller) error { return c.Enable(context.Background(), "alpha") },
			want: []string{"systemctl", "enable", "alpha"},
		},
		{
			name: "disable",
			call: func(c Controller) error { return c.Disable(context.Background(), "alpha") },
			want: []string{"systemctl", "disable", "alpha"},
		},
		{
			name: "start",
			call: func(c Controller) error { return c.Start(context.Background(), "alpha") },
			want: []string{"systemctl", "start", "alpha"},
		},
		{
			name: "stop",
			call: func(c Controller) error { return c.Stop(context.Background(), "alpha") },
			want: []string{"systemctl", "stop", "alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			ctrl := NewController(runner)

			if err := tt.call(ctrl); err != nil {
				t.Fatalf("%s: error = %v", tt.name, err)
			}
			if len(runner.calls) != 1 {
				t.Fatalf("expected 1 invocation, got %d", len(runner.calls))
			}
			got := runner.calls[0]
			if len(got) != len(tt.want) {
				t.Fatalf("argv = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("argv[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestController_WrapsFailureOutput(t *testing.T) {
	runner := &fakeRunner{
		output: []byte("Failed to stop alpha.service: Unit not loaded.\n"),
		err:    errors.New("exit status 5"),
	}
	ctrl := NewController(runner)

	err := ctrl.Stop(context.Background(), "alpha")
	if err == nil {
		t.Fatal("Stop() = nil, want error")
	}
	if !strings.Contains(err.Error(), "Unit not loaded") {
		t.Errorf("error should carry systemctl output, got %q", err)
	}
	if !strings.Contains(err.Error(), "systemctl stop") {
		t.Errorf("error should name the failing operation, got %q", err)
	}
}

func TestController_IsActive(t *testing.T) {
	ctrl := NewController(&fakeRunner{})
	if !ctrl.IsActive(context.Background(), "alpha") {
		t.Error("IsActive() = false for zero exit status, want true")
	}

	ctrl = NewController(&fakeRunner{err: errors.New("exit status 3")})
	if ctrl.IsActive(context.Background(), "alpha") {
		t.Error("IsActive() = true for nonzero exit status, want false")
	}
}

func TestNewRootChecker_IsRoot(t *testing.T) {
	checker := NewRootChecker()
	if os.Getuid() != 0 && checker.IsRoot() {
		t.Error("IsRoot() = true, want false for non-root user")
	}
	if os.Getuid() == 0 && !checker.IsRoot() {
		t.Error("IsRoot() = false, want true for root user")
	}
}
