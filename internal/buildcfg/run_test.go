package buildcfg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeRunner struct {
	calls   [][]string
	failOn  string // binary name that fails
	output  []byte
	missing map[string]bool
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if name == f.failOn {
		return f.output, errors.New("exit status 2")
	}
	return nil, nil
}

func (f *fakeRunner) LookPath(name string) bool { return !f.missing[name] }

func testPlan() Plan {
	return Plan{
		Interpreter:       "/usr/bin/python3",
		Preinstall:        []string{"pip"},
		ExcludedLibraries: []string{"numpy"},
		HelperBin:         "dh_virtualenv",
		DepScanBin:        "dh_shlibdeps",
		StripBin:          "dh_strip",
	}
}

func TestExecute_RunsPassesInOrder(t *testing.T) {
	run := &fakeRunner{}
	plan := testPlan()

	if err := plan.Execute(context.Background(), run, testLogger()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := [][]string{
		{"dh_virtualenv", "--python", "/usr/bin/python3", "--preinstall", "pip"},
		{"dh_shlibdeps", "-Xnumpy"},
		{"dh_strip", "-Xnumpy"},
	}
	if diff := cmp.Diff(want, run.calls); diff != "" {
		t.Errorf("invocation mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_AbortsOnFirstFailure(t *testing.T) {
	run := &fakeRunner{failOn: "dh_shlibdeps", output: []byte("cannot resolve libfoo\n")}
	plan := testPlan()

	err := plan.Execute(context.Background(), run, testLogger())
	if err == nil {
		t.Fatal("Execute() = nil, want error")
	}
	if !strings.Contains(err.Error(), "dep-scan pass") {
		t.Errorf("error should name the failing pass, got %q", err)
	}
	if !strings.Contains(err.Error(), "cannot resolve libfoo") {
		t.Errorf("error should carry pass output, got %q", err)
	}

	// The strip pass never ran.
	if len(run.calls) != 2 {
		t.Errorf("expected 2 invocations before abort, got %d", len(run.calls))
	}
}

func TestExecute_MissingBinary(t *testing.T) {
	run := &fakeRunner{missing: map[string]bool{"dh_virtualenv": true}}
	plan := testPlan()

	err := plan.Execute(context.Background(), run, testLogger())
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing binary")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Errorf("error = %q, want message about PATH", err)
	}
	if len(run.calls) != 0 {
		t.Errorf("expected no invocations, got %d", len(run.calls))
	}
}
