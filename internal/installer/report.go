package installer

import (
	"errors"
	"fmt"
)

// UnitResult records the outcome of one unit's install sequence.
type UnitResult struct {
	// Unit is the filename-derived service name.
	Unit string

	// Step names the step that failed: "stop", "copy", "enable" or "start".
	// Empty on success.
	Step string

	// Err is the failure, nil on success.
	Err error
}

// OK reports whether the unit's full sequence succeeded.
func (r UnitResult) OK() bool {
	return r.Err == nil
}

// Report aggregates the outcome of one sync run.
type Report struct {
	// Results holds one entry per discovered unit, in processing order.
	Results []UnitResult

	// ReloadErr is the outcome of the trailing daemon-reload.
	ReloadErr error
}

// Failed returns the results of units whose sequence failed.
func (r *Report) Failed() []UnitResult {
	var failed []UnitResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err folds the report into a single error, nil when everything succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("unit %s: %s: %w", res.Unit, res.Step, res.Err))
		}
	}
	if r.ReloadErr != nil {
		errs = append(errs, fmt.Errorf("daemon-reload: %w", r.ReloadErr))
	}
	return errors.Join(errs...)
}
