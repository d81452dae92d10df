// Package pipeline runs one cross-synthesis job from input files to a
// 16-bit output file as a fixed sequence of stages.
package pipeline

import "fmt"

// State is a pipeline stage. Runs move strictly forward from StateIdle to
// StateSuccess or StateFailed.
type State int

const (
	StateIdle State = iota
	StateIngesting
	StateReconciling
	StateConfiguring
	StateProcessing
	StateFinalizing
	StateSuccess
	StateFailed
)

var stateNames = [...]string{
	StateIdle:        "idle",
	StateIngesting:   "ingesting",
	StateReconciling: "reconciling",
	StateConfiguring: "configuring",
	StateProcessing:  "processing",
	StateFinalizing:  "finalizing",
	StateSuccess:     "success",
	StateFailed:      "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateFailed
}

// StageError is returned by Run for every failure. Err keeps the cause for
// errors.Is.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
