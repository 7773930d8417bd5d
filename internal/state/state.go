package state

import (
	"fmt"

	"hydroboard/internal/domain"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseRunning
	PhaseSucceeded
	PhaseFailed
)

func (phase Phase) String() string {
	switch phase {
	case PhaseLoading:
		return "LOADING"
	case PhaseRunning:
		return "RUNNING"
	case PhaseSucceeded:
		return "DONE"
	case PhaseFailed:
		return "FAILED"
	default:
		return "IDLE"
	}
}

type RunStep string

const (
	StepTrigger RunStep = "updating sensor data"
	StepCompare RunStep = "comparing datasets"
)

// Workflow holds the dashboard's entire mutable state. It is written only
// from the UI event loop, so it carries no locking. Refresh responses are
// matched against per-target sequence numbers; a response from a superseded
// request is dropped instead of overwriting newer data.
type Workflow struct {
	Phase      Phase
	Step       RunStep
	Percent    int
	ErrMessage string

	Raw          domain.DatasetSnapshot
	Processed    domain.DatasetSnapshot
	HasRaw       bool
	HasProcessed bool

	Changes    domain.DatasetChangeSet
	HasChanges bool

	refreshSeq map[domain.Target]int
	resultGen  int
}

func NewWorkflow() *Workflow {
	return &Workflow{
		refreshSeq: map[domain.Target]int{},
	}
}

// BeginRefresh records a new outstanding fetch for target and returns its
// sequence number. Refreshes are reentrant; only the newest one may land.
// The phase moves to Loading only from Idle or Failed: a fetch during a run
// stays inside Running, and one during the success display window must not
// hide the result.
func (workflow *Workflow) BeginRefresh(target domain.Target) int {
	workflow.refreshSeq[target]++
	if workflow.Phase == PhaseIdle || workflow.Phase == PhaseFailed {
		workflow.Phase = PhaseLoading
	}
	return workflow.refreshSeq[target]
}

// FinishRefresh applies the outcome of a fetch. It reports whether the
// response was current; stale responses leave the state untouched. A failed
// refresh keeps the previously displayed snapshot and always records the
// error message, even when a sibling fetch already moved the phase back to
// Idle. Running and Succeeded are never demoted by a refresh failure.
func (workflow *Workflow) FinishRefresh(target domain.Target, seq int, snapshot domain.DatasetSnapshot, err error) bool {
	if seq != workflow.refreshSeq[target] {
		return false
	}
	if err != nil {
		workflow.ErrMessage = fmt.Sprintf("refresh %s dataset: %v", target, err)
		if workflow.Phase == PhaseLoading || workflow.Phase == PhaseIdle {
			workflow.Phase = PhaseFailed
		}
		return true
	}
	workflow.setSnapshot(target, snapshot)
	if workflow.Phase == PhaseLoading {
		workflow.Phase = PhaseIdle
		workflow.ErrMessage = ""
	}
	return true
}

// BeginRun starts the ETL workflow. At most one run may be outstanding;
// a second start request is rejected and changes nothing.
func (workflow *Workflow) BeginRun() bool {
	if workflow.Phase == PhaseRunning {
		return false
	}
	workflow.Phase = PhaseRunning
	workflow.Step = StepTrigger
	workflow.Percent = 10
	workflow.ErrMessage = ""
	return true
}

// AdvanceRun updates the cosmetic step label and percent shown while a run
// is in flight. It gates nothing.
func (workflow *Workflow) AdvanceRun(step RunStep, percent int) {
	if workflow.Phase != PhaseRunning {
		return
	}
	workflow.Step = step
	workflow.Percent = percent
}

// FailRun ends the run with the step that broke. Previously displayed
// snapshots stay as they were.
func (workflow *Workflow) FailRun(step RunStep, err error) {
	if workflow.Phase != PhaseRunning {
		return
	}
	workflow.Phase = PhaseFailed
	workflow.ErrMessage = fmt.Sprintf("%s: %v", step, err)
}

// CompleteRun stores the resulting changeset and returns a generation token
// for the success-display timer.
func (workflow *Workflow) CompleteRun(changes domain.DatasetChangeSet) int {
	if workflow.Phase != PhaseRunning {
		return workflow.resultGen
	}
	workflow.Phase = PhaseSucceeded
	workflow.Percent = 100
	workflow.Changes = changes
	workflow.HasChanges = true
	if changes.CurrentInfo != nil {
		workflow.setSnapshot(domain.TargetProcessed, *changes.CurrentInfo)
	}
	workflow.resultGen++
	return workflow.resultGen
}

// ClearResult reverts Succeeded to Idle when the display timeout fires.
// A token from an earlier run is ignored, so a stale timer cannot clobber
// a newer result.
func (workflow *Workflow) ClearResult(gen int) bool {
	if gen != workflow.resultGen || workflow.Phase != PhaseSucceeded {
		return false
	}
	workflow.Phase = PhaseIdle
	return true
}

// Preload seeds a snapshot without touching the phase, used for cached
// data shown before the first fetch completes.
func (workflow *Workflow) Preload(target domain.Target, snapshot domain.DatasetSnapshot) {
	if snapshot.IsZero() {
		return
	}
	workflow.setSnapshot(target, snapshot)
}

func (workflow *Workflow) Snapshot(target domain.Target) (domain.DatasetSnapshot, bool) {
	if target == domain.TargetProcessed {
		return workflow.Processed, workflow.HasProcessed
	}
	return workflow.Raw, workflow.HasRaw
}

func (workflow *Workflow) setSnapshot(target domain.Target, snapshot domain.DatasetSnapshot) {
	if target == domain.TargetProcessed {
		workflow.Processed = snapshot
		workflow.HasProcessed = true
		return
	}
	workflow.Raw = snapshot
	workflow.HasRaw = true
}
