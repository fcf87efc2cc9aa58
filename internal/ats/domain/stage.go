package domain

import "fmt"

// Stage is a pipeline column on the kanban board. Applications only ever
// move along the edges in stageTransitions; anything else is a domain error.
type Stage string

const (
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
)

// PipelineStages is the board column order. Rejected is kept off the board
// and rendered separately.
var PipelineStages = []Stage{
	StageApplied,
	StageScreening,
	StageInterview,
	StageOffer,
	StageHired,
}

// stageTransitions is the forward path plus rejection from any non-terminal
// stage. A rejected application can be reopened back to applied.
var stageTransitions = map[Stage][]Stage{
	StageApplied:   {StageScreening, StageRejected},
	StageScreening: {StageInterview, StageRejected},
	StageInterview: {StageOffer, StageRejected},
	StageOffer:     {StageHired, StageRejected},
	StageHired:     {},
	StageRejected:  {StageApplied},
}

func (s Stage) Valid() bool {
	_, ok := stageTransitions[s]
	return ok
}

func (s Stage) String() string { return string(s) }

// Terminal reports whether an application can still move.
func (s Stage) Terminal() bool {
	return len(stageTransitions[s]) == 0
}

// CanTransition reports whether moving from s to next is allowed.
func (s Stage) CanTransition(next Stage) bool {
	for _, allowed := range stageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ErrStageTransition describes a rejected stage move.
type ErrStageTransition struct {
	From, To Stage
}

func (e *ErrStageTransition) Error() string {
	return fmt.Sprintf("cannot move application from %s to %s", e.From, e.To)
}
