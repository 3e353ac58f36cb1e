package domain

import "fmt"

// StepKind tags the variant of a Step.
type StepKind int

const (
	StepStart StepKind = iota
	StepIdentity
	StepGuide
	StepQuestion
	StepInstructions
	StepResult
)

// Step is one node of the survey state machine. Index is the question index for
// StepQuestion and the catalog group index for StepInstructions; otherwise zero.
type Step struct {
	Kind  StepKind
	Index int
}

func QuestionStep(i int) Step     { return Step{Kind: StepQuestion, Index: i} }
func InstructionsStep(g int) Step { return Step{Kind: StepInstructions, Index: g} }

func (s Step) String() string {
	switch s.Kind {
	case StepStart:
		return "start"
	case StepIdentity:
		return "identity"
	case StepGuide:
		return "guide"
	case StepQuestion:
		return fmt.Sprintf("question_%d", s.Index)
	case StepInstructions:
		return fmt.Sprintf("instructions_%d", s.Index)
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}
