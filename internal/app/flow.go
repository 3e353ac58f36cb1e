package app

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"osdi-survey/internal/domain"
)

// ResultRecorder persists a finished survey. HistoryStore implements it.
// A failed Trim is retried on its own; Record runs once per session.
type ResultRecorder interface {
	Record(ctx context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error)
	Trim(ctx context.Context) error
}

// Input is the payload of an advance action. Only the fields relevant to the
// current step are read.
type Input struct {
	Name   string
	Age    string
	Gender string
	// Option indexes the catalog options; nil means nothing was selected.
	Option *int
}

// Choose builds a question-step input selecting the given option.
func Choose(option int) Input {
	return Input{Option: &option}
}

// Session is the state of one respondent working through the survey.
type Session struct {
	ID         string
	Step       domain.Step
	Respondent domain.Respondent
	Answers    AnswerSet
	// Result is set on entering the result step.
	Result *domain.Result

	// recorded is set once the score record is inserted.
	recorded bool
}

// FlowController drives sessions through the survey steps.
type FlowController struct {
	catalog   domain.Catalog
	questions []domain.Question
	recorder  ResultRecorder
}

func NewFlowController(catalog domain.Catalog, recorder ResultRecorder) *FlowController {
	return &FlowController{
		catalog:   catalog,
		questions: catalog.Questions(),
		recorder:  recorder,
	}
}

func (f *FlowController) Catalog() domain.Catalog { return f.catalog }

func (f *FlowController) QuestionCount() int { return len(f.questions) }

// NewSession returns a session positioned at the start step with default state.
func (f *FlowController) NewSession() *Session {
	return &Session{
		ID:         uuid.NewString(),
		Step:       domain.Step{Kind: domain.StepStart},
		Respondent: domain.Respondent{Gender: domain.GenderUnspecified},
		Answers:    NewAnswerSet(len(f.questions)),
	}
}

// CurrentQuestion returns the prompt for a session sitting on a question step.
func (f *FlowController) CurrentQuestion(s *Session) (domain.Question, bool) {
	if s.Step.Kind != domain.StepQuestion {
		return domain.Question{}, false
	}
	return f.questions[s.Step.Index], true
}

// Advance moves the session to its next step, applying the step's side effect.
// The only failure is a storage error on the result step, in which case the
// session stays on the result step with its score intact.
func (f *FlowController) Advance(ctx context.Context, s *Session, in Input) error {
	switch s.Step.Kind {
	case domain.StepStart:
		s.Step = domain.Step{Kind: domain.StepIdentity}
	case domain.StepIdentity:
		s.Respondent = normalizeRespondent(in)
		s.Step = domain.Step{Kind: domain.StepGuide}
	case domain.StepGuide:
		f.enterQuestion(s, 0)
	case domain.StepQuestion:
		i := s.Step.Index
		if err := s.Answers.RecordAnswer(i, f.optionValue(in.Option)); err != nil {
			log.Printf("session %s: %v, keeping 0", s.ID, err)
		}
		f.afterQuestion(s, i)
	case domain.StepInstructions:
		f.enterQuestion(s, f.firstOfGroup(s.Step.Index))
	case domain.StepResult:
		return f.finish(ctx, s)
	}
	return nil
}

func (f *FlowController) enterQuestion(s *Session, i int) {
	if i >= len(f.questions) {
		f.enterResult(s)
		return
	}
	s.Step = domain.QuestionStep(i)
}

func (f *FlowController) afterQuestion(s *Session, i int) {
	next := i + 1
	if next >= len(f.questions) {
		f.enterResult(s)
		return
	}
	if g := f.questions[next].Group; g != f.questions[i].Group {
		s.Step = domain.InstructionsStep(g)
		return
	}
	s.Step = domain.QuestionStep(next)
}

func (f *FlowController) enterResult(s *Session) {
	score := ComputeScore(s.Answers, len(f.questions))
	s.Result = &domain.Result{Score: score, Category: Classify(score)}
	s.Step = domain.Step{Kind: domain.StepResult}
}

func (f *FlowController) finish(ctx context.Context, s *Session) error {
	record := domain.ScoreRecord{
		Name:   s.Respondent.Name,
		Age:    s.Respondent.Age,
		Gender: s.Respondent.Gender,
		Score:  ComputeScore(s.Answers, len(f.questions)),
	}
	if !s.recorded {
		if _, err := f.recorder.Record(ctx, record); err != nil {
			return err
		}
		s.recorded = true
	}
	if err := f.recorder.Trim(ctx); err != nil {
		return err
	}
	*s = *f.NewSession()
	return nil
}

func (f *FlowController) firstOfGroup(g int) int {
	for _, q := range f.questions {
		if q.Group == g {
			return q.Index
		}
	}
	return len(f.questions)
}

// optionValue resolves a selection to its score value; no or unknown selection is 0.
func (f *FlowController) optionValue(option *int) int {
	if option == nil || *option < 0 || *option >= len(f.catalog.Options) {
		return 0
	}
	return f.catalog.Options[*option].Value
}

func normalizeRespondent(in Input) domain.Respondent {
	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil || age < 0 {
		age = 0
	}
	return domain.Respondent{
		Name:   strings.TrimSpace(in.Name),
		Age:    age,
		Gender: domain.ParseGender(in.Gender),
	}
}
