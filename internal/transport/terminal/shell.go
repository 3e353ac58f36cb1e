// Package terminal is the line-oriented presentation shell for the survey.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"osdi-survey/internal/app"
	"osdi-survey/internal/domain"
)

// Shell renders each step to out and feeds lines read from in back into the flow.
type Shell struct {
	flow    *app.FlowController
	catalog domain.Catalog
	in      *bufio.Scanner
	out     io.Writer

	title  *color.Color
	prompt *color.Color
	fail   *color.Color
	bands  map[domain.Category]*color.Color
}

func NewShell(flow *app.FlowController, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		flow:    flow,
		catalog: flow.Catalog(),
		in:      bufio.NewScanner(in),
		out:     out,
		title:   color.New(color.FgCyan, color.Bold),
		prompt:  color.New(color.FgWhite, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		bands: map[domain.Category]*color.Color{
			domain.CategoryNormal:   color.New(color.FgGreen),
			domain.CategoryMild:     color.New(color.FgYellow),
			domain.CategoryModerate: color.New(color.FgMagenta),
			domain.CategorySevere:   color.New(color.FgRed),
		},
	}
}

// Run administers surveys back to back until input is exhausted or ctx is done.
func (sh *Shell) Run(ctx context.Context) error {
	session := sh.flow.NewSession()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		in, ok := sh.collect(session)
		if !ok {
			return sh.in.Err()
		}
		wasResult := session.Step.Kind == domain.StepResult
		if err := sh.flow.Advance(ctx, session, in); err != nil {
			log.Printf("session %s: save result: %v", session.ID, err)
			sh.fail.Fprintf(sh.out, "Your result could not be saved: %v\nPress Enter to try again.\n", err)
			continue
		}
		if wasResult {
			fmt.Fprintln(sh.out, "Your result has been saved.")
		}
	}
}

// collect renders the current step and reads its payload. ok is false at end of input.
func (sh *Shell) collect(s *app.Session) (in app.Input, ok bool) {
	switch s.Step.Kind {
	case domain.StepStart:
		fmt.Fprintln(sh.out)
		sh.title.Fprintln(sh.out, sh.catalog.Title)
		_, ok = sh.ask("Press Enter to start.")
	case domain.StepIdentity:
		if in.Name, ok = sh.ask("Name: "); !ok {
			return in, false
		}
		if in.Age, ok = sh.ask("Age: "); !ok {
			return in, false
		}
		in.Gender, ok = sh.ask("Gender (M/W, blank to skip): ")
	case domain.StepGuide:
		fmt.Fprintln(sh.out, strings.TrimSpace(sh.catalog.Guide))
		_, ok = sh.ask("Press Enter to continue.")
	case domain.StepQuestion:
		q, _ := sh.flow.CurrentQuestion(s)
		sh.title.Fprintf(sh.out, "%d/%d. %s\n", q.Index+1, sh.flow.QuestionCount(), q.Prompt)
		for i, opt := range sh.catalog.Options {
			fmt.Fprintf(sh.out, "  %d) %s\n", i+1, opt.Label)
		}
		var line string
		if line, ok = sh.ask(fmt.Sprintf("Choice (1-%d, blank to skip): ", len(sh.catalog.Options))); ok {
			in.Option = parseChoice(line)
		}
	case domain.StepInstructions:
		group := sh.catalog.Groups[s.Step.Index]
		sh.title.Fprintln(sh.out, group.Name)
		fmt.Fprintln(sh.out, strings.TrimSpace(group.Instructions))
		_, ok = sh.ask("Press Enter to continue.")
	case domain.StepResult:
		sh.bands[s.Result.Category].Fprintln(sh.out, s.Result.String())
		if sh.catalog.InfoURL != "" {
			fmt.Fprintf(sh.out, "More information: %s\n", sh.catalog.InfoURL)
		}
		_, ok = sh.ask("Press Enter to finish.")
	}
	return in, ok
}

func (sh *Shell) ask(prompt string) (string, bool) {
	sh.prompt.Fprint(sh.out, prompt)
	if !sh.in.Scan() {
		fmt.Fprintln(sh.out)
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

// parseChoice turns a 1-based menu number into an option index; anything else is no selection.
func parseChoice(line string) *int {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 {
		return nil
	}
	idx := n - 1
	return &idx
}
