package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"osdi-survey/internal/app"
	"osdi-survey/internal/catalog"
	"osdi-survey/internal/domain"
	"osdi-survey/internal/infra/memory"
)

func TestShellCompletesSurvey(t *testing.T) {
	color.NoColor = true
	table := memory.NewHistoryTable()
	flow := app.NewFlowController(catalog.Default(), app.NewHistoryStore(table, 5))

	script := scriptedRun("Kim", "41", "W", []string{
		"2", "2", "2", "2", "2",
		"3", "3", "x", "",
		"6", "1", "5",
	})
	var out strings.Builder
	if err := NewShell(flow, strings.NewReader(script), &out).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	records, _ := table.OldestFirst(context.Background())
	if len(records) != 1 {
		t.Fatalf("expected one saved record, got %d", len(records))
	}
	// 5*1 + 2*2 + 0 + 0 + 0 + 0 + 4 = 13
	want := 13 * 25.0 / 12
	if rec := records[0]; rec.Name != "Kim" || rec.Age != 41 || rec.Gender != domain.GenderFemale || rec.Score != want {
		t.Fatalf("unexpected record %+v", rec)
	}

	text := out.String()
	for _, fragment := range []string{
		"Dry Eye Self-Check",
		"1/12. Did your eyes feel dry?",
		"Vision-related function",
		"Environmental triggers",
		"OSDI score: 27.08 (Moderate)",
		"More information: http://www.example.com",
		"Your result has been saved.",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, text)
		}
	}
}

func TestShellKeepsResultWhenSaveFails(t *testing.T) {
	color.NoColor = true
	table := &flakyTable{HistoryTable: memory.NewHistoryTable(), failures: 1}
	flow := app.NewFlowController(catalog.Default(), app.NewHistoryStore(table, 5))

	// the extra blank line retries the save from the result step
	script := scriptedRun("", "abc", "", make([]string, 12)) + "\n"
	var out strings.Builder
	if err := NewShell(flow, strings.NewReader(script), &out).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Your result could not be saved") {
		t.Fatalf("expected failure notice\n%s", text)
	}
	if strings.Count(text, "OSDI score: 0.00 (Normal/Minimal)") != 2 {
		t.Fatalf("expected result to be shown again after failure\n%s", text)
	}
	records, _ := table.OldestFirst(context.Background())
	if len(records) != 1 || records[0].Age != 0 {
		t.Fatalf("expected retried save with coerced age, got %+v", records)
	}
}

func TestShellStopsOnCancel(t *testing.T) {
	flow := app.NewFlowController(catalog.Default(), app.NewHistoryStore(memory.NewHistoryTable(), 5))
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	err := NewShell(flow, strings.NewReader("\n"), &strings.Builder{}).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestParseChoice(t *testing.T) {
	if got := parseChoice("3"); got == nil || *got != 2 {
		t.Fatalf("expected index 2, got %v", got)
	}
	for _, line := range []string{"", "0", "-1", "two"} {
		if got := parseChoice(line); got != nil {
			t.Fatalf("expected no selection for %q, got %d", line, *got)
		}
	}
}

// scriptedRun builds stdin for one full survey: start, identity, guide, the
// answers with both instruction screens, and the final Enter on the result.
func scriptedRun(name, age, gender string, answers []string) string {
	lines := []string{"", name, age, gender, ""}
	for i, a := range answers {
		if i == 5 || i == 9 {
			lines = append(lines, "")
		}
		lines = append(lines, a)
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n") + "\n"
}

type flakyTable struct {
	app.HistoryTable
	failures int
}

func (f *flakyTable) Insert(ctx context.Context, r domain.ScoreRecord) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("disk unplugged")
	}
	return f.HistoryTable.Insert(ctx, r)
}
