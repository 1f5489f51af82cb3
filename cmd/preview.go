package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/gramiz/internal/diagnosis"
	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/feedback"
	"github.com/abhisek/gramiz/internal/grading"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Validate and try out a question pack (no database)",
	Long: `Load a question pack, check every question's shape, and optionally
answer the text-based questions from stdin.

This is a stateless authoring tool — no database, no profile, no events.
Useful for checking new packs before handing them to a learner.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("grade", false, "Interactively answer multiple-choice and fill-in-blank questions")
}

func runPreview(cmd *cobra.Command, args []string) error {
	pack, err := resolvePack(cmd)
	if err != nil {
		return err
	}
	grade, _ := cmd.Flags().GetBool("grade")

	fmt.Printf("Pack: %s (%d questions)\n\n", pack.Name, len(pack.Questions))

	var broken int
	for i := range pack.Questions {
		q := &pack.Questions[i]
		if err := q.CheckShape(); err != nil {
			fmt.Printf("  ✗ %s: %v\n", q.ID, err)
			broken++
			continue
		}
		fmt.Printf("  ✓ %-16s %-18s %-20s %s\n", q.ID, q.Type, q.Topic, q.Prompt)
	}
	if broken > 0 {
		return fmt.Errorf("%d of %d questions failed validation", broken, len(pack.Questions))
	}

	if !grade {
		return nil
	}

	analyzer := diagnosis.NewAnalyzer()
	opts := grading.Options{AllowPartialCredit: true, ProvideFeedback: true}
	scanner := bufio.NewScanner(os.Stdin)
	var correct, answered int

	fmt.Println()
	for i := range pack.Questions {
		q := &pack.Questions[i]
		resp, ok := promptAnswer(scanner, q)
		if !ok {
			continue
		}
		answered++

		outcome := grading.Validate(q, resp, opts)
		analysis := analyzer.Analyze(q, resp)
		fb := feedback.Generate(feedback.Context{
			Question:      q,
			Analysis:      &analysis,
			AttemptNumber: 1,
		}, feedback.DefaultOptions())

		if outcome.IsCorrect {
			correct++
			fmt.Printf("  %s (%g/%g points)\n\n", fb.Title, outcome.Points, outcome.MaxPoints)
		} else {
			fmt.Printf("  %s — %s\n", fb.Title, fb.Message)
			for _, d := range fb.Details {
				fmt.Printf("    • %s\n", d)
			}
			fmt.Println()
		}
	}

	if answered > 0 {
		fmt.Printf("Score: %d/%d\n", correct, answered)
	}
	return nil
}

// promptAnswer reads one answer from stdin. Drag-and-drop and
// sentence-builder questions need the TUI, so they are skipped here.
func promptAnswer(scanner *bufio.Scanner, q *exercise.Question) (exercise.Response, bool) {
	switch q.Type {
	case exercise.TypeMultipleChoice:
		fmt.Printf("%s\n", q.Prompt)
		for i, opt := range q.MultipleChoice.Options {
			fmt.Printf("  %c) %s\n", 'a'+i, opt)
		}
		fmt.Print("> ")
		if !scanner.Scan() {
			return exercise.Response{}, false
		}
		choice := strings.TrimSpace(scanner.Text())
		if len(choice) == 1 {
			idx := int(choice[0] - 'a')
			if idx >= 0 && idx < len(q.MultipleChoice.Options) {
				return exercise.Response{Selections: []string{q.MultipleChoice.Options[idx]}}, true
			}
		}
		return exercise.Response{Selections: []string{choice}}, true

	case exercise.TypeFillInBlank:
		fmt.Printf("%s\n", q.Prompt)
		blanks := make(map[string]string, len(q.FillInBlank.Blanks))
		for _, b := range q.FillInBlank.Blanks {
			fmt.Printf("%s> ", b.ID)
			if !scanner.Scan() {
				return exercise.Response{}, false
			}
			blanks[b.ID] = strings.TrimSpace(scanner.Text())
		}
		return exercise.Response{Blanks: blanks}, true

	default:
		fmt.Printf("(skipping %s — %s needs the TUI)\n\n", q.ID, q.Type)
		return exercise.Response{}, false
	}
}
