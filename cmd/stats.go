package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice history and per-topic accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()

		sessions, err := repo.SessionCount(ctx)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		answers, err := repo.AnswerStats(ctx)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}

		if answers.Total == 0 {
			fmt.Println("No practice history yet. Run `gramiz play` to get started.")
			return nil
		}

		accuracy := float64(answers.Correct) / float64(answers.Total) * 100
		fmt.Printf("Sessions: %d   Answers: %d   Accuracy: %.0f%%   Avg time: %.1fs\n\n",
			sessions, answers.Total, accuracy, float64(answers.AvgTimeMs)/1000)

		topics, err := repo.TopicStats(ctx)
		if err != nil {
			return fmt.Errorf("query topics: %w", err)
		}
		if len(topics) > 0 {
			fmt.Println("Topics")
			fmt.Println(strings.Repeat("─", 48))
			for _, t := range topics {
				fmt.Printf("%-24s  %3d/%-3d  %3.0f%%\n",
					t.Topic, t.Correct, t.Attempted, t.Accuracy()*100)
			}
			fmt.Println()
		}

		mistakes, err := repo.MistakeStats(ctx)
		if err != nil {
			return fmt.Errorf("query mistakes: %w", err)
		}
		if len(mistakes) > 0 {
			fmt.Println("Frequent Mistakes")
			fmt.Println(strings.Repeat("─", 48))
			for i, m := range mistakes {
				if i >= 5 {
					break
				}
				fmt.Printf("%-28s  ×%-3d  last %s\n",
					m.ErrorType, m.Count, m.Last.Format("Jan 02"))
			}
			fmt.Println()
		}

		hints, err := repo.HintTypeCounts(ctx)
		if err != nil {
			return fmt.Errorf("query hints: %w", err)
		}
		if len(hints) > 0 {
			fmt.Println("Hints Used")
			fmt.Println(strings.Repeat("─", 48))
			for _, h := range hints {
				fmt.Printf("%-28s  ×%d\n", h.HintType, h.Count)
			}
		}

		return nil
	},
}
