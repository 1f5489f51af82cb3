package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/gramiz/internal/app"
	"github.com/abhisek/gramiz/internal/exercise"
	"github.com/abhisek/gramiz/internal/feedback"
	"github.com/abhisek/gramiz/internal/llm"
	"github.com/abhisek/gramiz/internal/session"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, loads the question pack, builds dependencies,
// and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	pack, err := resolvePack(cmd)
	if err != nil {
		return err
	}

	opts := app.Options{
		Pack:         pack,
		EventRepo:    st.EventRepo(),
		SnapshotRepo: st.SnapshotRepo(),
		Config:       session.DefaultConfig(),
	}

	// The app runs fine without a provider, just without AI explanations.
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI explanations will be unavailable.")
	} else {
		opts.Explainer = feedback.NewExplainer(provider, feedback.DefaultExplainerConfig())
	}

	return app.Run(opts)
}

// resolvePack loads the pack named by --pack, or the built-in starter
// pack when the flag is unset.
func resolvePack(cmd *cobra.Command) (*exercise.Pack, error) {
	path, _ := cmd.Flags().GetString("pack")
	if path == "" {
		return exercise.SamplePack(), nil
	}
	pack, err := exercise.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load pack %s: %w", path, err)
	}
	return pack, nil
}
