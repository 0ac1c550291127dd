// internal/cli/batch.go
package arcx

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcx/internal/apiclient"
	"arcx/internal/batch"
	"arcx/internal/prefs"
	"arcx/internal/tui"
)

// keyLastSession remembers the most recent batch session across commands.
const keyLastSession = "lastBatchSession"

var batchFlags struct {
	model       string
	dataset     string
	puzzles     []string
	concurrency int
	detach      bool
}

// batchCmd groups the batch-analysis session commands.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Drive server-side batch-analysis sessions",
}

// batchStartCmd starts a session and watches its progress in the TUI.
var batchStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a batch-analysis session and watch its progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		model := batchFlags.model
		if model == "" {
			if last, ok := Prefs().Get(prefs.KeyLastModel); ok {
				model = last
			} else {
				return fmt.Errorf("--model is required (no remembered model)")
			}
		}
		dataset := batchFlags.dataset
		if dataset == "" {
			if last, ok := Prefs().Get(prefs.KeyLastDataset); ok {
				dataset = last
			} else {
				return fmt.Errorf("--dataset is required (no remembered dataset)")
			}
		}

		client := apiclient.New(cfg)
		session := batch.NewSession(client, cfg.PollInterval())

		result := session.Start(cmd.Context(), apiclient.BatchConfig{
			ModelName:   model,
			Dataset:     dataset,
			PuzzleIDs:   batchFlags.puzzles,
			Concurrency: batchFlags.concurrency,
		})
		if !result.Success {
			Alert("could not start batch analysis: %s", result.Error)
			return fmt.Errorf("%s", result.Error)
		}

		Successf("session %s started for %s on %s", session.SessionID(), model, dataset)
		_ = Prefs().Set(prefs.KeyLastModel, model)
		_ = Prefs().Set(prefs.KeyLastDataset, dataset)
		_ = Prefs().Set(keyLastSession, session.SessionID())

		if batchFlags.detach {
			return nil
		}
		return tui.Run(cmd.Context(), session)
	},
}

// batchStatusCmd prints one status snapshot for the remembered session.
var batchStatusCmd = &cobra.Command{
	Use:   "status [session-id]",
	Short: "Show the current status of a batch session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := sessionIDArg(args)
		if err != nil {
			return err
		}

		client := apiclient.New(GetConfig())
		progress, err := client.BatchStatus(cmd.Context(), id)
		if err != nil {
			Alert("status poll failed: %v", err)
			return err
		}

		fmt.Printf("session %s: %s — %d/%d analyzed (%.1f%%)",
			progress.SessionID, progress.Status, progress.Completed, progress.Total, progress.Percentage)
		if progress.Failed > 0 {
			fmt.Printf(", %d failed", progress.Failed)
		}
		fmt.Println()
		return nil
	},
}

var batchPauseCmd = &cobra.Command{
	Use:   "pause [session-id]",
	Short: "Pause a running batch session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return sessionAction(cmd, args, "pause") },
}

var batchResumeCmd = &cobra.Command{
	Use:   "resume [session-id]",
	Short: "Resume a paused batch session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return sessionAction(cmd, args, "resume") },
}

var batchCancelCmd = &cobra.Command{
	Use:   "cancel [session-id]",
	Short: "Cancel a batch session, keeping completed results",
	Args:  cobra.MaximumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return sessionAction(cmd, args, "cancel") },
}

// batchClearCmd forgets the remembered session id.
var batchClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the remembered batch session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Prefs().Remove(keyLastSession); err != nil {
			return err
		}
		Successf("session memory cleared")
		return nil
	},
}

// sessionIDArg resolves the session id from the argument or the remembered
// session.
func sessionIDArg(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if last, ok := Prefs().Get(keyLastSession); ok {
		return last, nil
	}
	return "", fmt.Errorf("no session id given and none remembered; run 'arcx batch start' first")
}

func sessionAction(cmd *cobra.Command, args []string, verb string) error {
	id, err := sessionIDArg(args)
	if err != nil {
		return err
	}

	client := apiclient.New(GetConfig())
	switch verb {
	case "pause":
		err = client.PauseBatch(cmd.Context(), id)
	case "resume":
		err = client.ResumeBatch(cmd.Context(), id)
	case "cancel":
		err = client.CancelBatch(cmd.Context(), id)
	}
	if err != nil {
		Alert("%s failed: %v", verb, err)
		return err
	}
	Successf("%s acknowledged for session %s", verb, id)
	return nil
}

func init() {
	batchStartCmd.Flags().StringVar(&batchFlags.model, "model", "", "model to run (defaults to last used)")
	batchStartCmd.Flags().StringVar(&batchFlags.dataset, "dataset", "", "dataset tag (defaults to last used)")
	batchStartCmd.Flags().StringSliceVar(&batchFlags.puzzles, "puzzles", nil, "restrict the run to specific puzzle IDs")
	batchStartCmd.Flags().IntVar(&batchFlags.concurrency, "concurrency", 0, "parallel attempts server-side (0 = server default)")
	batchStartCmd.Flags().BoolVar(&batchFlags.detach, "detach", false, "start the session without watching progress")

	batchCmd.AddCommand(batchStartCmd, batchStatusCmd, batchPauseCmd, batchResumeCmd, batchCancelCmd, batchClearCmd)
	rootCmd.AddCommand(batchCmd)
}
