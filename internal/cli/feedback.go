// internal/cli/feedback.go
package arcx

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arcx/internal/feedback"
	"arcx/internal/store"
)

var feedbackFlags struct {
	puzzleID string
	model    string
	vote     string
	comment  string
	expected string
}

// feedbackCmd groups feedback capture and solution-grid checking.
var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Validate solution grids and record explanation feedback",
}

// feedbackValidateCmd checks a pasted grid: JSON shape first, then, when an
// expected grid is supplied, cell-for-cell correctness.
var feedbackValidateCmd = &cobra.Command{
	Use:   "validate <grid-json | @file>",
	Short: "Validate a solution grid pasted as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := gridArgument(args[0])
		if err != nil {
			return err
		}

		result, err := feedback.ValidateGridJSON(raw)
		if err != nil {
			return err
		}
		if !result.Valid {
			Notice("%s", result.Message)
			return nil
		}
		Successf("grid is valid: %d rows × %d columns", len(result.Grid), len(result.Grid[0]))

		if feedbackFlags.expected != "" {
			expectedRaw, err := gridArgument(feedbackFlags.expected)
			if err != nil {
				return err
			}
			expected, err := feedback.ValidateGridJSON(expectedRaw)
			if err != nil {
				return err
			}
			if !expected.Valid {
				Notice("expected grid: %s", expected.Message)
				return nil
			}
			if feedback.GridsEqual(expected.Grid, result.Grid) {
				Successf("grid matches the expected output")
			} else {
				Notice("grid does not match the expected output")
			}
		}
		return nil
	},
}

// feedbackAddCmd records a reaction to a model's explanation.
var feedbackAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record feedback on a model explanation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if feedbackFlags.puzzleID == "" || feedbackFlags.model == "" {
			return fmt.Errorf("--puzzle and --model are required")
		}

		s, err := store.Open(GetConfig().CacheFilePath())
		if err != nil {
			return err
		}
		defer s.Close()

		err = s.AddFeedback(store.Feedback{
			PuzzleID:  feedbackFlags.puzzleID,
			ModelName: feedbackFlags.model,
			Vote:      feedbackFlags.vote,
			Comment:   feedbackFlags.comment,
		})
		if err != nil {
			Alert("could not record feedback: %v", err)
			return err
		}
		Successf("feedback recorded for %s / %s", feedbackFlags.puzzleID, feedbackFlags.model)
		return nil
	},
}

// feedbackListCmd prints stored reactions for one puzzle, newest first.
var feedbackListCmd = &cobra.Command{
	Use:   "list <puzzle-id>",
	Short: "List stored feedback for a puzzle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(GetConfig().CacheFilePath())
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.ListFeedback(args[0])
		if err != nil {
			Alert("could not list feedback: %v", err)
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no feedback recorded for", args[0])
			return nil
		}
		for _, fb := range entries {
			line := fmt.Sprintf("%s  %-12s %s", fb.CreatedAt.Format("2006-01-02 15:04"), fb.Vote, fb.ModelName)
			if fb.Comment != "" {
				line += "  — " + fb.Comment
			}
			fmt.Println(line)
		}
		return nil
	},
}

// gridArgument reads a grid either inline or from an @file reference.
func gridArgument(arg string) (string, error) {
	if len(arg) > 1 && arg[0] == '@' {
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return "", fmt.Errorf("read grid file: %w", err)
		}
		return string(data), nil
	}
	return arg, nil
}

func init() {
	feedbackValidateCmd.Flags().StringVar(&feedbackFlags.expected, "expected", "", "expected output grid (JSON or @file) to check against")

	feedbackAddCmd.Flags().StringVar(&feedbackFlags.puzzleID, "puzzle", "", "puzzle ID the explanation belongs to")
	feedbackAddCmd.Flags().StringVar(&feedbackFlags.model, "model", "", "model that produced the explanation")
	feedbackAddCmd.Flags().StringVar(&feedbackFlags.vote, "vote", store.VoteHelpful, "helpful or not_helpful")
	feedbackAddCmd.Flags().StringVar(&feedbackFlags.comment, "comment", "", "optional comment")

	feedbackCmd.AddCommand(feedbackValidateCmd, feedbackAddCmd, feedbackListCmd)
	rootCmd.AddCommand(feedbackCmd)
}
