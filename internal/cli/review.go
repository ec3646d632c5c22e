package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PixelCode01/syllabo/internal/spaced_repetition"
)

var (
	reviewSuccess bool
	reviewFailure bool
)

var reviewCmd = &cobra.Command{
	Use:   "review NAME --success|--failure",
	Short: "Record a review outcome for a topic",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reviewSuccess == reviewFailure {
			return usagef("exactly one of --success or --failure is required")
		}
		outcome := spaced_repetition.Failure
		if reviewSuccess {
			outcome = spaced_repetition.Success
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		t, err := a.engine.MarkReview(cmd.Context(), args[0], outcome)
		if err != nil {
			return err
		}

		fmt.Printf("Recorded %s for %q.\n", outcome, t.Name)
		fmt.Printf("Next review on %s (%d-day interval, mastery: %s).\n",
			t.NextReviewAt.Local().Format("2006-01-02"),
			a.engine.Ladder().Days(t.IntervalIndex),
			spaced_repetition.Classify(t))
		return nil
	},
}

func init() {
	reviewCmd.Flags().BoolVar(&reviewSuccess, "success", false, "the topic was recalled")
	reviewCmd.Flags().BoolVar(&reviewFailure, "failure", false, "the topic was not recalled")
}
