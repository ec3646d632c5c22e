package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/PixelCode01/syllabo/internal/spaced_repetition"
	"github.com/PixelCode01/syllabo/pkg/models"
)

var (
	listUrgent   bool
	listUpcoming int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics in the review schedule",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		if listUrgent && listUpcoming > 0 {
			return usagef("--urgent and --upcoming are mutually exclusive")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		now := time.Now()
		var topics []*models.Topic
		switch {
		case listUrgent:
			topics, err = a.engine.ListDue(cmd.Context(), now)
		case listUpcoming > 0:
			topics, err = a.engine.ListUpcoming(cmd.Context(), now, listUpcoming)
		default:
			topics, err = a.engine.ListAll(cmd.Context())
		}
		if err != nil {
			return err
		}

		if len(topics) == 0 {
			switch {
			case listUrgent:
				fmt.Println("Nothing due for review.")
			case listUpcoming > 0:
				fmt.Printf("Nothing due within the next %d day(s).\n", listUpcoming)
			default:
				fmt.Println("No topics in the review schedule. Add one with 'syllabo add'.")
			}
			return nil
		}

		printTopics(topics, now, a.engine.Ladder())
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listUrgent, "urgent", false, "only topics that are due now")
	listCmd.Flags().IntVar(&listUpcoming, "upcoming", 0, "only topics due within the next N days")
}

func printTopics(topics []*models.Topic, now time.Time, ladder spaced_repetition.Ladder) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tMASTERY\tSTREAK\tNEXT REVIEW\tSTATUS")
	for _, t := range topics {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			t.Name,
			spaced_repetition.Classify(t),
			t.SuccessStreak,
			t.NextReviewAt.Local().Format("2006-01-02"),
			dueStatus(t, now),
		)
	}
	w.Flush()
}

func dueStatus(t *models.Topic, now time.Time) string {
	if t.NextReviewAt.After(now) {
		days := int(t.NextReviewAt.Sub(now).Hours() / 24)
		return fmt.Sprintf("in %d day(s)", days)
	}
	overdue := int(now.Sub(t.NextReviewAt).Hours() / 24)
	if overdue == 0 {
		return "due now"
	}
	return fmt.Sprintf("overdue %d day(s)", overdue)
}
