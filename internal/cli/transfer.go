package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/PixelCode01/syllabo/internal/export"
	"github.com/PixelCode01/syllabo/internal/spaced_repetition"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export the review schedule to an .xlsx or .csv file",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		now := time.Now()
		topics, err := a.engine.ListAll(cmd.Context())
		if err != nil {
			return err
		}

		stats := make([]spaced_repetition.TopicStats, len(topics))
		for i, t := range topics {
			stats[i] = spaced_repetition.Stats(t, now, a.engine.Ladder())
		}

		if err := export.Export(args[0], stats); err != nil {
			return err
		}
		fmt.Printf("Exported %d topic(s) to %s.\n", len(stats), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Bulk-add topics from an .xlsx or .csv file",
	Long: `Bulk-add topics from a spreadsheet. Column A holds topic names and
column B optional descriptions. Topics already in the schedule are skipped.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := export.Import(cmd.Context(), a.engine, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Processed %d row(s): %d added, %d skipped.\n",
			result.TotalProcessed, result.Created, result.Skipped)
		for _, msg := range result.Errors {
			fmt.Println(" !", msg)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d row(s) failed to import", len(result.Errors))
		}
		return nil
	},
}
