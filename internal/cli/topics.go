package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addDescription string

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a topic to the review schedule",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		t, err := a.engine.AddTopic(cmd.Context(), args[0], addDescription)
		if err != nil {
			return err
		}
		fmt.Printf("Added %q. First review on %s.\n", t.Name, t.NextReviewAt.Local().Format("2006-01-02"))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a topic from the review schedule",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.engine.RemoveTopic(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %q.\n", args[0])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "optional topic description")
}

// exactArgs is cobra.ExactArgs with the usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("%s expects %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}
