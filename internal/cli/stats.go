package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsTopic string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		now := time.Now()
		if statsTopic != "" {
			s, err := a.engine.TopicStats(cmd.Context(), statsTopic, now)
			if err != nil {
				return err
			}
			fmt.Printf("Topic:             %s\n", s.Name)
			if s.Description != "" {
				fmt.Printf("Description:       %s\n", s.Description)
			}
			fmt.Printf("Mastery:           %s\n", s.Mastery)
			fmt.Printf("Success rate:      %.1f%%\n", s.SuccessRate)
			fmt.Printf("Success streak:    %d\n", s.SuccessStreak)
			fmt.Printf("Total reviews:     %d\n", s.TotalReviews)
			fmt.Printf("Current interval:  %d day(s)\n", s.IntervalDays)
			fmt.Printf("Next review:       %s (in %d day(s))\n",
				s.NextReviewAt.Local().Format("2006-01-02"), s.DaysUntilReview)
			return nil
		}

		s, err := a.engine.Summary(cmd.Context(), now)
		if err != nil {
			return err
		}
		fmt.Printf("Topics tracked:        %d\n", s.TotalTopics)
		fmt.Printf("Due now:               %d\n", s.DueNow)
		fmt.Printf("Due today:             %d\n", s.DueToday)
		fmt.Printf("Mastered:              %d\n", s.MasteredTopics)
		fmt.Printf("Average success rate:  %.1f%%\n", s.AverageSuccessRate)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsTopic, "topic", "", "show statistics for one topic")
}
