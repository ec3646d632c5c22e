package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PixelCode01/syllabo/internal/notify"
	"github.com/PixelCode01/syllabo/internal/scheduler"
)

var notifyDaemon bool

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send reminders for due topics",
	Long: `Dispatch reminders for topics that are due now. With --daemon the
command keeps running and re-checks on the configured interval, inside
the configured notification hours.`,
	Args: exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		notifiers := []notify.Notifier{notify.NewDesktopNotifier()}
		tg := a.cfg.Notifications.Telegram
		if tg.Token != "" && tg.ChatID != 0 {
			tn, err := notify.NewTelegramNotifier(tg.Token, tg.ChatID)
			if err != nil {
				// Reminders must still reach the desktop when Telegram
				// is misconfigured.
				a.log.Warn("telegram notifier unavailable", zap.Error(err))
			} else {
				notifiers = append(notifiers, tn)
			}
		}

		dispatcher := notify.NewDispatcher(a.log, notifiers...)
		sched := scheduler.New(a.engine, dispatcher, a.cfg.Notifications, a.log)

		if !notifyDaemon {
			return sched.RunManualCheck(cmd.Context())
		}

		sched.Start()
		defer sched.Stop()
		fmt.Println("Reminder daemon running. Press Ctrl+C to stop.")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		sig := <-sigChan
		a.log.Info("shutting down", zap.String("signal", sig.String()))
		return nil
	},
}

func init() {
	notifyCmd.Flags().BoolVar(&notifyDaemon, "daemon", false, "keep running and check periodically")
}
