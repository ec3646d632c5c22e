// Package notify delivers due-review reminders. Implementations are
// strictly read-only consumers of the due list: a notifier failure is
// logged and never reaches the scheduler.
package notify

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/PixelCode01/syllabo/pkg/models"
)

// Notifier delivers one reminder about the given due topics.
type Notifier interface {
	Notify(due []*models.Topic) error
}

// Dispatcher fans a due list out to every configured notifier. Failures
// are logged per notifier and swallowed.
type Dispatcher struct {
	notifiers []Notifier
	log       *zap.Logger
}

// NewDispatcher wires the dispatcher to its notifiers.
func NewDispatcher(log *zap.Logger, notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{notifiers: notifiers, log: log}
}

// Dispatch sends the due list to every notifier. It never returns an
// error and never touches topic state.
func (d *Dispatcher) Dispatch(due []*models.Topic) {
	if len(due) == 0 {
		return
	}
	for _, n := range d.notifiers {
		if err := n.Notify(due); err != nil {
			d.log.Warn("notification delivery failed",
				zap.String("notifier", fmt.Sprintf("%T", n)),
				zap.Int("due_topics", len(due)),
				zap.Error(err))
		}
	}
}

// reminderMessage renders the title and body shared by all notifiers.
func reminderMessage(due []*models.Topic) (title, body string) {
	title = fmt.Sprintf("Syllabo: %d topic(s) due for review", len(due))

	var b strings.Builder
	for i, t := range due {
		if i == 5 {
			fmt.Fprintf(&b, "...and %d more", len(due)-i)
			break
		}
		fmt.Fprintf(&b, "- %s\n", t.Name)
	}
	return title, strings.TrimRight(b.String(), "\n")
}
