package notify

import "github.com/PixelCode01/syllabo/pkg/models"

// DesktopNotifier shows an OS-level desktop notification. The delivery
// mechanism is platform-specific; see the build-tagged sendDesktop
// implementations.
type DesktopNotifier struct{}

// NewDesktopNotifier returns the notifier for the current platform.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

// Notify sends one desktop notification summarizing the due topics.
func (n *DesktopNotifier) Notify(due []*models.Topic) error {
	title, body := reminderMessage(due)
	return sendDesktop(title, body)
}
