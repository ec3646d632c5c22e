//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

func sendDesktop(title, body string) error {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return fmt.Errorf("notify-send not available: %w", err)
	}
	return exec.Command("notify-send", "-a", "syllabo", title, body).Run()
}
