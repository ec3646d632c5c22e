//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

func sendDesktop(title, body string) error {
	script := fmt.Sprintf("display notification %q with title %q",
		strings.ReplaceAll(body, "\n", " "), title)
	return exec.Command("osascript", "-e", script).Run()
}
