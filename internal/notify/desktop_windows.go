//go:build windows

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

func sendDesktop(title, body string) error {
	// msg is present on every supported Windows edition; toast libraries
	// are not worth the dependency for a console tool.
	text := fmt.Sprintf("%s: %s", title, strings.ReplaceAll(body, "\n", " "))
	return exec.Command("msg", "*", text).Run()
}
