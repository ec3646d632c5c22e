//go:build !linux && !darwin && !windows

package notify

import "fmt"

func sendDesktop(title, body string) error {
	return fmt.Errorf("desktop notifications not supported on this platform")
}
