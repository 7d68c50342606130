//go:build !linux && !darwin

package capture

import "fmt"

func openDisplay(device uint32, width, height int) (Backend, error) {
	return nil, fmt.Errorf("no display backend on this platform (use the \"test\" device)")
}
