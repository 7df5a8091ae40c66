//go:build !linux && !darwin && !windows

package drives

import "errors"

// List reports that drive enumeration is not implemented for this
// platform.
func List() ([]Drive, error) {
	return nil, errors.New("drive enumeration is not supported on this platform")
}
