//go:build darwin

package drives

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// List enumerates mounted filesystems through getfsstat.
func List() ([]Drive, error) {
	n, err := unix.Getfsstat(nil, unix.MNT_NOWAIT)
	if err != nil {
		return nil, fmt.Errorf("counting mounts: %w", err)
	}

	stats := make([]unix.Statfs_t, n)

	n, err = unix.Getfsstat(stats, unix.MNT_NOWAIT)
	if err != nil {
		return nil, fmt.Errorf("reading mounts: %w", err)
	}

	stats = stats[:n]

	drives := make([]Drive, 0, len(stats))

	for _, st := range stats {
		if st.Blocks == 0 {
			continue
		}

		bsize := uint64(st.Bsize)

		drives = append(drives, Drive{
			Mount:  unix.ByteSliceToString(st.Mntonname[:]),
			Device: unix.ByteSliceToString(st.Mntfromname[:]),
			FSType: unix.ByteSliceToString(st.Fstypename[:]),
			Total:  st.Blocks * bsize,
			Free:   st.Bavail * bsize,
		})
	}

	return drives, nil
}
