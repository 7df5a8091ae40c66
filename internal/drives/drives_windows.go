//go:build windows

package drives

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// List enumerates logical drives and their capacity. Drives that are
// present but not ready, like an empty card reader slot, are skipped.
func List() ([]Drive, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, fmt.Errorf("enumerating drives: %w", err)
	}

	var drives []Drive

	for i := 0; i < 26; i++ {
		if mask&(1<<i) == 0 {
			continue
		}

		root := string(rune('A'+i)) + `:\`

		rootPtr, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}

		switch windows.GetDriveType(rootPtr) {
		case windows.DRIVE_UNKNOWN, windows.DRIVE_NO_ROOT_DIR:
			continue
		}

		var freeAvail, total, totalFree uint64
		if err := windows.GetDiskFreeSpaceEx(rootPtr, &freeAvail, &total, &totalFree); err != nil {
			continue
		}

		fsName := make([]uint16, windows.MAX_PATH+1)

		var serial, maxComponent, flags uint32

		_ = windows.GetVolumeInformation(rootPtr, nil, 0, &serial, &maxComponent, &flags, &fsName[0], uint32(len(fsName)))

		drives = append(drives, Drive{
			Mount:  root,
			Device: root,
			FSType: windows.UTF16ToString(fsName),
			Total:  total,
			Free:   freeAvail,
		})
	}

	return drives, nil
}
