// Package drives enumerates mounted filesystems and their capacity.
package drives

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Drive describes one mounted filesystem.
type Drive struct {
	// Mount is the mount point or drive root.
	Mount string `json:"mount"`
	// Device is the backing device or remote share.
	Device string `json:"device"`
	// FSType is the filesystem type name.
	FSType string `json:"fstype"`
	// Total is the capacity in bytes.
	Total uint64 `json:"total"`
	// Free is the space available to unprivileged users, in bytes.
	Free uint64 `json:"free"`
}

// Used returns the consumed capacity in bytes.
func (d Drive) Used() uint64 {
	if d.Free > d.Total {
		return 0
	}

	return d.Total - d.Free
}

// UsedPercent returns the consumed share of capacity from 0 to 100.
func (d Drive) UsedPercent() float64 {
	if d.Total == 0 {
		return 0
	}

	return float64(d.Used()) / float64(d.Total) * 100
}

// mountPoint is one parsed mount table line.
type mountPoint struct {
	device string
	mount  string
	fstype string
}

// virtualFilesystems lists filesystem types with no disk capacity worth
// reporting.
var virtualFilesystems = map[string]struct{}{
	"autofs":      {},
	"binfmt_misc": {},
	"bpf":         {},
	"cgroup":      {},
	"cgroup2":     {},
	"configfs":    {},
	"debugfs":     {},
	"devpts":      {},
	"devtmpfs":    {},
	"efivarfs":    {},
	"fusectl":     {},
	"hugetlbfs":   {},
	"mqueue":      {},
	"nsfs":        {},
	"proc":        {},
	"pstore":      {},
	"ramfs":       {},
	"rpc_pipefs":  {},
	"securityfs":  {},
	"squashfs":    {},
	"sysfs":       {},
	"tmpfs":       {},
	"tracefs":     {},
}

// parseMounts reads a /proc/self/mounts style table and returns the
// mounts backed by real capacity, with octal escapes decoded.
func parseMounts(r io.Reader) ([]mountPoint, error) {
	var mounts []mountPoint

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}

		fstype := fields[2]
		if _, skip := virtualFilesystems[fstype]; skip {
			continue
		}

		mounts = append(mounts, mountPoint{
			device: unescapeMountField(fields[0]),
			mount:  unescapeMountField(fields[1]),
			fstype: fstype,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return mounts, nil
}

// unescapeMountField decodes the octal escapes the kernel uses in mount
// tables for spaces, tabs, newlines and backslashes.
func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3

				continue
			}
		}

		b.WriteByte(s[i])
	}

	return b.String()
}
