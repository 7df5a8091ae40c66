// Package snapshot defines the point-in-time scan model shared by the
// scanner, the store and the presentation layers.
package snapshot

import (
	"path/filepath"
	"sort"
	"time"
)

// FileRecord is a single file discovered during a scan.
type FileRecord struct {
	// Path is the absolute file path, free of platform long-path markers.
	Path string `json:"path"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// DirectoryTotal is the cumulative size attributed to one directory,
// covering everything in its subtree.
type DirectoryTotal struct {
	// Path is the absolute directory path without a trailing separator,
	// except for filesystem roots.
	Path string `json:"path"`
	// Total is the subtree size in bytes.
	Total int64 `json:"total"`
}

// ExtensionStat aggregates the files sharing one extension.
type ExtensionStat struct {
	// Ext is the extension including the leading dot, or empty.
	Ext string `json:"ext"`
	// Count is the number of files with this extension.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
}

// Snapshot is the complete result of scanning one root directory.
type Snapshot struct {
	// Root is the normalized absolute path the scan started from.
	Root string `json:"root"`
	// ScanTime is the moment the scan completed.
	ScanTime time.Time `json:"scan_time"`
	// Files holds every file discovered under Root.
	Files []FileRecord `json:"files"`
	// Dirs holds cumulative totals for every directory that contains at
	// least one file anywhere in its subtree.
	Dirs []DirectoryTotal `json:"dirs"`
}

// TotalBytes returns the sum of all file sizes in the snapshot.
func (s *Snapshot) TotalBytes() int64 {
	var total int64
	for _, f := range s.Files {
		total += f.Size
	}

	return total
}

// TopFiles returns up to n files ordered by size, largest first.
// Ties are broken by path so the order is stable across runs.
func (s *Snapshot) TopFiles(n int) []FileRecord {
	files := make([]FileRecord, len(s.Files))
	copy(files, s.Files)

	sort.Slice(files, func(i, j int) bool {
		if files[i].Size != files[j].Size {
			return files[i].Size > files[j].Size
		}

		return files[i].Path < files[j].Path
	})

	if n >= 0 && n < len(files) {
		files = files[:n]
	}

	return files
}

// TopDirs returns up to n directories ordered by cumulative size,
// largest first, with ties broken by path.
func (s *Snapshot) TopDirs(n int) []DirectoryTotal {
	dirs := make([]DirectoryTotal, len(s.Dirs))
	copy(dirs, s.Dirs)

	sort.Slice(dirs, func(i, j int) bool {
		if dirs[i].Total != dirs[j].Total {
			return dirs[i].Total > dirs[j].Total
		}

		return dirs[i].Path < dirs[j].Path
	})

	if n >= 0 && n < len(dirs) {
		dirs = dirs[:n]
	}

	return dirs
}

// ExtensionStats groups the snapshot's files by extension and returns
// the groups ordered by cumulative size, largest first. Files without
// an extension are grouped under the empty string.
func (s *Snapshot) ExtensionStats() []ExtensionStat {
	byExt := make(map[string]ExtensionStat)

	for _, f := range s.Files {
		ext := filepath.Ext(f.Path)

		stat := byExt[ext]
		stat.Ext = ext
		stat.Count++
		stat.Size += f.Size
		byExt[ext] = stat
	}

	stats := make([]ExtensionStat, 0, len(byExt))
	for _, stat := range byExt {
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Size != stats[j].Size {
			return stats[i].Size > stats[j].Size
		}

		return stats[i].Ext < stats[j].Ext
	})

	return stats
}
