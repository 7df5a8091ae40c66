package store

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dirsnap/dirsnap/internal/snapshot"
)

// Version 1 layout, little endian:
//
//	int32   format version
//	int64   scan time, nanoseconds since the Unix epoch
//	string  root path
//	int32   directory record count
//	        per directory: string path, int64 total
//	int32   file record count
//	        per file: string path, int64 size
//
// Strings are a uint32 byte length followed by that many UTF-8 bytes.
const formatVersion = 1

// maxStringBytes caps decoded string lengths. Without it a corrupt
// length prefix turns into a multi-gigabyte allocation.
const maxStringBytes = 1 << 20

// preallocCap bounds slice preallocation from decoded counts, which are
// untrusted until the records actually arrive.
const preallocCap = 4096

var byteOrder = binary.LittleEndian

func encodeSnapshot(w io.Writer, snap *snapshot.Snapshot) error {
	if err := writeInt32(w, formatVersion); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}

	if err := writeInt64(w, snap.ScanTime.UnixNano()); err != nil {
		return fmt.Errorf("writing scan time: %w", err)
	}

	if err := writeString(w, snap.Root); err != nil {
		return fmt.Errorf("writing root: %w", err)
	}

	if err := writeCount(w, len(snap.Dirs)); err != nil {
		return fmt.Errorf("writing directory count: %w", err)
	}

	for i, d := range snap.Dirs {
		if err := writeDir(w, d); err != nil {
			return fmt.Errorf("encoding directory record %d of %d: %w", i+1, len(snap.Dirs), err)
		}
	}

	if err := writeCount(w, len(snap.Files)); err != nil {
		return fmt.Errorf("writing file count: %w", err)
	}

	for i, f := range snap.Files {
		if err := writeFile(w, f); err != nil {
			return fmt.Errorf("encoding file record %d of %d: %w", i+1, len(snap.Files), err)
		}
	}

	return nil
}

func decodeSnapshot(r io.Reader) (*snapshot.Snapshot, error) {
	version, err := readInt32(r)
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}

	if version != formatVersion {
		return nil, fmt.Errorf("unsupported snapshot format version %d", version)
	}

	nanos, err := readInt64(r)
	if err != nil {
		return nil, fmt.Errorf("reading scan time: %w", err)
	}

	root, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("reading root: %w", err)
	}

	dirCount, err := readCount(r)
	if err != nil {
		return nil, fmt.Errorf("reading directory count: %w", err)
	}

	dirs := make([]snapshot.DirectoryTotal, 0, min(dirCount, preallocCap))

	for i := 0; i < dirCount; i++ {
		d, err := readDir(r)
		if err != nil {
			return nil, fmt.Errorf("decoding directory record %d of %d: %w", i+1, dirCount, err)
		}

		dirs = append(dirs, d)
	}

	fileCount, err := readCount(r)
	if err != nil {
		return nil, fmt.Errorf("reading file count: %w", err)
	}

	files := make([]snapshot.FileRecord, 0, min(fileCount, preallocCap))

	for i := 0; i < fileCount; i++ {
		f, err := readFile(r)
		if err != nil {
			return nil, fmt.Errorf("decoding file record %d of %d: %w", i+1, fileCount, err)
		}

		files = append(files, f)
	}

	return &snapshot.Snapshot{
		Root:     root,
		ScanTime: time.Unix(0, nanos),
		Files:    files,
		Dirs:     dirs,
	}, nil
}

func writeDir(w io.Writer, d snapshot.DirectoryTotal) error {
	if err := writeString(w, d.Path); err != nil {
		return err
	}

	return writeInt64(w, d.Total)
}

func readDir(r io.Reader) (snapshot.DirectoryTotal, error) {
	path, err := readString(r)
	if err != nil {
		return snapshot.DirectoryTotal{}, err
	}

	total, err := readInt64(r)
	if err != nil {
		return snapshot.DirectoryTotal{}, err
	}

	if total < 0 {
		return snapshot.DirectoryTotal{}, fmt.Errorf("negative total %d", total)
	}

	return snapshot.DirectoryTotal{Path: path, Total: total}, nil
}

func writeFile(w io.Writer, f snapshot.FileRecord) error {
	if err := writeString(w, f.Path); err != nil {
		return err
	}

	return writeInt64(w, f.Size)
}

func readFile(r io.Reader) (snapshot.FileRecord, error) {
	path, err := readString(r)
	if err != nil {
		return snapshot.FileRecord{}, err
	}

	size, err := readInt64(r)
	if err != nil {
		return snapshot.FileRecord{}, err
	}

	if size < 0 {
		return snapshot.FileRecord{}, fmt.Errorf("negative size %d", size)
	}

	return snapshot.FileRecord{Path: path, Size: size}, nil
}

func writeCount(w io.Writer, n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("count %d exceeds int32 range", n)
	}

	return writeInt32(w, int32(n))
}

func readCount(r io.Reader) (int, error) {
	n, err := readInt32(r)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, fmt.Errorf("invalid count %d", n)
	}

	return int(n), nil
}

func writeInt32(w io.Writer, v int32) error {
	return binary.Write(w, byteOrder, v)
}

func readInt32(r io.Reader) (int32, error) {
	var v int32

	err := binary.Read(r, byteOrder, &v)

	return v, err
}

func writeInt64(w io.Writer, v int64) error {
	return binary.Write(w, byteOrder, v)
}

func readInt64(r io.Reader) (int64, error) {
	var v int64

	err := binary.Read(r, byteOrder, &v)

	return v, err
}

func writeString(w io.Writer, s string) error {
	if len(s) > maxStringBytes {
		return fmt.Errorf("string length %d exceeds %d bytes", len(s), maxStringBytes)
	}

	if err := binary.Write(w, byteOrder, uint32(len(s))); err != nil {
		return err
	}

	_, err := io.WriteString(w, s)

	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32

	if err := binary.Read(r, byteOrder, &n); err != nil {
		return "", err
	}

	if n > maxStringBytes {
		return "", fmt.Errorf("string length %d exceeds %d bytes", n, maxStringBytes)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}
