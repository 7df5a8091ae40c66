//go:build !windows && !darwin

package snapshot

const caseInsensitivePaths = false
