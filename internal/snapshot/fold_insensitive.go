//go:build windows || darwin

package snapshot

const caseInsensitivePaths = true
