//go:build windows

package open

func revealCommand(path string) (string, []string) {
	return "explorer", []string{path}
}
