//go:build darwin

package open

func revealCommand(path string) (string, []string) {
	return "open", []string{path}
}
