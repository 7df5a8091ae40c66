//go:build !windows && !darwin

package open

func revealCommand(path string) (string, []string) {
	return "xdg-open", []string{path}
}
