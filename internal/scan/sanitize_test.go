package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ascii", "/data/file.txt", "/data/file.txt"},
		{"unicode stays", "/data/héllo/世界.txt", "/data/héllo/世界.txt"},
		{"space stays", "/data/with space", "/data/with space"},
		{"control byte", "/data/bad\x01name", "/data/bad?name"},
		{"escape sequence", "/data/esc\x1b[31mred", "/data/esc?[31mred"},
		{"delete char", "/data/del\x7f", "/data/del?"},
		{"tab", "/data/tab\tname", "/data/tab?name"},
		{"newline", "/data/line\nbreak", "/data/line?break"},
		{"invalid utf8", "/data/\xff\xfe", "/data/??"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeDisplay(tt.in))
		})
	}
}
