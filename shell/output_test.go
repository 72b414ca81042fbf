package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintfPlainWhenNotEditing(t *testing.T) {
	s, ed, _, out := newTestShell(t)
	ed.editing = false
	ed.calls = nil

	s.Printf("scan %s\n", "on")

	assert.Equal(t, "scan on\n", out.String())
	assert.Empty(t, ed.calls, "no save/restore dance without an edit in progress")
}

func TestPrintfPreservesEditedLine(t *testing.T) {
	s, ed, _, out := newTestShell(t)
	ed.editing = true
	ed.prompt = "> "
	ed.line = "conn"
	ed.cursor = 3

	s.Printf("device appeared\n")
	s.Printf("device vanished\n")

	assert.Equal(t, "device appeared\ndevice vanished\n", out.String())
	assert.Equal(t, "conn", ed.line, "line text restored verbatim")
	assert.Equal(t, 3, ed.cursor, "cursor offset restored verbatim")
	assert.Equal(t, "> ", ed.prompt)
}

func TestPrintfWithPromptOverrideActive(t *testing.T) {
	s, ed, _, _ := newTestShell(t)
	ed.editing = true
	ed.prompt = "> "
	s.RequestPrompt("agent", "Confirm:", func(string, any) {}, nil)
	ed.line = "ye"
	ed.cursor = 2
	ed.calls = nil

	s.Printf("background noise\n")

	assert.Equal(t, "[agent] Confirm: ", ed.prompt,
		"the override's message must not be disturbed")
	assert.Equal(t, "ye", ed.line)
	assert.Equal(t, 2, ed.cursor)
	assert.NotContains(t, ed.calls, `replace:"":0`,
		"the line is not blanked while the override is displayed")
}

func TestHexdumpEmpty(t *testing.T) {
	s, _, _, out := newTestShell(t)

	s.Hexdump(nil)
	s.Hexdump([]byte{})
	assert.Empty(t, out.String())
}

func TestHexdumpRowShape(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"one byte", 1},
		{"full row", 16},
		{"row and a half", 24},
		{"several rows", 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.n)
			for i := range buf {
				buf[i] = byte(i)
			}

			s, _, _, out := newTestShell(t)
			s.Hexdump(buf)

			lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
			wantRows := (tt.n + 15) / 16
			require.Len(t, lines, wantRows)

			for row, line := range lines {
				remaining := tt.n - row*16
				if remaining > 16 {
					remaining = 16
				}
				// 1 leading space, 16 three-char hex cells, 2 separator
				// spaces, then the ASCII column.
				assert.Len(t, line, 1+16*3+2+remaining, "row %d", row)
			}
		})
	}
}

func TestHexdumpContent(t *testing.T) {
	s, _, _, out := newTestShell(t)

	s.Hexdump([]byte("AB\x00\x7f"))
	line := out.String()

	assert.Contains(t, line, "41 42 00 7f")
	assert.True(t, strings.HasSuffix(line, "AB..\n"),
		"non-printable bytes render as dots in the ASCII column")
}

func TestHexdumpAlignsPartialRow(t *testing.T) {
	s, _, _, out := newTestShell(t)

	s.Hexdump(bytes.Repeat([]byte{0xaa}, 3))
	line := strings.TrimSuffix(out.String(), "\n")

	hexField := line[:1+16*3]
	assert.Equal(t, "  aa aa aa", strings.TrimRight(hexField, " "),
		"missing cells are space-padded to alignment")
	assert.Equal(t, "...", line[1+16*3+2:],
		"ASCII column holds exactly the row's bytes, 0xaa as dots")
}
