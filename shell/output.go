package shell

import (
	"fmt"
	"strings"
)

const hexdigits = "0123456789abcdef"

// Printf prints formatted text to the terminal while preserving an
// in-progress edited line: the line text and cursor are saved, the line is
// suppressed for the duration of the write, and both are restored verbatim
// afterward. While a prompt override is active its displayed message is
// left untouched; only the line itself is saved and restored.
func (s *Shell) Printf(format string, args ...any) {
	editing := s.editor.Editing()

	var savedLine string
	var savedCursor int
	var savedPrompt string

	if editing {
		savedLine = s.editor.Line()
		savedCursor = s.editor.Cursor()
		if !s.override.active {
			savedPrompt = s.editor.Prompt()
			s.editor.SetPrompt("")
			s.editor.ReplaceLine("", 0)
			s.editor.Redisplay()
		}
	}

	fmt.Fprintf(s.out, format, args...)

	if editing {
		if !s.override.active {
			s.editor.SetPrompt(savedPrompt)
		}
		s.editor.ReplaceLine(savedLine, savedCursor)
		s.editor.Redisplay()
	}
}

// Hexdump prints buf as a fixed-width hex and ASCII dump, 16 bytes per
// row: two-hex-digit groups separated by spaces, a trailing ASCII column
// with non-printable bytes rendered as '.', and the partial final row
// space-padded to alignment. An empty buffer prints nothing.
func (s *Shell) Hexdump(buf []byte) {
	for off := 0; off < len(buf); off += 16 {
		row := buf[off:]
		if len(row) > 16 {
			row = row[:16]
		}
		s.Printf("%s\n", hexdumpRow(row))
	}
}

// hexdumpRow renders one row of at most 16 bytes.
func hexdumpRow(row []byte) string {
	var b strings.Builder
	b.WriteByte(' ')
	for i := 0; i < 16; i++ {
		b.WriteByte(' ')
		if i < len(row) {
			b.WriteByte(hexdigits[row[i]>>4])
			b.WriteByte(hexdigits[row[i]&0xf])
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString("  ")
	for _, c := range row {
		if c >= 0x20 && c < 0x7f {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
