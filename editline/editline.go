package editline

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/martinemde/lineshell/shell"
)

// DefaultHistoryLimit caps the in-session history; the oldest entry is
// evicted first.
const DefaultHistoryLimit = 500

const (
	ctrlA = 0x01
	ctrlB = 0x02
	ctrlD = 0x04
	ctrlE = 0x05
	ctrlF = 0x06
	ctrlH = 0x08
	ctrlK = 0x0b
	ctrlL = 0x0c
	ctrlU = 0x15
	ctrlW = 0x17
	esc   = 0x1b
	del   = 0x7f
)

// Editor is a byte-fed line editor writing to a single output stream.
// It implements shell.LineEditor. Not safe for concurrent use; all calls
// must come from the goroutine that owns the reactor loop.
type Editor struct {
	out    io.Writer
	prompt string

	buf    []rune
	cursor int

	installed   bool
	dispatching bool
	cb          shell.LineCallback
	completer   shell.Completer

	history   []string
	histLimit int
	histIdx   int
	stash     string
	stashed   bool

	escSeq  []byte
	partial []byte
}

// New creates an Editor writing to out.
func New(out io.Writer) *Editor {
	return &Editor{
		out:       out,
		histLimit: DefaultHistoryLimit,
	}
}

// Install enters callback-driven read mode: subsequent Feed calls edit the
// line and cb receives each completed line. The prompt is displayed.
func (e *Editor) Install(cb shell.LineCallback) {
	e.cb = cb
	e.installed = true
	e.Redisplay()
}

// Uninstall leaves callback-driven read mode, dropping the callback and
// clearing the display line.
func (e *Editor) Uninstall() {
	if !e.installed {
		return
	}
	e.installed = false
	e.cb = nil
	io.WriteString(e.out, "\r\x1b[K")
}

// Feed pumps input bytes into the editor. Bytes arriving while the editor
// is not installed are discarded.
func (e *Editor) Feed(p []byte) {
	if !e.installed {
		return
	}
	for _, b := range p {
		e.feedByte(b)
		if !e.installed {
			return
		}
	}
}

// Prompt returns the current prompt text.
func (e *Editor) Prompt() string { return e.prompt }

// SetPrompt replaces the prompt text without redrawing.
func (e *Editor) SetPrompt(text string) { e.prompt = text }

// Line returns the current line buffer text.
func (e *Editor) Line() string { return string(e.buf) }

// Cursor returns the cursor position as a rune offset into the line.
func (e *Editor) Cursor() int { return e.cursor }

// ReplaceLine replaces the line buffer and cursor without redrawing.
// The cursor is clamped to the new line's bounds.
func (e *Editor) ReplaceLine(text string, cursor int) {
	e.buf = []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(e.buf) {
		cursor = len(e.buf)
	}
	e.cursor = cursor
}

// Editing reports whether an edit is in progress: the editor is installed
// and not currently dispatching a completed line.
func (e *Editor) Editing() bool {
	return e.installed && !e.dispatching
}

// Redisplay redraws the prompt and the line on the current row and places
// the terminal cursor at the editing position.
func (e *Editor) Redisplay() {
	fmt.Fprintf(e.out, "\r\x1b[K%s%s", e.prompt, string(e.buf))
	if back := len(e.buf) - e.cursor; back > 0 {
		fmt.Fprintf(e.out, "\x1b[%dD", back)
	}
}

// AddHistory appends line to the in-session history, evicting the oldest
// entry past the limit. History navigation restarts at the newest entry.
func (e *Editor) AddHistory(line string) {
	e.history = append(e.history, line)
	if len(e.history) > e.histLimit {
		e.history = e.history[1:]
	}
	e.histIdx = len(e.history)
	e.stashed = false
}

// LastHistory returns the most recent history entry, if any.
func (e *Editor) LastHistory() (string, bool) {
	if len(e.history) == 0 {
		return "", false
	}
	return e.history[len(e.history)-1], true
}

// SetCompleter registers the completion callback invoked on Tab.
func (e *Editor) SetCompleter(c shell.Completer) { e.completer = c }

func (e *Editor) feedByte(b byte) {
	if len(e.escSeq) > 0 {
		e.feedEscape(b)
		return
	}
	if len(e.partial) > 0 {
		e.feedUTF8(b)
		return
	}

	switch b {
	case '\r', '\n':
		e.finishLine()
	case ctrlD:
		if len(e.buf) == 0 {
			e.endOfInput()
		} else {
			e.deleteAt()
		}
	case ctrlH, del:
		e.backspace()
	case ctrlA:
		e.cursor = 0
		e.Redisplay()
	case ctrlE:
		e.cursor = len(e.buf)
		e.Redisplay()
	case ctrlB:
		e.moveCursor(-1)
	case ctrlF:
		e.moveCursor(1)
	case ctrlK:
		e.buf = e.buf[:e.cursor]
		e.Redisplay()
	case ctrlU:
		e.buf = append([]rune{}, e.buf[e.cursor:]...)
		e.cursor = 0
		e.Redisplay()
	case ctrlW:
		e.wordRubout()
	case ctrlL:
		io.WriteString(e.out, "\x1b[H\x1b[2J")
		e.Redisplay()
	case '\t':
		e.completeWord()
	case esc:
		e.escSeq = append(e.escSeq, b)
	default:
		if b >= 0x20 && b < del {
			e.insertRune(rune(b))
		} else if b >= 0x80 {
			e.feedUTF8(b)
		}
	}
}

// feedEscape consumes one byte of a pending escape sequence and applies
// the key it completes.
func (e *Editor) feedEscape(b byte) {
	e.escSeq = append(e.escSeq, b)

	if len(e.escSeq) == 2 {
		if b != '[' && b != 'O' {
			e.escSeq = nil
		}
		return
	}
	if (b >= '0' && b <= '9') || b == ';' {
		return
	}

	seq := e.escSeq
	e.escSeq = nil

	switch b {
	case 'A':
		e.historyPrev()
	case 'B':
		e.historyNext()
	case 'C':
		e.moveCursor(1)
	case 'D':
		e.moveCursor(-1)
	case 'H':
		e.cursor = 0
		e.Redisplay()
	case 'F':
		e.cursor = len(e.buf)
		e.Redisplay()
	case '~':
		switch string(seq[2 : len(seq)-1]) {
		case "1", "7":
			e.cursor = 0
			e.Redisplay()
		case "3":
			e.deleteAt()
		case "4", "8":
			e.cursor = len(e.buf)
			e.Redisplay()
		}
	}
}

// feedUTF8 accumulates multi-byte sequences and inserts the rune once it
// is complete. Malformed sequences are dropped.
func (e *Editor) feedUTF8(b byte) {
	e.partial = append(e.partial, b)
	if utf8.FullRune(e.partial) {
		r, _ := utf8.DecodeRune(e.partial)
		e.partial = nil
		if r != utf8.RuneError {
			e.insertRune(r)
		}
		return
	}
	if len(e.partial) >= utf8.UTFMax {
		e.partial = nil
	}
}

func (e *Editor) insertRune(r rune) {
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = r
	e.cursor++
	e.Redisplay()
}

func (e *Editor) backspace() {
	if e.cursor == 0 {
		return
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.cursor--
	e.Redisplay()
}

func (e *Editor) deleteAt() {
	if e.cursor >= len(e.buf) {
		return
	}
	e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
	e.Redisplay()
}

func (e *Editor) moveCursor(delta int) {
	next := e.cursor + delta
	if next < 0 || next > len(e.buf) {
		return
	}
	e.cursor = next
	e.Redisplay()
}

// wordRubout deletes back over trailing spaces, then the word before the
// cursor.
func (e *Editor) wordRubout() {
	start := e.cursor
	for start > 0 && e.buf[start-1] == ' ' {
		start--
	}
	for start > 0 && e.buf[start-1] != ' ' {
		start--
	}
	if start == e.cursor {
		return
	}
	e.buf = append(e.buf[:start], e.buf[e.cursor:]...)
	e.cursor = start
	e.Redisplay()
}

// finishLine completes the current line: the buffer is cleared, history
// navigation resets, and the callback receives the text. A fresh prompt is
// drawn afterward unless the callback uninstalled the editor.
func (e *Editor) finishLine() {
	line := string(e.buf)
	io.WriteString(e.out, "\r\n")
	e.buf = e.buf[:0]
	e.cursor = 0
	e.histIdx = len(e.history)
	e.stashed = false

	if cb := e.cb; cb != nil {
		e.dispatching = true
		cb(line, false)
		e.dispatching = false
	}
	if e.installed {
		e.Redisplay()
	}
}

// endOfInput reports end-of-stream to the callback. The line buffer is
// left alone so the callback can decide what to display.
func (e *Editor) endOfInput() {
	if cb := e.cb; cb != nil {
		e.dispatching = true
		cb("", true)
		e.dispatching = false
	}
}

func (e *Editor) historyPrev() {
	if e.histIdx == 0 {
		return
	}
	if e.histIdx == len(e.history) {
		e.stash = string(e.buf)
		e.stashed = true
	}
	e.histIdx--
	e.ReplaceLine(e.history[e.histIdx], len([]rune(e.history[e.histIdx])))
	e.Redisplay()
}

func (e *Editor) historyNext() {
	if e.histIdx >= len(e.history) {
		return
	}
	e.histIdx++
	if e.histIdx == len(e.history) {
		text := ""
		if e.stashed {
			text = e.stash
		}
		e.ReplaceLine(text, len([]rune(text)))
	} else {
		e.ReplaceLine(e.history[e.histIdx], len([]rune(e.history[e.histIdx])))
	}
	e.Redisplay()
}

// completeWord runs one completion cycle for the word under the cursor:
// a unique candidate replaces the word, multiple candidates extend it to
// their common prefix or are listed, and no candidates leave the line
// untouched.
func (e *Editor) completeWord() {
	if e.completer == nil {
		return
	}

	line := string(e.buf)
	end := len(string(e.buf[:e.cursor]))
	begin := strings.LastIndexByte(line[:end], ' ') + 1

	c := e.completer(line, begin, end)
	if c == nil || len(c.Words) == 0 {
		return
	}

	word := line[begin:end]
	if len(c.Words) == 1 {
		e.replaceSpan(begin, end, c.Words[0]+" ")
		return
	}

	if prefix := commonPrefix(c.Words); len(prefix) > len(word) {
		e.replaceSpan(begin, end, prefix)
		return
	}

	if c.Display != nil {
		c.Display(c.Words)
	} else {
		io.WriteString(e.out, "\r\n"+strings.Join(c.Words, "  ")+"\r\n")
	}
	e.Redisplay()
}

// replaceSpan substitutes line[begin:end] (byte offsets) with repl and
// places the cursor after the replacement.
func (e *Editor) replaceSpan(begin, end int, repl string) {
	line := string(e.buf)
	head := line[:begin] + repl
	e.buf = []rune(head + line[end:])
	e.cursor = utf8.RuneCountInString(head)
	e.Redisplay()
}

func commonPrefix(words []string) string {
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
