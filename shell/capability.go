package shell

import "io"

// LineCallback receives each completed input line from the line editor.
// eof is true when the input stream signaled end-of-input (for example
// Ctrl-D on an empty line); in that case line is empty.
type LineCallback func(line string, eof bool)

// Completer supplies candidates for the word line[begin:end], where begin
// and end are byte offsets into line. A nil result means no candidates are
// offered and the editor must not insert a literal tab.
type Completer func(line string, begin, end int) *Candidates

// Candidates is the result of a completion request.
type Candidates struct {
	// Words holds the candidate replacements for the completed word,
	// in display order.
	Words []string
	// Display, when non-nil, renders the candidate list instead of the
	// editor's default listing.
	Display DisplayFunc
}

// LineEditor is the line-editing capability consumed by the shell. It owns
// the single active editing session: the line buffer, the cursor, and the
// in-session history. Implementations are driven entirely by Feed; they
// must not read from any descriptor on their own.
//
// ReplaceLine and Cursor use rune positions within the current line.
// Editing reports whether an edit is in progress; it is false while the
// editor is uninstalled and while a completed line is being dispatched.
type LineEditor interface {
	Install(cb LineCallback)
	Uninstall()
	Feed(p []byte)

	Prompt() string
	SetPrompt(text string)

	ReplaceLine(text string, cursor int)
	Line() string
	Cursor() int
	Editing() bool
	Redisplay()

	AddHistory(line string)
	LastHistory() (string, bool)

	SetCompleter(c Completer)
}

// Reactor is the readiness-notification capability consumed by the shell.
// Register binds a named source; onRead is invoked with the bytes that
// became available and onHangup once when the source is exhausted or
// fails. The reactor never closes a source; the registrant keeps
// ownership. Callbacks run sequentially on the goroutine executing Run.
// RequestStop sets a stop intent that Run consumes at the top of its
// next iteration; the in-flight callback always completes first.
type Reactor interface {
	Register(name string, src io.Reader, onRead func(p []byte), onHangup func()) error
	Unregister(name string)
	Run()
	RequestStop()
}
