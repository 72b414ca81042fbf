package shell

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Binding names used with the reactor.
const (
	inputBinding  = "input"
	signalBinding = "signals"
)

// Sentinel errors for configuration rejections. The boolean-returning
// methods report the same conditions; these exist for callers that prefer
// errors.Is.
var (
	ErrMenuAttached  = errors.New("shell: menu already attached")
	ErrInputAttached = errors.New("shell: input already attached")
	ErrPromptPending = errors.New("shell: prompt already pending")
)

// Options configures a Shell. A nil Options uses all defaults.
type Options struct {
	// Version is printed by the version built-in.
	Version string
	// Output receives all terminal output. Defaults to os.Stdout.
	Output io.Writer
	// Logger receives diagnostic records about rejected configuration
	// and resource failures; user-visible text never goes through it.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// Shell is the central orchestrator of the command-shell runtime. All of
// its state is owned by the single goroutine executing the reactor loop;
// construct it, attach a menu and an input stream, then call Run.
type Shell struct {
	id      string
	editor  LineEditor
	reactor Reactor
	out     io.Writer
	log     *zap.Logger
	version string

	menu     menuRegistry
	override promptOverride

	active     bool
	inputBound bool
	terminated bool
	signals    *signalSource
}

// New creates a Shell bound to the given line editor and reactor and
// installs the editor's line callback and completer. The menu should be
// attached before Run.
func New(editor LineEditor, r Reactor, opts *Options) *Shell {
	if opts == nil {
		opts = &Options{}
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	s := &Shell{
		id:      uuid.New().String(),
		editor:  editor,
		reactor: r,
		out:     out,
		version: opts.Version,
		active:  true,
	}
	s.log = log.With(zap.String("shell_id", s.id))

	s.menu.builtin = []MenuEntry{
		{Name: "version", Handler: s.cmdVersion, Description: "Display version"},
		{Name: "quit", Handler: s.cmdQuit, Description: "Quit program"},
		{Name: "exit", Handler: s.cmdQuit, Description: "Quit program"},
		{Name: "help", Handler: s.cmdHelp, Description: "Display help about this program"},
	}

	editor.Install(s.onLine)
	editor.SetCompleter(s.complete)

	return s
}

// ID returns the shell's session identifier.
func (s *Shell) ID() string { return s.id }

// SetMenu attaches the externally supplied command table. It succeeds
// once; a second call with any table fails and never mutates the first.
func (s *Shell) SetMenu(entries []MenuEntry) bool {
	if !s.menu.set(entries) {
		s.log.Debug("menu rejected", zap.Error(ErrMenuAttached))
		return false
	}
	return true
}

// SetPrompt replaces the prompt text and redisplays the current line.
// It is a no-op outside the init-to-shutdown window.
func (s *Shell) SetPrompt(text string) {
	if !s.active {
		return
	}
	s.editor.SetPrompt(text)
	s.editor.Redisplay()
}

// Attach binds the primary input stream: bytes that become readable are
// pumped into the line editor, and a disconnect terminates the run loop.
// It fails if an input is already bound; a repeated attach is refused,
// not replaced. The shell does not take ownership of src: teardown leaves
// it open for the caller.
func (s *Shell) Attach(src io.Reader) bool {
	if s.inputBound {
		s.log.Debug("attach refused", zap.Error(ErrInputAttached))
		return false
	}
	if err := s.reactor.Register(inputBinding, src, s.onInputReady, s.onInputHangup); err != nil {
		s.log.Warn("input binding failed", zap.Error(err))
		return false
	}
	s.inputBound = true
	return true
}

// Detach releases the primary input binding. It fails if none is bound.
func (s *Shell) Detach() bool {
	if !s.inputBound {
		return false
	}
	s.reactor.Unregister(inputBinding)
	s.inputBound = false
	return true
}

// Stop requests cooperative termination of the run loop. The intent is
// consumed at the top of the reactor's next iteration; the in-flight
// callback always completes first.
func (s *Shell) Stop() {
	s.reactor.RequestStop()
}

// Run binds the signal stream, drives the reactor until a stop is
// requested, then tears everything down symmetrically: any pending prompt
// override is released with empty input, the input binding is detached,
// the signal binding is destroyed, and the editor leaves callback mode.
//
// Failure to bind the signal stream is reported to the log and the shell
// continues without signal handling.
func (s *Shell) Run() {
	s.bindSignals()

	s.reactor.Run()

	s.ReleasePrompt("")
	s.Detach()
	s.unbindSignals()
	s.editor.Uninstall()
	s.active = false
}

func (s *Shell) onInputReady(p []byte) {
	s.editor.Feed(p)
}

func (s *Shell) onInputHangup() {
	s.reactor.RequestStop()
}

// onLine is the line-completion pipeline, invoked by the editor for every
// completed input line.
func (s *Shell) onLine(line string, eof bool) {
	if eof {
		// End of stream reads as if the user typed quit.
		s.editor.ReplaceLine("quit", len("quit"))
		s.editor.Redisplay()
		s.newline()
		s.reactor.RequestStop()
		return
	}

	if strings.TrimSpace(line) == "" {
		return
	}

	if s.ReleasePrompt(line) {
		return
	}

	if last, ok := s.editor.LastHistory(); !ok || last != line {
		s.editor.AddHistory(line)
	}

	s.execute(line)
}

func (s *Shell) newline() {
	io.WriteString(s.out, "\n")
}
