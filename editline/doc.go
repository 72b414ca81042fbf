// Package editline implements a byte-fed line-editing engine satisfying
// the shell.LineEditor contract.
//
// The editor never reads from a descriptor itself: whoever owns the input
// stream pushes bytes into Feed as they become available, and the editor
// echoes keystrokes, maintains the line buffer and cursor, navigates the
// in-session history, and invokes the installed callback on each completed
// line. Rendering uses carriage return and erase-to-end-of-line sequences
// only, so any VT100-compatible terminal works.
//
// Emacs-style keys are supported: Ctrl-A/E for home/end, Ctrl-B/F and the
// arrow keys for cursor movement, Ctrl-K/U for kill to end/start, Ctrl-W
// for word rubout, Ctrl-L to clear the screen, Tab for completion, and
// Ctrl-D for delete-or-EOF. Up/Down arrows walk the history.
package editline
