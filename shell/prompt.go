package shell

import (
	"fmt"

	"go.uber.org/zap"
)

// PromptFunc receives the input line that answered a prompt request,
// together with the opaque data value passed to RequestPrompt.
type PromptFunc func(input string, data any)

// promptOverride is the transient record for a pending prompt request.
// At most one override is active at a time.
type promptOverride struct {
	active bool
	fn     PromptFunc
	data   any
	saved  string // prompt text to restore on release
}

// RequestPrompt hijacks the next completed input line as the answer to a
// question: the visible prompt is replaced with "[label] msg " and the next
// line is delivered to fn instead of the command dispatcher.
//
// A request made while another prompt is already pending is silently
// dropped, preserving the in-flight question's caller.
func (s *Shell) RequestPrompt(label, msg string, fn PromptFunc, data any) {
	if s.override.active {
		s.log.Debug("prompt request dropped", zap.Error(ErrPromptPending))
		return
	}

	s.override.saved = s.editor.Prompt()
	s.editor.SetPrompt(fmt.Sprintf("[%s] %s ", label, msg))
	s.editor.Redisplay()

	s.override.active = true
	s.override.fn = fn
	s.override.data = data
}

// ReleasePrompt completes a pending prompt request with input: the prior
// prompt decoration is restored and the captured callback is invoked
// synchronously. The callback and its data are cleared before the call, so
// a callback that issues a new prompt request is not reentered against
// stale state.
//
// It returns false when no prompt is pending, signaling the caller to
// route the line to command dispatch instead.
func (s *Shell) ReleasePrompt(input string) bool {
	if !s.override.active {
		return false
	}

	s.override.active = false
	s.editor.SetPrompt(s.override.saved)

	fn := s.override.fn
	data := s.override.data
	s.override.fn = nil
	s.override.data = nil

	fn(input, data)

	return true
}
