package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPromptReplacesPrompt(t *testing.T) {
	s, ed, _, _ := newTestShell(t)
	ed.prompt = "> "

	s.RequestPrompt("agent", "Confirm passkey:", func(string, any) {}, nil)

	assert.Equal(t, "[agent] Confirm passkey: ", ed.prompt)
}

func TestReleaseRestoresPromptAndInvokesOnce(t *testing.T) {
	s, ed, _, _ := newTestShell(t)
	ed.prompt = "> "

	var calls int
	var got string
	var gotData any
	s.RequestPrompt("agent", "Confirm:", func(input string, data any) {
		calls++
		got = input
		gotData = data
	}, 42)

	require.True(t, s.ReleasePrompt("yes"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "yes", got)
	assert.Equal(t, 42, gotData)
	assert.Equal(t, "> ", ed.prompt, "prior prompt decoration restored")

	assert.False(t, s.ReleasePrompt("again"), "release with no prompt pending must fail")
	assert.Equal(t, 1, calls)
}

func TestPromptExclusivity(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	var first, second int
	s.RequestPrompt("a", "first?", func(string, any) { first++ }, nil)
	s.RequestPrompt("b", "second?", func(string, any) { second++ }, nil)

	require.True(t, s.ReleasePrompt("answer"))
	assert.Equal(t, 1, first, "the pending callback must be preserved")
	assert.Zero(t, second, "the later request is dropped, not queued")

	assert.False(t, s.ReleasePrompt("answer"))
}

func TestPromptCallbackMayRequestAgain(t *testing.T) {
	s, ed, _, _ := newTestShell(t)
	ed.prompt = "> "

	var answers []string
	s.RequestPrompt("q", "first?", func(input string, _ any) {
		answers = append(answers, input)
		s.RequestPrompt("q", "second?", func(input string, _ any) {
			answers = append(answers, input)
		}, nil)
	}, nil)

	require.True(t, s.ReleasePrompt("one"))
	assert.Equal(t, "[q] second? ", ed.prompt, "callback may chain a fresh request")
	require.True(t, s.ReleasePrompt("two"))

	assert.Equal(t, []string{"one", "two"}, answers)
	assert.Equal(t, "> ", ed.prompt)
}
