package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMenuOnce(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	first := []MenuEntry{{Name: "scan", Handler: func(string) {}, Description: "Scan"}}
	second := []MenuEntry{{Name: "other", Handler: func(string) {}}}

	require.True(t, s.SetMenu(first))
	assert.False(t, s.SetMenu(second), "second menu must be rejected")

	entry := s.menu.resolve("scan")
	require.NotNil(t, entry, "first table must remain attached")
	assert.Nil(t, s.menu.resolve("other"))
}

func TestSetMenuEmptyFails(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	assert.False(t, s.SetMenu(nil))
	assert.False(t, s.SetMenu([]MenuEntry{}))
	assert.False(t, s.SetMenu([]MenuEntry{{}}), "a lone sentinel is an empty table")

	// The failed attempts must not consume the one attach.
	assert.True(t, s.SetMenu([]MenuEntry{{Name: "scan", Handler: func(string) {}}}))
}

func TestSetMenuSentinelTerminates(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	require.True(t, s.SetMenu([]MenuEntry{
		{Name: "scan", Handler: func(string) {}},
		{},
		{Name: "ignored", Handler: func(string) {}},
	}))

	assert.NotNil(t, s.menu.resolve("scan"))
	assert.Nil(t, s.menu.resolve("ignored"), "entries past the sentinel are dropped")
}

func TestResolveExternalWins(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	var externalCalled bool
	require.True(t, s.SetMenu([]MenuEntry{
		{Name: "help", Handler: func(string) { externalCalled = true }, Description: "Custom help"},
	}))

	entry := s.menu.resolve("help")
	require.NotNil(t, entry)
	entry.Handler("")
	assert.True(t, externalCalled, "external entry must shadow the built-in")
}

func TestResolveCaseSensitive(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	assert.NotNil(t, s.menu.resolve("version"))
	assert.Nil(t, s.menu.resolve("Version"))
	assert.Nil(t, s.menu.resolve("frobnicate"))
}

func TestResolveSkipsNilHandlers(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	require.True(t, s.SetMenu([]MenuEntry{
		{Name: "quit", Description: "No handler"},
	}))

	entry := s.menu.resolve("quit")
	require.NotNil(t, entry, "the built-in must win over a handlerless external entry")
	assert.Equal(t, "Quit program", entry.Description)
}

func TestListForHelpOrder(t *testing.T) {
	s, _, _, _ := newTestShell(t)

	require.True(t, s.SetMenu([]MenuEntry{
		{Name: "zeta", Handler: func(string) {}},
		{Name: "alpha", Handler: func(string) {}},
	}))

	var names []string
	for _, e := range s.menu.listForHelp() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "version", "quit", "exit", "help"}, names,
		"external entries in registration order, then built-ins in fixed order")
}
