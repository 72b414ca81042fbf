package shell

// HandlerFunc executes a menu command. arg is the raw argument text after
// the command name, with the separating whitespace removed; it may be
// empty. Callers parse it themselves.
type HandlerFunc func(arg string)

// ArgCompleter supplies argument candidates for a menu command given the
// partial word being completed.
type ArgCompleter func(text string) []string

// DisplayFunc renders a candidate list, replacing the editor's default
// match listing.
type DisplayFunc func(words []string)

// MenuEntry describes a single shell command. Entries are immutable once
// registered. Name must be unique within its table; ArgSpec and
// Description are display-only. Completer and Display are optional.
type MenuEntry struct {
	Name        string
	ArgSpec     string
	Handler     HandlerFunc
	Description string
	Completer   ArgCompleter
	Display     DisplayFunc
}

// menuRegistry holds the fixed built-in command table and the single
// externally supplied table. The external table is set at most once.
type menuRegistry struct {
	builtin  []MenuEntry
	external []MenuEntry
	attached bool
}

// set attaches the external table. It succeeds once; a second call, or a
// call with an empty table, fails without mutating the attached table.
// A trailing sentinel entry with an empty Name terminates the table early.
func (m *menuRegistry) set(entries []MenuEntry) bool {
	if m.attached || len(entries) == 0 {
		return false
	}
	for i, e := range entries {
		if e.Name == "" {
			entries = entries[:i]
			break
		}
	}
	if len(entries) == 0 {
		return false
	}
	m.external = entries
	m.attached = true
	return true
}

// resolve returns the entry for name, searching the external table first
// so that external commands shadow built-ins. The match is exact and
// case-sensitive; entries without a handler are skipped.
func (m *menuRegistry) resolve(name string) *MenuEntry {
	for _, table := range [][]MenuEntry{m.external, m.builtin} {
		for i := range table {
			if table[i].Name == name && table[i].Handler != nil {
				return &table[i]
			}
		}
	}
	return nil
}

// lookup returns the entry for name for completion purposes, searching the
// built-in table first and then the external table. Unlike resolve it does
// not require a handler.
func (m *menuRegistry) lookup(name string) *MenuEntry {
	for _, table := range [][]MenuEntry{m.builtin, m.external} {
		for i := range table {
			if table[i].Name == name {
				return &table[i]
			}
		}
	}
	return nil
}

// listForHelp returns the external entries in registration order followed
// by the built-in entries in fixed order. Used purely for display.
func (m *menuRegistry) listForHelp() []MenuEntry {
	out := make([]MenuEntry, 0, len(m.external)+len(m.builtin))
	out = append(out, m.external...)
	out = append(out, m.builtin...)
	return out
}
