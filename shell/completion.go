package shell

import "strings"

// completionScan iterates the command-name candidates for a prefix, one
// match per call: the built-in table first, falling through to the
// external table. The iteration state is explicit and restartable; a fresh
// scan is created for each completion cycle.
type completionScan struct {
	tables [][]MenuEntry
	table  int
	index  int
	prefix string
}

func newCompletionScan(builtin, external []MenuEntry, prefix string) *completionScan {
	return &completionScan{
		tables: [][]MenuEntry{builtin, external},
		prefix: prefix,
	}
}

// Next returns the next command name matching the prefix, or false when
// both tables are exhausted.
func (c *completionScan) Next() (string, bool) {
	for c.table < len(c.tables) {
		entries := c.tables[c.table]
		for c.index < len(entries) {
			e := entries[c.index]
			c.index++
			if strings.HasPrefix(e.Name, c.prefix) {
				return e.Name, true
			}
		}
		c.table++
		c.index = 0
	}
	return "", false
}

// Reset restarts the scan from the top of the built-in table.
func (c *completionScan) Reset() {
	c.table = 0
	c.index = 0
}

// complete is the Completer installed on the line editor. The word being
// completed is line[begin:end]; begin 0 means the command token itself is
// being completed, anything else is an argument position.
func (s *Shell) complete(line string, begin, end int) *Candidates {
	text := line[begin:end]

	if begin > 0 {
		return s.completeArgument(line, begin, text)
	}

	scan := newCompletionScan(s.menu.builtin, s.menu.external, text)
	var words []string
	for {
		w, ok := scan.Next()
		if !ok {
			break
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil
	}
	return &Candidates{Words: words}
}

// completeArgument delegates to the argument completer declared by the
// command already typed before the cursor's word. With no completer
// declared, no candidates are offered.
func (s *Shell) completeArgument(line string, begin int, text string) *Candidates {
	// One trailing separator sits between the command token and the word
	// being completed.
	cmd := line[:begin-1]

	entry := s.menu.lookup(cmd)
	if entry == nil || entry.Completer == nil {
		return nil
	}

	words := entry.Completer(text)
	if len(words) == 0 {
		return nil
	}
	return &Candidates{Words: words, Display: entry.Display}
}
