package shell

import "strings"

// cmdWidth is the display width of the command + argument column in the
// help listing.
const cmdWidth = 48

// splitCommand tokenizes a raw input line into a command name and its
// argument text. The line splits on the first run of whitespace; a single
// trailing space in the argument is stripped.
func splitCommand(raw string) (cmd, arg string) {
	raw = strings.TrimLeft(raw, " ")
	i := strings.IndexByte(raw, ' ')
	if i < 0 {
		return raw, ""
	}
	cmd = raw[:i]
	arg = strings.TrimLeft(raw[i+1:], " ")
	arg = strings.TrimSuffix(arg, " ")
	return cmd, arg
}

// execute tokenizes raw and dispatches it through the menu tables. An
// unrecognized command is reported to the terminal and the loop continues;
// nothing here is fatal.
func (s *Shell) execute(raw string) {
	cmd, arg := splitCommand(raw)
	if cmd == "" {
		return
	}

	entry := s.menu.resolve(cmd)
	if entry == nil {
		s.Printf("Invalid command\n")
		return
	}
	entry.Handler(arg)
}

func (s *Shell) cmdVersion(string) {
	s.Printf("Version %s\n", s.version)
}

func (s *Shell) cmdQuit(string) {
	s.reactor.RequestStop()
}

func (s *Shell) cmdHelp(string) {
	s.printMenu()
}

// printMenu renders the full menu listing: external entries in
// registration order, then the built-ins.
func (s *Shell) printMenu() {
	s.Printf("Available commands:\n")
	s.Printf("-------------------\n")
	for _, e := range s.menu.listForHelp() {
		pad := cmdWidth - len(e.Name)
		if pad < 0 {
			pad = 0
		}
		s.Printf("%s %-*s %s\n", e.Name, pad, e.ArgSpec, e.Description)
	}
}
