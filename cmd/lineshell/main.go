// Command lineshell is a demonstration embedding of the shell runtime:
// it wires the editline editor and the channel reactor to stdin, registers
// a small menu, and runs until quit, Ctrl-D, or a terminating signal.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/martinemde/lineshell/editline"
	"github.com/martinemde/lineshell/reactor"
	"github.com/martinemde/lineshell/shell"
)

const version = "0.1.0"

func main() {
	var debug bool

	root := &cobra.Command{
		Use:           "lineshell",
		Short:         "Interactive command shell demo",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(debug)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.Flags().BoolVar(&debug, "debug", false, "enable diagnostic logging to stderr")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(debug bool) error {
	logger := zap.NewNop()
	if debug {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = dev
		defer logger.Sync()
	}

	out := io.Writer(os.Stdout)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer term.Restore(fd, state)
		// Raw mode no longer translates newlines on output.
		out = crlfWriter{os.Stdout}
	}

	ed := editline.New(out)
	loop := reactor.New(logger)
	sh := shell.New(ed, loop, &shell.Options{
		Version: version,
		Output:  out,
		Logger:  logger,
	})

	sh.SetMenu(demoMenu(sh))
	sh.SetPrompt("> ")
	sh.Attach(os.Stdin)
	sh.Run()

	return nil
}

// demoMenu exercises dispatch, hexdump output, an argument completer, and
// the prompt override.
func demoMenu(sh *shell.Shell) []shell.MenuEntry {
	powerStates := []string{"on", "off"}

	return []shell.MenuEntry{
		{
			Name:        "echo",
			ArgSpec:     "<text>",
			Description: "Print text back",
			Handler: func(arg string) {
				sh.Printf("%s\n", arg)
			},
		},
		{
			Name:        "dump",
			ArgSpec:     "<text>",
			Description: "Hexdump text",
			Handler: func(arg string) {
				sh.Hexdump([]byte(arg))
			},
		},
		{
			Name:        "power",
			ArgSpec:     "<on/off>",
			Description: "Set power state",
			Handler: func(arg string) {
				switch arg {
				case "on", "off":
					sh.Printf("Power %s\n", arg)
				default:
					sh.Printf("Usage: power <on/off>\n")
				}
			},
			Completer: func(text string) []string {
				var words []string
				for _, w := range powerStates {
					if strings.HasPrefix(w, text) {
						words = append(words, w)
					}
				}
				return words
			},
		},
		{
			Name:        "pair",
			Description: "Simulate a pairing confirmation",
			Handler: func(string) {
				sh.RequestPrompt("agent", "Confirm passkey 123456 (yes/no):",
					func(input string, _ any) {
						if input == "yes" {
							sh.Printf("Pairing confirmed\n")
							return
						}
						sh.Printf("Pairing rejected\n")
					}, nil)
			},
		},
	}
}

// crlfWriter rewrites bare newlines as CR LF for terminals in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	out := make([]byte, 0, len(p)+8)
	for i, b := range p {
		if b == '\n' && (i == 0 || p[i-1] != '\r') {
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
