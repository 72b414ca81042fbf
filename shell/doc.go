// Package shell implements an interactive command-shell runtime.
//
// It provides a single-threaded, event-driven front end that reads
// line-oriented input from a terminal (or any byte stream), interleaves it
// with program output and transient modal prompts, dispatches recognized
// commands from a pluggable menu, and terminates cleanly on user exit or
// process signals.
//
// The package consumes its two external collaborators through capability
// interfaces rather than concrete bindings: a LineEditor that owns
// character-level editing, and a Reactor that delivers readiness
// notifications. Any line-editing engine or event loop can be substituted
// behind those contracts; the editline and reactor packages in this module
// provide the default implementations.
//
// # Architecture
//
// The package is organized around these core concepts:
//
//   - Shell: The central orchestrator holding the menu tables, the
//     prompt-override record, the input and signal bindings, and the
//     run-loop lifecycle.
//   - MenuEntry: A named command with handler, description, and optional
//     argument completer, supplied by the embedding application.
//   - Prompt override: A mechanism letting a command handler capture the
//     next input line as the answer to a question instead of routing it
//     to command dispatch.
//   - LineEditor / Reactor: Capability contracts for the line-editing
//     engine and the readiness-notification loop.
//
// # Quick Start
//
//	ed := editline.New(os.Stdout)
//	loop := reactor.New(nil)
//	sh := shell.New(ed, loop, &shell.Options{Version: "1.0.0"})
//
//	sh.SetMenu([]shell.MenuEntry{
//	    {Name: "echo", ArgSpec: "<text>", Description: "Print text back",
//	        Handler: func(arg string) { sh.Printf("%s\n", arg) }},
//	})
//	sh.SetPrompt("> ")
//	sh.Attach(os.Stdin)
//	sh.Run()
//
// All shell state is mutated only from reactor callbacks, which run to
// completion on a single goroutine; no locking is required or performed.
package shell
