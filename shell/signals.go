package shell

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Signal records carried on the signal stream, one byte per delivered
// signal. The interrupt and terminate signals are diverted from their
// default disposition for the lifetime of the stream and consumed only
// through these records.
const (
	sigRecInterrupt byte = 0x02
	sigRecTerminate byte = 0x0f
)

// signalSource converts process signals into ordinary reactor readiness
// events: signals arriving on a notification channel are encoded as
// single-byte records on an in-process pipe, so the run loop handles them
// like any other input and never re-enters callback code from signal
// context.
type signalSource struct {
	pr   *io.PipeReader
	pw   *io.PipeWriter
	ch   chan os.Signal
	once sync.Once
}

func newSignalSource() *signalSource {
	src := &signalSource{
		ch: make(chan os.Signal, 4),
	}
	src.pr, src.pw = io.Pipe()
	signal.Notify(src.ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range src.ch {
			var rec byte
			switch sig {
			case os.Interrupt:
				rec = sigRecInterrupt
			case syscall.SIGTERM:
				rec = sigRecTerminate
			default:
				continue
			}
			if _, err := src.pw.Write([]byte{rec}); err != nil {
				return
			}
		}
		src.pw.Close()
	}()

	return src
}

func (src *signalSource) Read(p []byte) (int, error) {
	return src.pr.Read(p)
}

// Close restores the default signal disposition and releases the pipe.
// Safe to call multiple times; the reactor also closes the source when
// the binding is destroyed.
func (src *signalSource) Close() error {
	src.once.Do(func() {
		signal.Stop(src.ch)
		close(src.ch)
		src.pr.Close()
	})
	return nil
}

// bindSignals registers the signal stream with the reactor. Failure is
// non-fatal: the shell continues without signal handling.
func (s *Shell) bindSignals() {
	src := newSignalSource()
	if err := s.reactor.Register(signalBinding, src, s.onSignalReady, s.onSignalHangup); err != nil {
		s.log.Warn("signal binding failed, continuing without signal handling", zap.Error(err))
		src.Close()
		return
	}
	s.signals = src
}

func (s *Shell) unbindSignals() {
	if s.signals == nil {
		return
	}
	s.reactor.Unregister(signalBinding)
	s.signals.Close()
	s.signals = nil
}

func (s *Shell) onSignalReady(p []byte) {
	for _, rec := range p {
		s.handleSignal(rec)
	}
}

func (s *Shell) onSignalHangup() {
	s.reactor.RequestStop()
}

// handleSignal applies the interrupt/termination policy for one decoded
// signal record.
func (s *Shell) handleSignal(rec byte) {
	switch rec {
	case sigRecInterrupt:
		if s.inputBound {
			s.editor.ReplaceLine("", 0)
			s.newline()
			s.editor.Redisplay()
			return
		}
		// An interrupt before input is attached means the user has no
		// way to leave via Ctrl-D or typing exit yet; treat it as a
		// terminate.
		fallthrough
	case sigRecTerminate:
		if !s.terminated {
			s.editor.ReplaceLine("", 0)
			s.newline()
			s.reactor.RequestStop()
		}
		s.terminated = true
	}
}
