package reactor

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

const (
	eventBuffer = 64
	readBuffer  = 4096
)

// binding pairs a registered source with its callbacks.
type binding struct {
	name     string
	src      io.Reader
	onRead   func(p []byte)
	onHangup func()
	closed   atomic.Bool
}

// event is one readiness notification queued for dispatch. hangup marks
// the final event of a binding.
type event struct {
	b      *binding
	data   []byte
	hangup bool
}

// Loop is a channel-based reactor. The zero value is not usable; call New.
type Loop struct {
	log      *zap.Logger
	events   chan event
	stop     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	bindings map[string]*binding
	wg       sync.WaitGroup
}

// New creates a Loop. A nil logger disables diagnostics.
func New(log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		log:      log,
		events:   make(chan event, eventBuffer),
		stop:     make(chan struct{}),
		bindings: make(map[string]*binding),
	}
}

// Register binds a named source to the loop. Bytes read from src are
// delivered to onRead on the dispatch goroutine; onHangup fires once when
// the source is exhausted or fails. Registering a name twice is an error.
// The loop never closes src; the registrant keeps ownership.
func (l *Loop) Register(name string, src io.Reader, onRead func(p []byte), onHangup func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.bindings[name]; ok {
		return fmt.Errorf("reactor: %q already registered", name)
	}

	b := &binding{name: name, src: src, onRead: onRead, onHangup: onHangup}
	l.bindings[name] = b

	l.wg.Add(1)
	go l.pump(b)

	return nil
}

// Unregister destroys a binding. Pending events from it are dropped. The
// source itself stays open: the registrant retains ownership and must close
// it to release the reader goroutine.
func (l *Loop) Unregister(name string) {
	l.mu.Lock()
	b, ok := l.bindings[name]
	if ok {
		delete(l.bindings, name)
	}
	l.mu.Unlock()

	if ok {
		b.closed.Store(true)
	}
}

// pump reads src until it fails, forwarding each chunk as an event.
func (l *Loop) pump(b *binding) {
	defer l.wg.Done()

	buf := make([]byte, readBuffer)
	for {
		n, err := b.src.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			if !l.post(event{b: b, data: data}) {
				return
			}
		}
		if err != nil {
			l.post(event{b: b, hangup: true})
			return
		}
	}
}

// post queues an event, giving up once a stop has been requested so pumps
// never block on a loop that is no longer draining.
func (l *Loop) post(ev event) bool {
	select {
	case l.events <- ev:
		return true
	case <-l.stop:
		return false
	}
}

// Run dispatches events until a stop is requested. The stop intent is
// consumed at the top of each iteration, so the callback that requested
// it always runs to completion first.
func (l *Loop) Run() {
	for {
		select {
		case <-l.stop:
			return
		default:
		}

		select {
		case <-l.stop:
			return
		case ev := <-l.events:
			if ev.b.closed.Load() {
				continue
			}
			if ev.hangup {
				l.log.Debug("binding hangup", zap.String("binding", ev.b.name))
				if ev.b.onHangup != nil {
					ev.b.onHangup()
				}
				continue
			}
			if ev.b.onRead != nil {
				ev.b.onRead(ev.data)
			}
		}
	}
}

// RequestStop sets the stop intent. Safe to call multiple times and from
// any goroutine.
func (l *Loop) RequestStop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Wait blocks until all reader goroutines have exited. Useful in tests;
// sources must have been closed by their owners first.
func (l *Loop) Wait() {
	l.wg.Wait()
}
