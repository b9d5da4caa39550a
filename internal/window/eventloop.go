package window

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

const eventQueueSize = 256

var (
	// ErrEventLoopClosed is returned when posting to a loop that has finished.
	ErrEventLoopClosed = errors.New("event loop closed")
	// ErrEventQueueFull is returned when events pile up faster than the loop
	// drains them.
	ErrEventQueueFull = errors.New("event queue full")
	// ErrLoopRunning is returned by a second concurrent RunApp.
	ErrLoopRunning = errors.New("event loop already running")
)

// ExitFailure is returned by RunApp when the application asked to exit with
// a non-zero code.
type ExitFailure struct {
	Code int
}

func (e *ExitFailure) Error() string {
	return fmt.Sprintf("event loop exited with code %d", e.Code)
}

// Resulter is implemented by models that end the loop with an error.
type Resulter interface {
	Result() error
}

// Proxy posts events into the UI loop from any goroutine.
type Proxy interface {
	SendEvent(UserEvent) error
}

// EventLoop owns the bubbletea program. Events sent through its proxy before
// RunApp starts are queued and delivered in order once it does.
type EventLoop struct {
	input       io.Reader
	output      io.Writer
	programOpts []tea.ProgramOption
	spawn       func(func())

	mu      sync.Mutex
	queue   chan UserEvent
	running bool
	closed  bool
}

// LoopOption customises CreateEventLoop.
type LoopOption func(*EventLoop)

// WithOutput sets the terminal output. Defaults to os.Stdout.
func WithOutput(w io.Writer) LoopOption {
	return func(l *EventLoop) { l.output = w }
}

// WithInput sets the terminal input. Defaults to os.Stdin; nil disables input.
func WithInput(r io.Reader) LoopOption {
	return func(l *EventLoop) { l.input = r }
}

// WithProgramOptions appends raw bubbletea options.
func WithProgramOptions(opts ...tea.ProgramOption) LoopOption {
	return func(l *EventLoop) { l.programOpts = append(l.programOpts, opts...) }
}

// WithSpawner sets how the loop starts its event pump goroutine.
func WithSpawner(spawn func(func())) LoopOption {
	return func(l *EventLoop) { l.spawn = spawn }
}

// Headless configures a loop without a terminal: no input, no renderer and
// no signal handling.
func Headless() LoopOption {
	return func(l *EventLoop) {
		l.input = nil
		l.output = io.Discard
		l.programOpts = append(l.programOpts, tea.WithoutRenderer(), tea.WithoutSignalHandler())
	}
}

// CreateEventLoop builds a loop bound to the process terminal.
func CreateEventLoop(opts ...LoopOption) *EventLoop {
	l := &EventLoop{
		input:  os.Stdin,
		output: os.Stdout,
		queue:  make(chan UserEvent, eventQueueSize),
		spawn:  func(fn func()) { go fn() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Output is the writer the loop renders to.
func (l *EventLoop) Output() io.Writer {
	return l.output
}

// CreateProxy returns a handle for posting events into the loop.
func (l *EventLoop) CreateProxy() Proxy {
	return loopProxy{loop: l}
}

type loopProxy struct {
	loop *EventLoop
}

func (p loopProxy) SendEvent(ev UserEvent) error {
	return p.loop.post(ev)
}

func (l *EventLoop) post(ev UserEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrEventLoopClosed
	}
	select {
	case l.queue <- ev:
		return nil
	default:
		slog.Warn("dropping event, queue full", "component", "event_loop", "event", fmt.Sprintf("%T", ev))
		return ErrEventQueueFull
	}
}

func (l *EventLoop) finish(stop chan struct{}, pumped <-chan struct{}) {
	close(stop)
	<-pumped

	l.mu.Lock()
	l.running = false
	l.closed = true
	l.mu.Unlock()
}

// RunApp drives model until it quits. After it returns the loop is closed
// and proxies report ErrEventLoopClosed. A model implementing Resulter can
// end the run with an error; *ExitFailure carries an explicit exit code. A
// panic inside the model is re-raised on the calling goroutine.
func (l *EventLoop) RunApp(model tea.Model) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrEventLoopClosed
	}
	if l.running {
		l.mu.Unlock()
		return ErrLoopRunning
	}
	l.running = true
	l.mu.Unlock()

	opts := []tea.ProgramOption{tea.WithInput(l.input), tea.WithOutput(l.output), tea.WithoutCatchPanics()}
	opts = append(opts, l.programOpts...)
	program := tea.NewProgram(model, opts...)

	stop := make(chan struct{})
	pumped := make(chan struct{})
	l.spawn(func() {
		defer close(pumped)
		for {
			select {
			case <-stop:
				return
			case ev := <-l.queue:
				program.Send(ev)
			}
		}
	})

	// Panics in Update and View unwind through here to the caller's panic
	// handler. The terminal is restored first.
	defer func() {
		if v := recover(); v != nil {
			_ = program.ReleaseTerminal()
			l.finish(stop, pumped)
			panic(v)
		}
	}()

	final, err := program.Run()
	l.finish(stop, pumped)

	if err != nil {
		return fmt.Errorf("run event loop: %w", err)
	}
	if r, ok := final.(Resulter); ok {
		return r.Result()
	}
	return nil
}
