package window

import (
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// recorder collects user events and quits after a given number.
type recorder struct {
	mu     *sync.Mutex
	seen   *[]UserEvent
	until  int
	result error
}

func (r recorder) Init() tea.Cmd { return nil }

func (r recorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ev, ok := msg.(UserEvent)
	if !ok {
		return r, nil
	}
	r.mu.Lock()
	*r.seen = append(*r.seen, ev)
	n := len(*r.seen)
	r.mu.Unlock()
	if n >= r.until {
		return r, tea.Quit
	}
	return r, nil
}

func (r recorder) View() string { return "" }

func (r recorder) Result() error { return r.result }

func newRecorder(until int) (recorder, *[]UserEvent) {
	seen := []UserEvent{}
	return recorder{mu: &sync.Mutex{}, seen: &seen, until: until}, &seen
}

func TestEventLoop_DeliversQueuedEventsInOrder(t *testing.T) {
	loop := CreateEventLoop(Headless())
	proxy := loop.CreateProxy()

	for i := 0; i < 5; i++ {
		require.NoError(t, proxy.SendEvent(NeovimExited{Code: i}))
	}

	model, seen := newRecorder(5)
	require.NoError(t, loop.RunApp(model))

	require.Len(t, *seen, 5)
	for i, ev := range *seen {
		require.Equal(t, NeovimExited{Code: i}, ev)
	}
}

func TestEventLoop_ProxyFromGoroutineWhileRunning(t *testing.T) {
	loop := CreateEventLoop(Headless())
	proxy := loop.CreateProxy()

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = proxy.SendEvent(QuitRequested{})
	}()

	model, seen := newRecorder(1)
	require.NoError(t, loop.RunApp(model))
	require.Equal(t, []UserEvent{QuitRequested{}}, *seen)
}

func TestEventLoop_ClosedAfterRun(t *testing.T) {
	loop := CreateEventLoop(Headless())
	proxy := loop.CreateProxy()
	require.NoError(t, proxy.SendEvent(QuitRequested{}))

	model, _ := newRecorder(1)
	require.NoError(t, loop.RunApp(model))

	require.ErrorIs(t, proxy.SendEvent(QuitRequested{}), ErrEventLoopClosed)
	require.ErrorIs(t, loop.RunApp(model), ErrEventLoopClosed)
}

func TestEventLoop_ResultIsReturned(t *testing.T) {
	loop := CreateEventLoop(Headless())
	require.NoError(t, loop.CreateProxy().SendEvent(QuitRequested{}))

	model, _ := newRecorder(1)
	model.result = &ExitFailure{Code: 17}

	err := loop.RunApp(model)
	var failure *ExitFailure
	require.True(t, errors.As(err, &failure))
	require.Equal(t, 17, failure.Code)
}

func TestEventLoop_QueueFull(t *testing.T) {
	loop := CreateEventLoop(Headless())
	proxy := loop.CreateProxy()

	for i := 0; i < eventQueueSize; i++ {
		require.NoError(t, proxy.SendEvent(BackendOutput{}))
	}
	require.ErrorIs(t, proxy.SendEvent(BackendOutput{}), ErrEventQueueFull)
}

type explodeMsg struct{}

// explosive panics from Update as soon as its first command lands.
type explosive struct{}

func (explosive) Init() tea.Cmd {
	return func() tea.Msg { return explodeMsg{} }
}

func (e explosive) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(explodeMsg); ok {
		panic("update exploded")
	}
	return e, nil
}

func (explosive) View() string { return "" }

func TestEventLoop_ModelPanicReachesCaller(t *testing.T) {
	loop := CreateEventLoop(Headless())

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_ = loop.RunApp(explosive{})
	}()

	require.Equal(t, "update exploded", recovered)
	require.ErrorIs(t, loop.CreateProxy().SendEvent(QuitRequested{}), ErrEventLoopClosed)
}
