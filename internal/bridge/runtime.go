package bridge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/neovide/neovide/internal/cmdline"
	"github.com/neovide/neovide/internal/panics"
	"github.com/neovide/neovide/internal/settings"
	"github.com/neovide/neovide/internal/state"
	"github.com/neovide/neovide/internal/units"
	"github.com/neovide/neovide/internal/window"
)

// ErrNeovimNotFound is returned by Launch when no Neovim binary resolves.
var ErrNeovimNotFound = errors.New("neovim binary not found")

// ErrAlreadyLaunched is returned by a second Launch.
var ErrAlreadyLaunched = errors.New("neovim runtime already launched")

const (
	defaultBinary    = "nvim"
	defaultWaitDelay = 500 * time.Millisecond
	readChunkSize    = 32 * 1024
)

// CommandFunc builds the backend process.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// NeovimRuntime owns the embedded Neovim process and the goroutines that
// service it.
type NeovimRuntime struct {
	dir       string
	socket    string
	handler   *panics.Handler
	command   CommandFunc
	lookPath  func(string) (string, error)
	waitDelay time.Duration

	mu       sync.Mutex
	launched bool
	cancel   context.CancelFunc
	group    *errgroup.Group
	stdin    io.WriteCloser

	shuttingDown atomic.Bool
	shutdownOnce sync.Once
}

// Option customises NewNeovimRuntime.
type Option func(*NeovimRuntime)

// WithPanicHandler guards the runtime's goroutines with h.
func WithPanicHandler(h *panics.Handler) Option {
	return func(r *NeovimRuntime) { r.handler = h }
}

// WithCommand replaces exec.CommandContext.
func WithCommand(fn CommandFunc) Option {
	return func(r *NeovimRuntime) { r.command = fn }
}

// WithLookPath replaces exec.LookPath.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(r *NeovimRuntime) { r.lookPath = fn }
}

// WithWaitDelay bounds how long the process may linger after cancellation
// before it is killed.
func WithWaitDelay(d time.Duration) Option {
	return func(r *NeovimRuntime) { r.waitDelay = d }
}

// NewNeovimRuntime allocates the runtime's private directory. Nothing is
// started until Launch.
func NewNeovimRuntime(opts ...Option) (*NeovimRuntime, error) {
	dir, err := os.MkdirTemp("", "neovide-")
	if err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}

	r := &NeovimRuntime{
		dir:       dir,
		socket:    listenAddress(dir),
		command:   exec.CommandContext,
		lookPath:  exec.LookPath,
		waitDelay: defaultWaitDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func listenAddress(dir string) string {
	name := "neovide-" + uuid.NewString()
	if runtime.GOOS == "windows" {
		return `\\.\pipe\` + name
	}
	return filepath.Join(dir, name+".sock")
}

// ListenAddress is the --listen address handed to Neovim.
func (r *NeovimRuntime) ListenAddress() string { return r.socket }

// Dir is the runtime's private directory.
func (r *NeovimRuntime) Dir() string { return r.dir }

// Launch starts Neovim and the goroutines that pump its output. When the
// process exits its status is recorded in tracker and NeovimExited is posted
// through proxy.
func (r *NeovimRuntime) Launch(proxy window.Proxy, grid *units.GridSize, tracker *state.RunningTracker, s *settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.launched {
		return ErrAlreadyLaunched
	}

	cmdSettings := settings.Get[cmdline.CmdLineSettings](s)
	bin, err := r.resolveBinary(cmdSettings.NeovimBin)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := r.command(ctx, bin, buildArgs(r.socket, grid, cmdSettings)...)
	cmd.Cancel = func() error {
		if runtime.GOOS == "windows" {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.waitDelay

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("neovim stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("neovim stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("neovim stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start neovim %s: %w", bin, err)
	}
	slog.Info("neovim started", "component", "bridge", "bin", bin, "pid", cmd.Process.Pid, "listen", r.socket)

	var pipes sync.WaitGroup
	pipes.Add(2)
	group := &errgroup.Group{}
	group.Go(func() error {
		defer pipes.Done()
		defer r.handler.Recover()
		return pumpOutput(stdout, proxy)
	})
	group.Go(func() error {
		defer pipes.Done()
		defer r.handler.Recover()
		return pumpStderr(stderr)
	})
	group.Go(func() error {
		defer r.handler.Recover()
		pipes.Wait()
		code := exitCode(cmd.Wait())
		slog.Info("neovim exited", "component", "bridge", "code", code)
		// A child stopped by ShutdownTimeout does not decide the exit code.
		if !r.shuttingDown.Load() {
			tracker.QuitWithCode(code, "neovim exited")
		}
		if err := proxy.SendEvent(window.NeovimExited{Code: code}); err != nil && !errors.Is(err, window.ErrEventLoopClosed) {
			slog.Warn("could not post neovim exit", "component", "bridge", "error", err)
		}
		return nil
	})

	r.launched = true
	r.cancel = cancel
	r.group = group
	r.stdin = stdin
	return nil
}

// Write sends raw RPC bytes to Neovim's stdin.
func (r *NeovimRuntime) Write(p []byte) (int, error) {
	r.mu.Lock()
	stdin := r.stdin
	r.mu.Unlock()
	if stdin == nil {
		return 0, fmt.Errorf("write to neovim: not launched")
	}
	return stdin.Write(p)
}

// ShutdownTimeout stops the runtime and waits at most d for its goroutines.
// It runs once; later calls and calls on a nil runtime do nothing.
func (r *NeovimRuntime) ShutdownTimeout(d time.Duration) {
	if r == nil {
		return
	}
	r.shutdownOnce.Do(func() {
		r.shuttingDown.Store(true)
		r.mu.Lock()
		cancel, group, stdin := r.cancel, r.group, r.stdin
		r.mu.Unlock()

		if stdin != nil {
			_ = stdin.Close()
		}
		if cancel != nil {
			cancel()
		}
		if group != nil {
			done := make(chan struct{})
			go func() {
				_ = group.Wait()
				close(done)
			}()
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-done:
			case <-timer.C:
				slog.Warn("neovim runtime did not stop in time", "component", "bridge", "timeout", d)
			}
		}
		if err := os.RemoveAll(r.dir); err != nil {
			slog.Debug("remove runtime dir", "component", "bridge", "error", err)
		}
	})
}

func (r *NeovimRuntime) resolveBinary(configured string) (string, error) {
	name := configured
	if name == "" {
		name = defaultBinary
	}
	path, err := r.lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNeovimNotFound, name, err)
	}
	return path, nil
}

func buildArgs(socket string, grid *units.GridSize, cmd cmdline.CmdLineSettings) []string {
	args := []string{"--embed", "--listen", socket}
	if grid != nil {
		args = append(args, "--cmd", fmt.Sprintf("let &columns=%d | let &lines=%d", grid.Columns, grid.Rows))
	}
	args = append(args, cmd.NeovimArgs...)
	if cmd.Tabs && len(cmd.Files) > 1 {
		args = append(args, "-p")
	}
	return append(args, cmd.Files...)
}

func pumpOutput(r io.Reader, proxy window.Proxy) error {
	buf := make([]byte, readChunkSize)
	forward := true
	for {
		n, err := r.Read(buf)
		if n > 0 && forward {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if sendErr := proxy.SendEvent(window.BackendOutput{Data: chunk}); errors.Is(sendErr, window.ErrEventLoopClosed) {
				forward = false
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read neovim stdout: %w", err)
		}
	}
}

func pumpStderr(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		slog.Warn("neovim stderr", "component", "bridge", "line", scanner.Text())
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("read neovim stderr: %w", err)
	}
	return nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
	}
	return 1
}
