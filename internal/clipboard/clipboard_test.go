package clipboard

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func withBackend(t *testing.T, b backend) {
	t.Helper()
	mu.Lock()
	prevNative, prevTerm, prevLast := native, terminal, last
	native, last = b, ""
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		native, terminal, last = prevNative, prevTerm, prevLast
		mu.Unlock()
	})
}

func TestSet_FallsBackToOSC52(t *testing.T) {
	failing := errors.New("no display")
	withBackend(t, backend{
		read:  func() (string, error) { return "", failing },
		write: func(string) error { return failing },
	})

	var out bytes.Buffer
	Init(&out)

	if err := Set("hello"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "\x1b]52;c;") {
		t.Fatalf("output = %q, want OSC 52 sequence", out.String())
	}

	got, err := Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("Get = %q, want %q", got, "hello")
	}
}

func TestSet_NoTerminal(t *testing.T) {
	failing := errors.New("no display")
	withBackend(t, backend{
		read:  func() (string, error) { return "", failing },
		write: func(string) error { return failing },
	})
	Init(nil)

	if err := Set("x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Set err = %v, want ErrUnavailable", err)
	}
}
