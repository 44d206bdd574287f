package bookgen

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeBackend struct {
	name      string
	available bool
	renderErr error
	calls     int
	closed    bool
}

func (f *fakeBackend) Name() string      { return f.name }
func (f *fakeBackend) Available() bool   { return f.available }
func (f *fakeBackend) Close() error      { f.closed = true; return nil }
func (f *fakeBackend) Render(_ context.Context, _ RenderJob, _ string) error {
	f.calls++
	return f.renderErr
}

func TestChainSelectsFirstAvailable(t *testing.T) {
	first := &fakeBackend{name: "first", available: false}
	second := &fakeBackend{name: "second", available: true}
	third := &fakeBackend{name: "third", available: true}

	chain := NewChain(first, second, third)

	if got := chain.Selected(); got != second {
		t.Fatalf("Selected() = %v, want second backend", got)
	}

	backend, err := chain.Render(context.Background(), RenderJob{}, "out.pdf")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if backend != "second" {
		t.Errorf("Render() backend = %q, want %q", backend, "second")
	}
	if second.calls != 1 {
		t.Errorf("second backend calls = %d, want 1", second.calls)
	}
	if first.calls != 0 || third.calls != 0 {
		t.Errorf("unselected backends were invoked: first=%d third=%d", first.calls, third.calls)
	}
}

func TestChainNoBackendAvailable(t *testing.T) {
	chain := NewChain(
		&fakeBackend{name: "first"},
		&fakeBackend{name: "second"},
	)

	if chain.Selected() != nil {
		t.Fatal("Selected() should be nil with no available backend")
	}

	_, err := chain.Render(context.Background(), RenderJob{}, "out.pdf")
	if !errors.Is(err, ErrNoPDFBackend) {
		t.Errorf("Render() error = %v, want ErrNoPDFBackend", err)
	}
}

func TestChainRenderFailureDoesNotCascade(t *testing.T) {
	renderErr := errors.New("print failed")
	first := &fakeBackend{name: "browser", available: true, renderErr: renderErr}
	second := &fakeBackend{name: "pandoc", available: true}

	chain := NewChain(first, second)

	backend, err := chain.Render(context.Background(), RenderJob{}, "out.pdf")
	if !errors.Is(err, renderErr) {
		t.Fatalf("Render() error = %v, want wrapped render error", err)
	}
	if backend != "browser" {
		t.Errorf("Render() backend = %q, want %q", backend, "browser")
	}
	if !strings.Contains(err.Error(), "browser") {
		t.Errorf("error %q does not name the failing backend", err)
	}
	if second.calls != 0 {
		t.Error("lower-preference backend was invoked after a render failure")
	}
}

func TestChainClose(t *testing.T) {
	first := &fakeBackend{name: "first", available: true}
	second := &fakeBackend{name: "second"}

	chain := NewChain(first, second)
	if err := chain.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !first.closed || !second.closed {
		t.Error("Close() did not reach every backend")
	}
}
