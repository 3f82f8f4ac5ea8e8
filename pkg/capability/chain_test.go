package capability_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/scribe/pkg/capability"
)

type stubClient struct {
	name    string
	content string
	err     error
	calls   atomic.Int32
}

func (c *stubClient) Name() string { return c.name }

func (c *stubClient) Invoke(context.Context, string, capability.Params) (string, error) {
	c.calls.Add(1)
	return c.content, c.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewChainRequiresClients(t *testing.T) {
	if _, err := capability.NewChain(nil, time.Second, testLogger()); err == nil {
		t.Fatal("expected error for empty chain")
	}
}

func TestChainFirstClientWins(t *testing.T) {
	primary := &stubClient{name: "primary", content: "from primary"}
	fallback := &stubClient{name: "fallback", content: "from fallback"}

	chain, err := capability.NewChain([]capability.Client{primary, fallback}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("new chain failed: %v", err)
	}

	content, err := chain.Invoke(context.Background(), "prompt", capability.Params{})
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}
	if content != "from primary" {
		t.Errorf("got %q", content)
	}
	if fallback.calls.Load() != 0 {
		t.Errorf("fallback called %d times", fallback.calls.Load())
	}
}

func TestChainRetriesTransientThenFallsBack(t *testing.T) {
	primary := &stubClient{name: "primary", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}
	fallback := &stubClient{name: "fallback", content: "from fallback"}

	chain, err := capability.NewChain([]capability.Client{primary, fallback}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("new chain failed: %v", err)
	}

	content, err := chain.Invoke(context.Background(), "prompt", capability.Params{})
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}
	if content != "from fallback" {
		t.Errorf("got %q", content)
	}
	if primary.calls.Load() != 2 {
		t.Errorf("transient failure should be retried once before falling back, got %d calls", primary.calls.Load())
	}
}

func TestChainSkipsRetryOnDeterministicError(t *testing.T) {
	primary := &stubClient{name: "primary", err: errors.New("model not found")}
	fallback := &stubClient{name: "fallback", content: "from fallback"}

	chain, err := capability.NewChain([]capability.Client{primary, fallback}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("new chain failed: %v", err)
	}

	content, err := chain.Invoke(context.Background(), "prompt", capability.Params{})
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}
	if content != "from fallback" {
		t.Errorf("got %q", content)
	}
	if primary.calls.Load() != 1 {
		t.Errorf("deterministic rejection should not be retried, got %d calls", primary.calls.Load())
	}
}

func TestChainRetriesEmptyResponse(t *testing.T) {
	primary := &stubClient{name: "primary", err: capability.ErrEmptyResponse}
	fallback := &stubClient{name: "fallback", content: "from fallback"}

	chain, err := capability.NewChain([]capability.Client{primary, fallback}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("new chain failed: %v", err)
	}

	if _, err := chain.Invoke(context.Background(), "prompt", capability.Params{}); err != nil {
		t.Fatalf("invoke failed: %v", err)
	}
	if primary.calls.Load() != 2 {
		t.Errorf("empty completion should be retried once, got %d calls", primary.calls.Load())
	}
}

func TestChainExhausted(t *testing.T) {
	primary := &stubClient{name: "primary", err: errors.New("timeout")}
	fallback := &stubClient{name: "fallback", err: errors.New("refused")}

	chain, err := capability.NewChain([]capability.Client{primary, fallback}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("new chain failed: %v", err)
	}

	_, err = chain.Invoke(context.Background(), "prompt", capability.Params{})
	if !errors.Is(err, capability.ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestChainStopsOnContextCancel(t *testing.T) {
	primary := &stubClient{name: "primary", err: errors.New("down")}
	fallback := &stubClient{name: "fallback", content: "unused"}

	chain, err := capability.NewChain([]capability.Client{primary, fallback}, time.Second, testLogger())
	if err != nil {
		t.Fatalf("new chain failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = chain.Invoke(ctx, "prompt", capability.Params{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if fallback.calls.Load() != 0 {
		t.Error("cancelled chain must not reach the fallback client")
	}
}

func TestChainName(t *testing.T) {
	primary := &stubClient{name: "primary"}
	chain, err := capability.NewChain([]capability.Client{primary}, 0, testLogger())
	if err != nil {
		t.Fatalf("new chain failed: %v", err)
	}
	if chain.Name() != "primary" {
		t.Errorf("got %q", chain.Name())
	}
}
