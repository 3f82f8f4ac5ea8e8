package capability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// DefaultTimeout bounds a single provider call when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// Chain is a ranked sequence of capability clients. Invoke tries each client
// in order with a per-call timeout, retrying each client once on transient
// failure before moving to the next. Only when every client is exhausted does
// the chain report ErrUnavailable.
type Chain struct {
	clients []Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewChain creates a Chain over the given clients in priority order.
// A non-positive timeout falls back to DefaultTimeout.
func NewChain(clients []Client, timeout time.Duration, logger *slog.Logger) (*Chain, error) {
	if len(clients) == 0 {
		return nil, errors.New("chain requires at least one client")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Chain{
		clients: clients,
		timeout: timeout,
		logger:  logger.With("system", "capability"),
	}, nil
}

// Name returns the name of the highest-ranked client.
func (c *Chain) Name() string {
	return c.clients[0].Name()
}

// Invoke walks the ranked clients. Each attempt gets a fresh timeout; a
// parent-context cancellation stops the walk immediately. Only transient
// failures earn a client its single retry; a deterministic rejection
// moves straight to the next client.
func (c *Chain) Invoke(ctx context.Context, prompt string, params Params) (string, error) {
	var lastErr error

	for _, client := range c.clients {
		for attempt := range 2 {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}

			content, err := c.invokeOnce(ctx, client, prompt, params)
			if err == nil {
				return content, nil
			}
			lastErr = err

			c.logger.Warn(
				"provider call failed",
				"provider", client.Name(),
				"attempt", attempt+1,
				"error", err,
			)

			if !transient(err) {
				break
			}
		}
	}

	return "", fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

// transient reports whether an error is worth an immediate retry:
// timeouts, transport failures, and empty completions. Anything else is
// a deterministic provider rejection that will not change on retry.
func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrEmptyResponse) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func (c *Chain) invokeOnce(
	ctx context.Context,
	client Client,
	prompt string,
	params Params,
) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return client.Invoke(callCtx, prompt, params)
}
