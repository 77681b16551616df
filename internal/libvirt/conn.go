// Package libvirt holds an optional hypervisor connection used as a
// secondary source of host memory figures.
package libvirt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"sync"
	"time"

	golibvirt "github.com/digitalocean/go-libvirt"
)

// ErrBackoff is returned without dialing while a failed connect is cooling
// down.
var ErrBackoff = errors.New("libvirt connect backing off")

// ConnManager owns a single libvirt RPC connection. It gives up after a
// bounded number of attempts and then refuses to dial again until the
// backoff window has passed, so a missing daemon costs the frame loop one
// round of retries per window instead of one per frame.
type ConnManager struct {
	mu          sync.RWMutex
	client      *golibvirt.Libvirt
	uri         string
	logger      *slog.Logger
	retryWait   time.Duration
	maxJitter   time.Duration
	maxAttempts int
	backoff     time.Duration
	downUntil   time.Time
	lastErr     error
	randSrc     *rand.Rand
	now         func() time.Time
	dial        func(*url.URL) (*golibvirt.Libvirt, error)
}

func NewConnManager(uri string, retryWait, maxJitter time.Duration, maxAttempts int, backoff time.Duration, logger *slog.Logger) *ConnManager {
	if retryWait <= 0 {
		retryWait = 500 * time.Millisecond
	}
	if maxJitter < 0 {
		maxJitter = 0
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if backoff < 0 {
		backoff = 0
	}
	return &ConnManager{
		uri:         uri,
		logger:      logger,
		retryWait:   retryWait,
		maxJitter:   maxJitter,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		randSrc:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
		dial: func(u *url.URL) (*golibvirt.Libvirt, error) {
			return golibvirt.ConnectToURI(u)
		},
	}
}

func (m *ConnManager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectLocked(ctx)
}

func (m *ConnManager) Client(ctx context.Context) (*golibvirt.Libvirt, error) {
	m.mu.RLock()
	c := m.client
	m.mu.RUnlock()
	if c != nil {
		return c, nil
	}
	if err := m.Connect(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.client == nil {
		return nil, fmt.Errorf("libvirt client is nil after connect")
	}
	return m.client, nil
}

func (m *ConnManager) Healthy(ctx context.Context) error {
	c, err := m.Client(ctx)
	if err != nil {
		return err
	}
	if _, err := c.Version(); err != nil {
		return fmt.Errorf("libvirt version check failed: %w", err)
	}
	return nil
}

func (m *ConnManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect()
	m.client = nil
	return err
}

func (m *ConnManager) connectLocked(ctx context.Context) error {
	if m.client != nil {
		if _, err := m.client.Version(); err == nil {
			return nil
		}
		_ = m.client.Disconnect()
		m.client = nil
	}

	if now := m.now(); now.Before(m.downUntil) {
		return fmt.Errorf("%w for %s: %w", ErrBackoff, m.downUntil.Sub(now).Round(time.Millisecond), m.lastErr)
	}

	uri, err := parseURI(m.uri)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		c, dialErr := m.dial(uri)
		if dialErr == nil {
			m.client = c
			m.downUntil, m.lastErr = time.Time{}, nil
			m.logger.Info("libvirt connected", "uri", uri.Redacted())
			return nil
		}
		lastErr = dialErr
		if attempt == m.maxAttempts {
			break
		}

		wait := m.retryWait + m.jitter()
		m.logger.Warn("libvirt connect failed", "uri", uri.Redacted(), "attempt", attempt, "error", dialErr, "retry_in", wait)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	m.lastErr = fmt.Errorf("connect libvirt %s after %d attempts: %w", uri.Redacted(), m.maxAttempts, lastErr)
	if m.backoff > 0 {
		m.downUntil = m.now().Add(m.backoff)
		m.logger.Warn("libvirt unavailable, backing off", "uri", uri.Redacted(), "backoff", m.backoff, "error", lastErr)
	}
	return m.lastErr
}

func parseURI(raw string) (*url.URL, error) {
	if raw == "" {
		raw = string(golibvirt.QEMUSystem)
	}
	uri, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse libvirt uri %q: %w", raw, err)
	}
	if uri.Scheme == "" {
		uri, err = url.Parse(string(golibvirt.QEMUSystem))
		if err != nil {
			return nil, fmt.Errorf("parse fallback uri: %w", err)
		}
	}
	return uri, nil
}

func (m *ConnManager) jitter() time.Duration {
	if m.maxJitter == 0 {
		return 0
	}
	return time.Duration(m.randSrc.Int63n(int64(m.maxJitter)))
}
