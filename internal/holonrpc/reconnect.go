package holonrpc

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// reconnectTask repeatedly attempts to re-dial the last known url. On
// success it rewires the carrier and restarts the receive and heartbeat
// tasks. attempt lives only inside this task; nothing else reads it.
func (c *Client) reconnectTask() {
	defer c.reconnectWG.Done()
	defer c.reconnecting.Store(false)

	attempt := 0
	for {
		c.mu.Lock()
		closed := c.closed
		url := c.url
		c.mu.Unlock()
		if closed {
			return
		}

		conn, err := c.dial(context.Background(), url)
		if err == nil {
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				_ = conn.Close()
				return
			}
			c.carrier = conn
			c.mu.Unlock()
			c.startTasks()
			return
		}

		c.log.Warn().Err(err).Int("attempt", attempt).Msg("reconnect attempt failed")

		delay := reconnectDelay(c.cfg, attempt)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-c.closeCh:
			timer.Stop()
			return
		}
		attempt++
	}
}

// reconnectDelay implements min(minDelay * factor^attempt, maxDelay) plus
// additive uniform jitter in [0, minDelay*jitter).
func reconnectDelay(cfg Config, attempt int) time.Duration {
	base := float64(cfg.ReconnectMinDelay) * math.Pow(cfg.ReconnectFactor, float64(attempt))
	capped := math.Min(base, float64(cfg.ReconnectMaxDelay))

	jitterSpan := float64(cfg.ReconnectMinDelay) * cfg.ReconnectJitter
	jitter := 0.0
	if jitterSpan > 0 {
		jitter = rand.Float64() * jitterSpan
	}

	return time.Duration(capped + jitter)
}
