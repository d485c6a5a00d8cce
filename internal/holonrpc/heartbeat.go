package holonrpc

import (
	"context"
	"time"
)

// heartbeatTask proves carrier liveness by periodically invoking
// rpc.heartbeat. Any failure, including a timeout, triggers disconnect and
// ends the task. A fresh heartbeat task is started once a reconnect
// succeeds.
func (c *Client) heartbeatTask(ctx context.Context) {
	for {
		timer := time.NewTimer(c.cfg.HeartbeatInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if c.isClosed() {
			return
		}

		hbCtx, cancel := context.WithTimeout(ctx, c.cfg.HeartbeatTimeout)
		_, err := c.Invoke(hbCtx, heartbeatMethod, map[string]any{})
		cancel()
		if err != nil {
			c.log.Warn().Err(err).Msg("heartbeat failed, disconnecting")
			c.disconnect()
			return
		}
	}
}
