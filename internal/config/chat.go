package config

import (
	"fmt"
	"time"
)

// ChatConfig bounds chat session behavior.
type ChatConfig struct {
	ReplyMinDelay time.Duration
	ReplyMaxDelay time.Duration
	SessionTTL    time.Duration
	MaxSessions   int
	SweepInterval time.Duration
}

// NewChatConfig reads CHAT_REPLY_MIN_DELAY (1s), CHAT_REPLY_MAX_DELAY (2s),
// CHAT_SESSION_TTL (30m), CHAT_MAX_SESSIONS (1000) and CHAT_SWEEP_INTERVAL (1m).
func NewChatConfig() (*ChatConfig, error) {
	cfg := &ChatConfig{}
	var err error

	if cfg.ReplyMinDelay, err = envDuration("CHAT_REPLY_MIN_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.ReplyMaxDelay, err = envDuration("CHAT_REPLY_MAX_DELAY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = envDuration("CHAT_SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.MaxSessions, err = envInt("CHAT_MAX_SESSIONS", 1000); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = envDuration("CHAT_SWEEP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ChatConfig) normalize() error {
	if c.ReplyMinDelay < 0 {
		return fmt.Errorf("CHAT_REPLY_MIN_DELAY must be non-negative, got: %s", c.ReplyMinDelay)
	}
	if c.ReplyMaxDelay < c.ReplyMinDelay {
		return fmt.Errorf("CHAT_REPLY_MAX_DELAY (%s) must not be below CHAT_REPLY_MIN_DELAY (%s)", c.ReplyMaxDelay, c.ReplyMinDelay)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("CHAT_MAX_SESSIONS must be non-negative, got: %d", c.MaxSessions)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("CHAT_SWEEP_INTERVAL must be positive, got: %s", c.SweepInterval)
	}
	return nil
}
