package dispatcher

// Config holds manager configuration options.
type Config struct {
	// EnableMetrics enables dispatch statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps performer execution in panic recovery.
	// A recovered panic is logged and produces no update.
	RecoverFromPanic bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}
