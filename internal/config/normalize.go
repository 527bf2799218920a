// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultBlockSize  = 4096
	DefaultMaxTypes   = 16
	DefaultTimeoutMs  = 1000
	DefaultIntervalMs = 1000

	// NameMaxChars matches the status block name slots.
	NameMaxChars = 16
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	e := &cfg.Enclosure

	if e.BlockSize == 0 {
		e.BlockSize = DefaultBlockSize
	}
	if e.MaxTypes == 0 {
		e.MaxTypes = DefaultMaxTypes
	}

	// Name:
	// - ASCII already validated
	// - Truncate to the status block capacity
	if e.Name == "" {
		e.Name = e.Type
	}
	if len(e.Name) > NameMaxChars {
		e.Name = e.Name[:NameMaxChars]
	}

	// ------------------------------------------------------------
	// MIRROR (OPT-IN)
	// ------------------------------------------------------------

	if cfg.Mirror == nil {
		return
	}
	if cfg.Mirror.TimeoutMs == 0 {
		cfg.Mirror.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Mirror.IntervalMs == 0 {
		cfg.Mirror.IntervalMs = DefaultIntervalMs
	}
}
