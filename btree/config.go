package btree

import "fmt"

const (
	// DefaultGroupSize is the group capacity used when none is configured.
	DefaultGroupSize = 10
	// MinGroupSize is the smallest usable group capacity.
	MinGroupSize = 2
	// MaxGroupSize bounds the group capacity.
	MaxGroupSize = 1 << 15
)

// LastPosition addresses the last item of a tree wherever a position is
// expected for reading, removing or seeking.
const LastPosition = -1

// Config configures a cluster tree.
type Config struct {
	// GroupSize is the capacity N of every group. Zero selects
	// DefaultGroupSize.
	GroupSize int
}

func (cfg Config) normalized() Config {
	if cfg.GroupSize == 0 {
		cfg.GroupSize = DefaultGroupSize
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.GroupSize < MinGroupSize {
		return fmt.Errorf("%w: group size %d below minimum %d", ErrInvalidConfig,
			cfg.GroupSize, MinGroupSize)
	}
	if cfg.GroupSize > MaxGroupSize {
		return fmt.Errorf("%w: group size %d exceeds maximum %d", ErrInvalidConfig,
			cfg.GroupSize, MaxGroupSize)
	}
	return nil
}
