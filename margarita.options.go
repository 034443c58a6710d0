package margarita

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	store          SnippetStore
	basePath       string
	maxDepth       int
	lenientMissing bool
	logger         *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		store:          nil,
		basePath:       "",
		maxDepth:       DefaultMaxDepth,
		lenientMissing: false,
		logger:         nil,
	}
}

// WithStore sets the snippet store include markers resolve through.
// Default: none (includes fail unless WithBasePath is given)
func WithStore(store SnippetStore) Option {
	return func(c *engineConfig) {
		c.store = store
	}
}

// WithBasePath configures a filesystem snippet store rooted at the given
// directory. Shorthand for WithStore(NewFilesystemStore(basePath)).
func WithBasePath(basePath string) Option {
	return func(c *engineConfig) {
		c.basePath = basePath
	}
}

// WithMaxDepth sets the maximum include nesting depth.
// Default: 100
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxDepth = depth
	}
}

// WithLenientMissing makes missing interpolation variables render as empty
// strings instead of failing the render. Conditions treat missing values as
// falsy in either mode.
// Default: false (fail fast)
func WithLenientMissing(lenient bool) Option {
	return func(c *engineConfig) {
		c.lenientMissing = lenient
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
