package lambda

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"product-catalog-api/internal/config"
	"product-catalog-api/pkg/server"
)

// ConnectionManager holds the process-wide service container for Lambda
// invocations. The container (and its backend client) is built once,
// lazily, and reused for the lifetime of the process.
type ConnectionManager struct {
	container *server.Container
	// lastUsed is touched on every invocation while readers hold only
	// the read lock, so it lives outside the mutex.
	lastUsed    atomic.Int64
	mu          sync.RWMutex
	initialized bool
	initOnce    sync.Once
	config      *config.Config
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance.
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = &ConnectionManager{}
	})
	return globalConnectionManager
}

// Initialize initializes the connection manager with configuration.
func (cm *ConnectionManager) Initialize(ctx context.Context, cfg *config.Config) error {
	var initErr error
	cm.initOnce.Do(func() {
		cm.mu.Lock()
		defer cm.mu.Unlock()

		cm.config = cfg
		container, err := server.NewContainer(ctx, cfg)
		if err != nil {
			initErr = err
			return
		}

		cm.container = container
		cm.lastUsed.Store(time.Now().UnixNano())
		cm.initialized = true
	})

	return initErr
}

// GetContainer returns the service container, initializing if necessary.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.RLock()
	if cm.initialized && cm.container != nil {
		cm.lastUsed.Store(time.Now().UnixNano())
		container := cm.container
		cm.mu.RUnlock()
		return container, nil
	}
	cm.mu.RUnlock()

	if cm.config == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if err := cm.Initialize(ctx, cfg); err != nil {
			return nil, err
		}
	}

	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.container, nil
}

// LastUsed reports when the container was last handed out.
func (cm *ConnectionManager) LastUsed() time.Time {
	return time.Unix(0, cm.lastUsed.Load())
}

// Cleanup releases the container's resources.
func (cm *ConnectionManager) Cleanup(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(ctx); err != nil {
			return err
		}
		cm.container = nil
	}

	cm.initialized = false
	return nil
}
