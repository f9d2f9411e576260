// Package fallback decides, per operation, whether to use the remote path or
// the local/mock path, and substitutes local data when a remote read fails.
package fallback

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

// Path is the chosen data route.
type Path int

const (
	PathRemote Path = iota
	PathLocal
)

func (p Path) String() string {
	if p == PathRemote {
		return "remote"
	}
	return "local"
}

// Controller tracks connectivity and credential state. No network or no
// credentials is a hard short-circuit to the local path; the remote call is
// not attempted at all.
type Controller struct {
	mu     sync.RWMutex
	online bool
	creds  bool
	logger *zap.Logger
}

func NewController(logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{online: true, logger: logger}
}

// SetOnline records connectivity state.
func (c *Controller) SetOnline(online bool) {
	c.mu.Lock()
	c.online = online
	c.mu.Unlock()
}

// SetCredentials records whether usable catalog credentials exist.
func (c *Controller) SetCredentials(present bool) {
	c.mu.Lock()
	c.creds = present
	c.mu.Unlock()
}

// Route picks the path for one operation.
func (c *Controller) Route() Path {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.online || !c.creds {
		return PathLocal
	}
	return PathRemote
}

// CanWrite reports whether a remote write may be attempted. Writes have no
// mock substitute; without credentials they are refused before any network
// call.
func (c *Controller) CanWrite() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.creds {
		return types.ErrAuthRequired
	}
	if !c.online {
		return types.ErrOffline
	}
	return nil
}

// Read routes a read operation. The local path runs directly when routed
// there; otherwise the remote function runs and, on failure, the local
// substitute is returned transparently so read paths never hard-fail.
func Read[T any](ctx context.Context, c *Controller, name string, remote, local func(context.Context) (T, error)) (T, error) {
	if c.Route() == PathLocal {
		return local(ctx)
	}
	out, err := remote(ctx)
	if err == nil {
		return out, nil
	}
	c.logger.Warn("remote read failed, substituting local data",
		zap.String("op", name),
		zap.Error(err))
	return local(ctx)
}
