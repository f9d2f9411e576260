package fallback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelelgendy/mealmind/backend/internal/fallback"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

func TestRoute(t *testing.T) {
	c := fallback.NewController(nil)

	// Online but no credentials routes local.
	assert.Equal(t, fallback.PathLocal, c.Route())

	c.SetCredentials(true)
	assert.Equal(t, fallback.PathRemote, c.Route())

	c.SetOnline(false)
	assert.Equal(t, fallback.PathLocal, c.Route())

	c.SetOnline(true)
	c.SetCredentials(false)
	assert.Equal(t, fallback.PathLocal, c.Route())
}

func TestCanWrite(t *testing.T) {
	c := fallback.NewController(nil)

	assert.ErrorIs(t, c.CanWrite(), types.ErrAuthRequired)

	c.SetCredentials(true)
	assert.NoError(t, c.CanWrite())

	c.SetOnline(false)
	assert.ErrorIs(t, c.CanWrite(), types.ErrOffline)

	// Missing credentials beats missing network.
	c.SetCredentials(false)
	assert.ErrorIs(t, c.CanWrite(), types.ErrAuthRequired)
}

func TestReadShortCircuitsOffline(t *testing.T) {
	c := fallback.NewController(nil)
	c.SetCredentials(true)
	c.SetOnline(false)

	remoteCalled := false
	got, err := fallback.Read(context.Background(), c, "test",
		func(context.Context) (string, error) {
			remoteCalled = true
			return "remote", nil
		},
		func(context.Context) (string, error) {
			return "local", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "local", got)
	assert.False(t, remoteCalled, "remote must not be attempted while offline")
}

func TestReadRemotePath(t *testing.T) {
	c := fallback.NewController(nil)
	c.SetCredentials(true)

	got, err := fallback.Read(context.Background(), c, "test",
		func(context.Context) (string, error) { return "remote", nil },
		func(context.Context) (string, error) { return "local", nil })
	require.NoError(t, err)
	assert.Equal(t, "remote", got)
}

func TestReadSubstitutesLocalOnRemoteFailure(t *testing.T) {
	c := fallback.NewController(nil)
	c.SetCredentials(true)

	got, err := fallback.Read(context.Background(), c, "test",
		func(context.Context) ([]int, error) { return nil, errors.New("remote down") },
		func(context.Context) ([]int, error) { return []int{1, 2}, nil })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestReadLocalFailurePropagates(t *testing.T) {
	c := fallback.NewController(nil)
	c.SetCredentials(true)
	boom := errors.New("local broken too")

	_, err := fallback.Read(context.Background(), c, "test",
		func(context.Context) (string, error) { return "", errors.New("remote down") },
		func(context.Context) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}
