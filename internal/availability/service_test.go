package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	m   map[string]bool
	err error
}

func (f *fakeFetcher) FetchAll(context.Context) (map[string]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]bool, len(f.m))
	for k, v := range f.m {
		out[k] = v
	}
	return out, nil
}

func TestIsAvailable_DefaultsTrueForAbsentIDs(t *testing.T) {
	svc := NewService(&fakeFetcher{m: map[string]bool{"greek": false}})
	require.NoError(t, svc.Refresh(context.Background()))

	assert.False(t, svc.IsAvailable("greek"))
	assert.True(t, svc.IsAvailable("never-seen"))
}

func TestRefresh_ReplacesWholeMap(t *testing.T) {
	fetcher := &fakeFetcher{m: map[string]bool{"greek": false, "barazek": false}}
	svc := NewService(fetcher)
	require.NoError(t, svc.Refresh(context.Background()))
	assert.False(t, svc.IsAvailable("barazek"))

	// the row disappears entirely; last write wins, no merging
	fetcher.m = map[string]bool{"greek": true}
	require.NoError(t, svc.Refresh(context.Background()))

	assert.True(t, svc.IsAvailable("greek"))
	assert.True(t, svc.IsAvailable("barazek"), "dropped rows fall back to available")
}

func TestRefresh_KeepsMapOnError(t *testing.T) {
	fetcher := &fakeFetcher{m: map[string]bool{"greek": false}}
	svc := NewService(fetcher)
	require.NoError(t, svc.Refresh(context.Background()))

	fetcher.err = errors.New("db down")
	require.Error(t, svc.Refresh(context.Background()))
	assert.False(t, svc.IsAvailable("greek"), "previous map survives a failed refresh")
}

func TestSubscribe_NotifiesOnRefresh(t *testing.T) {
	svc := NewService(&fakeFetcher{m: map[string]bool{}})

	calls := 0
	unsubscribe := svc.Subscribe(func() { calls++ })

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 1, calls)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 2, calls)

	unsubscribe()
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 2, calls, "unsubscribed handlers stop firing")
}

func TestSubscribe_NoNotifyOnFailedRefresh(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("db down")}
	svc := NewService(fetcher)

	calls := 0
	svc.Subscribe(func() { calls++ })

	require.Error(t, svc.Refresh(context.Background()))
	assert.Zero(t, calls)
}

func TestSnapshot_IsACopy(t *testing.T) {
	svc := NewService(&fakeFetcher{m: map[string]bool{"greek": false}})
	require.NoError(t, svc.Refresh(context.Background()))

	snap := svc.Snapshot()
	snap["greek"] = true
	assert.False(t, svc.IsAvailable("greek"))
}
