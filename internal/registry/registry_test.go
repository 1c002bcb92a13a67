package registry

import (
	"sync"
	"testing"

	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/dao/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestSetRequiresExactlyOne(t *testing.T) {
	r := New()

	_, err := r.Set(Options{})
	assert.ErrorIs(t, err, ErrNoneProvided)

	_, err = r.Set(Options{Database: &mongo.Database{}, Model: memory.NewCommentModel(nil)})
	assert.ErrorIs(t, err, ErrBothProvided)

	assert.Nil(t, r.Current().Model)
}

func TestSetCustomModel(t *testing.T) {
	r := New()
	m := memory.NewCommentModel(nil)

	cfg, err := r.Set(Options{Model: m})
	require.NoError(t, err)
	assert.False(t, cfg.DefaultModel)
	assert.Same(t, m, cfg.Model)
	assert.Equal(t, cfg, r.Current())
}

func TestSetDatabaseUsesFactory(t *testing.T) {
	m := memory.NewCommentModel(nil)
	db := &mongo.Database{}
	var got *mongo.Database
	r := New(WithModelFactory(func(d *mongo.Database) core.CommentModel {
		got = d
		return m
	}))

	cfg, err := r.Set(Options{Database: db})
	require.NoError(t, err)
	assert.Same(t, db, got)
	assert.True(t, cfg.DefaultModel)
	assert.Same(t, m, cfg.Model)
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	r := New()
	var seen []Config
	cancel := r.Subscribe(func(c Config) {
		seen = append(seen, c)
	})

	first := memory.NewCommentModel(nil)
	_, err := r.Set(Options{Model: first})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Same(t, first, seen[0].Model)

	_, err = r.Set(Options{})
	require.Error(t, err)
	assert.Len(t, seen, 1, "failed Set must not publish")

	cancel()
	_, err = r.Set(Options{Model: memory.NewCommentModel(nil)})
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}

func TestConcurrentSetsPublishInOrder(t *testing.T) {
	r := New()
	var (
		mu   sync.Mutex
		last core.CommentModel
	)
	cancel := r.Subscribe(func(c Config) {
		mu.Lock()
		last = c.Model
		mu.Unlock()
	})
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Set(Options{Model: memory.NewCommentModel(nil)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Same(t, r.Current().Model, last)
}

func TestWatchStartsFromCurrent(t *testing.T) {
	r := New()
	first := memory.NewCommentModel(nil)
	_, err := r.Set(Options{Model: first})
	require.NoError(t, err)

	var seen []core.CommentModel
	cancel := r.Watch(func(c Config) {
		seen = append(seen, c.Model)
	})
	require.Len(t, seen, 1)
	assert.Same(t, first, seen[0])

	second := memory.NewCommentModel(nil)
	_, err = r.Set(Options{Model: second})
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.Same(t, second, seen[1])

	cancel()
	_, err = r.Set(Options{Model: memory.NewCommentModel(nil)})
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}
