package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pixisphere/internal/common/config"
	"pixisphere/internal/common/logger"
	"pixisphere/internal/models"
	"pixisphere/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisPublisher) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	pub := NewRedisPublisher(config.RedisConfig{
		Address: mr.Addr(),
		Channel: "pixisphere:test",
	})
	t.Cleanup(func() { _ = pub.Close() })
	return mr, pub
}

func subscribe(t *testing.T, addr, channel string) <-chan *redis.Message {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	sub := client.Subscribe(context.Background(), channel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)
	return sub.Channel()
}

func receive(t *testing.T, ch <-chan *redis.Message) Event {
	t.Helper()
	select {
	case msg := <-ch:
		var ev Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
		return Event{}
	}
}

func TestRedisPublisher_Publish(t *testing.T) {
	mr, pub := setupRedis(t)
	require.NoError(t, pub.Ping(context.Background()))
	assert.Equal(t, "pixisphere:test", pub.Channel())

	ch := subscribe(t, mr.Addr(), pub.Channel())

	require.NoError(t, pub.Publish(context.Background(), Event{
		Version:         3,
		Query:           "delhi",
		CollectionCount: 2,
		FeaturedIDs:     []string{"2", "1"},
	}))

	ev := receive(t, ch)
	assert.Equal(t, uint64(3), ev.Version)
	assert.Equal(t, "delhi", ev.Query)
	assert.Equal(t, []string{"2", "1"}, ev.FeaturedIDs)
}

func TestRedisPublisher_PingFailsWhenDown(t *testing.T) {
	mr, pub := setupRedis(t)
	mr.Close()

	assert.Error(t, pub.Ping(context.Background()))
	assert.Error(t, pub.Publish(context.Background(), Event{}))
}

func TestEventFromState(t *testing.T) {
	ev := EventFromState(store.State{
		Collection: []models.Photographer{{ID: "1"}, {ID: "2"}},
		Featured:   []models.Photographer{{ID: "2"}},
		Query:      "x",
		Version:    7,
		Err:        errors.New("boom"),
	})

	assert.Equal(t, 2, ev.CollectionCount)
	assert.Equal(t, []string{"2"}, ev.FeaturedIDs)
	assert.True(t, ev.Failed)
	assert.Equal(t, uint64(7), ev.Version)
	assert.False(t, ev.PublishedAt.IsZero())
}

func TestSubscriber_PublishesStoreChanges(t *testing.T) {
	mr, pub := setupRedis(t)
	ch := subscribe(t, mr.Addr(), pub.Channel())

	fn := pub.Subscriber(context.Background(), logger.NewTestLogger(t))
	fn(store.State{IsLoading: true, Version: 1})

	ev := receive(t, ch)
	assert.True(t, ev.IsLoading)
	assert.Equal(t, uint64(1), ev.Version)
	assert.NotNil(t, ev.FeaturedIDs)
}
