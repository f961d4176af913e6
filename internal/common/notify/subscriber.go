// internal/common/notify/subscriber.go
package notify

import (
	"context"
	"time"

	"pixisphere/internal/common/logger"
	"pixisphere/internal/store"
)

// EventFromState summarises a store snapshot.
func EventFromState(st store.State) Event {
	featured := make([]string, len(st.Featured))
	for i, p := range st.Featured {
		featured[i] = p.ID.String()
	}
	return Event{
		Version:         st.Version,
		Query:           st.Query,
		IsLoading:       st.IsLoading,
		CollectionCount: len(st.Collection),
		FeaturedIDs:     featured,
		Failed:          st.Err != nil,
		PublishedAt:     time.Now().UTC(),
	}
}

// Subscriber returns a store subscriber that publishes every change.
// Publish failures are logged and otherwise ignored.
func (p *RedisPublisher) Subscriber(ctx context.Context, log logger.Logger) store.Subscriber {
	log = log.WithFields(map[string]interface{}{
		"component": "notify",
		"channel":   p.channel,
	})
	return func(st store.State) {
		if err := p.Publish(ctx, EventFromState(st)); err != nil {
			log.WithError(err).Warn("state publish failed", map[string]interface{}{
				"version": st.Version,
			})
		}
	}
}
