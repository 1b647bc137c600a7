package services

import (
	"github.com/rs/zerolog/log"

	"fakestore/pkg/events"
)

// publishEvent publishes a resource event when an events client is
// configured. Publish failures are logged, never surfaced to callers:
// the store operation already succeeded.
func publishEvent(client *events.Client, event string, payload interface{}) {
	if client == nil {
		return
	}
	if err := client.Publish(event, payload); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("failed to publish event")
	}
}
