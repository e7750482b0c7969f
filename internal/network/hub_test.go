package network

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcrossing/server/internal/domain/pet"
	"github.com/petcrossing/server/internal/engine"
	"github.com/petcrossing/server/internal/events"
	"github.com/petcrossing/server/internal/platform/logger"
)

func newTestHub(published *[]events.Kind) *Hub {
	return NewHub(logger.NewLogger(), func(k events.Kind) {
		*published = append(*published, k)
	})
}

func TestOnVitalsEnqueuesEnvelope(t *testing.T) {
	var published []events.Kind
	h := newTestHub(&published)

	h.OnVitals(engine.Snapshot{Name: "Tony", State: "NORMAL", Health: 80})

	var env envelope
	require.NoError(t, json.Unmarshal(<-h.broadcast, &env))
	assert.Equal(t, "vitals", env.Type)

	payload := env.Payload.(map[string]interface{})
	assert.Equal(t, "Tony", payload["name"])
	assert.Equal(t, 80.0, payload["health"])
}

func TestOnStateChangeEnqueuesTransition(t *testing.T) {
	var published []events.Kind
	h := newTestHub(&published)

	h.OnStateChange(pet.StateNormal, pet.StateAngry)

	var env envelope
	require.NoError(t, json.Unmarshal(<-h.broadcast, &env))
	assert.Equal(t, "state_change", env.Type)

	payload := env.Payload.(map[string]interface{})
	assert.Equal(t, "NORMAL", payload["from"])
	assert.Equal(t, "ANGRY", payload["to"])
}

func TestFullBroadcastQueueDropsInsteadOfBlocking(t *testing.T) {
	var published []events.Kind
	h := newTestHub(&published)

	// Nobody drains the queue; the send must never stall a tick.
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.OnVitals(engine.Snapshot{Name: "Tony"})
	}
	assert.Len(t, h.broadcast, cap(h.broadcast))
}

func TestHandleIntentWhitelist(t *testing.T) {
	var published []events.Kind
	h := newTestHub(&published)
	c := &Client{hub: h}

	c.handleIntent(Intent{Action: "FEED_APPLE"})
	c.handleIntent(Intent{Action: "MENU"})
	assert.Equal(t, []events.Kind{events.KindFeedApple, events.KindMenu}, published)

	// Privileged and unknown intents are refused.
	c.handleIntent(Intent{Action: "NEW_GAME"})
	c.handleIntent(Intent{Action: "FATAL_ERROR"})
	c.handleIntent(Intent{Action: "DROP TABLE saves"})
	assert.Len(t, published, 2)
}
