package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder is a comparable subscriber; Unsubscribe relies on equality.
type recorder struct {
	log  *[]string
	name string
}

func (r *recorder) HandleEvent(kind Kind) {
	*r.log = append(*r.log, r.name+":"+string(kind))
}

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	d := NewDispatcher()
	var log []string
	d.Subscribe(KindPlay, &recorder{log: &log, name: "a"})
	d.Subscribe(KindPlay, &recorder{log: &log, name: "b"})
	d.Subscribe(KindWalk, &recorder{log: &log, name: "c"})

	d.Publish(KindPlay)
	assert.Equal(t, []string{"a:PLAY", "b:PLAY"}, log)
}

func TestPublishWithNoSubscribersIsNoOp(t *testing.T) {
	d := NewDispatcher()
	d.Publish(KindVet)
}

func TestDuplicateSubscriptionDeliversTwice(t *testing.T) {
	d := NewDispatcher()
	var log []string
	r := &recorder{log: &log, name: "a"}
	d.Subscribe(KindHeal, r)
	d.Subscribe(KindHeal, r)

	d.Publish(KindHeal)
	assert.Len(t, log, 2)
}

func TestUnsubscribeRemovesFirstRegistrationOnly(t *testing.T) {
	d := NewDispatcher()
	var log []string
	r := &recorder{log: &log, name: "a"}
	d.Subscribe(KindHeal, r)
	d.Subscribe(KindHeal, r)

	d.Unsubscribe(KindHeal, r)
	d.Publish(KindHeal)
	assert.Len(t, log, 1)

	// Unknown pairs are a no-op.
	d.Unsubscribe(KindVet, r)
	d.Unsubscribe(KindHeal, &recorder{log: &log, name: "b"})
	d.Publish(KindHeal)
	assert.Len(t, log, 2)
}

func TestReentrantPublish(t *testing.T) {
	d := NewDispatcher()
	var log []Kind
	d.Subscribe(KindMenu, SubscriberFunc(func(kind Kind) {
		log = append(log, kind)
		// A handler may publish further events from inside delivery.
		d.Publish(KindSaveGame)
	}))
	d.Subscribe(KindSaveGame, SubscriberFunc(func(kind Kind) {
		log = append(log, kind)
	}))

	d.Publish(KindMenu)
	assert.Equal(t, []Kind{KindMenu, KindSaveGame}, log)
}
