// Package events provides the publish/subscribe backbone of the game.
// Every user intent and navigation change travels through the Dispatcher;
// the Journal keeps an append-only record of what was published.
package events

// Kind names a game event. Action kinds carry a player intent toward the
// live pet; navigation kinds move the player between views and drive the
// simulation clock.
type Kind string

const (
	// Navigation
	KindMenu          Kind = "MENU"
	KindInGame        Kind = "INGAME"
	KindMinigame      Kind = "MINIGAME"
	KindLeaveMinigame Kind = "LEAVEMINIGAME"
	KindTutorial      Kind = "TUTORIAL"
	KindParental      Kind = "PARENTAL"
	KindNewGame       Kind = "NEW_GAME"
	KindLoadGame      Kind = "LOAD_GAME"
	KindSaveGame      Kind = "SAVE_GAME"
	KindRevive        Kind = "REVIVE"
	KindQuit          Kind = "QUIT"
	KindFatalError    Kind = "FATAL_ERROR"

	// Pet actions
	KindFeedApple  Kind = "FEED_APPLE"
	KindFeedBanana Kind = "FEED_BANANA"
	KindGiftPurple Kind = "GIFT_PURPLE"
	KindGiftGreen  Kind = "GIFT_GREEN"
	KindPlay       Kind = "PLAY"
	KindWalk       Kind = "WALK"
	KindVet        Kind = "VET"
	KindHeal       Kind = "HEAL"
	KindSleep      Kind = "SLEEP"
)

// Subscriber handles events it registered for.
type Subscriber interface {
	HandleEvent(kind Kind)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(Kind)

func (f SubscriberFunc) HandleEvent(kind Kind) { f(kind) }

// Dispatcher delivers events synchronously to subscribers in registration
// order. It is re-entrant: a subscriber may publish further events from its
// handler, and no cycle detection is attempted. It is NOT safe for
// concurrent use; callers on other goroutines must serialize onto the
// owning context first (the session coordinator does this).
type Dispatcher struct {
	subscribers map[Kind][]Subscriber
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{subscribers: make(map[Kind][]Subscriber)}
}

// Subscribe registers a subscriber for a kind. Registering the same
// subscriber twice is allowed and yields duplicate delivery.
func (d *Dispatcher) Subscribe(kind Kind, s Subscriber) {
	d.subscribers[kind] = append(d.subscribers[kind], s)
}

// Unsubscribe removes the first registration of the subscriber for the
// kind, if any. Unknown pairs are a no-op.
func (d *Dispatcher) Unsubscribe(kind Kind, s Subscriber) {
	subs := d.subscribers[kind]
	for i, sub := range subs {
		if sub == s {
			d.subscribers[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish invokes each subscriber registered for the kind, in order.
func (d *Dispatcher) Publish(kind Kind) {
	for _, s := range d.subscribers[kind] {
		s.HandleEvent(kind)
	}
}
