package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/petcrossing/server/internal/events"
	"github.com/petcrossing/server/internal/platform/logger"
)

// DefaultParentalCheckInterval is how often restrictions are evaluated.
// This is deliberately much coarser than the simulation tick.
const DefaultParentalCheckInterval = time.Second

// ParentalSettings is the persisted shape of the parental controls.
type ParentalSettings struct {
	Enabled      bool   `json:"enabled"`
	LimitMinutes int    `json:"limit_minutes"` // 0 = no play-time limit
	WindowStart  string `json:"window_start"`  // "15:04", empty = no window
	WindowEnd    string `json:"window_end"`
}

// SettingsStore persists parental settings across runs.
type SettingsStore interface {
	LoadParental() (*ParentalSettings, error) // (nil, nil) when never set
	SaveParental(s *ParentalSettings) error
}

// Parental enforces play-time restrictions on its own coarse timer. It
// never touches the pet directly: on a violation it publishes QUIT through
// the coordinator's serialized entry point and lets the normal quit path
// save and shut down.
type Parental struct {
	mu      sync.Mutex
	logger  *logger.Logger
	publish func(events.Kind)
	store   SettingsStore
	now     func() time.Time

	enabled       bool
	limit         time.Duration
	windowStart   time.Duration // offset into the day
	windowEnd     time.Duration
	windowSet     bool
	sessionStart  time.Time
	checkInterval time.Duration
}

// NewParental creates the checker. publish must be safe to call from the
// checker goroutine (the coordinator's Publish is).
func NewParental(log *logger.Logger, publish func(events.Kind), store SettingsStore) *Parental {
	return &Parental{
		logger:        log,
		publish:       publish,
		store:         store,
		now:           time.Now,
		sessionStart:  time.Now(),
		checkInterval: DefaultParentalCheckInterval,
	}
}

// LoadSettings applies persisted settings, if any.
func (p *Parental) LoadSettings() error {
	if p.store == nil {
		return nil
	}
	s, err := p.store.LoadParental()
	if err != nil {
		return fmt.Errorf("failed to load parental settings: %w", err)
	}
	if s == nil {
		return nil
	}
	return p.Apply(s)
}

// Apply installs settings and persists them.
func (p *Parental) Apply(s *ParentalSettings) error {
	p.mu.Lock()
	p.enabled = s.Enabled
	p.limit = time.Duration(s.LimitMinutes) * time.Minute
	p.windowSet = false
	if s.WindowStart != "" && s.WindowEnd != "" {
		start, err1 := parseClock(s.WindowStart)
		end, err2 := parseClock(s.WindowEnd)
		if err1 != nil || err2 != nil {
			p.mu.Unlock()
			return fmt.Errorf("invalid restricted window %q-%q", s.WindowStart, s.WindowEnd)
		}
		// An all-zero window means "no window" in old save files.
		if start != 0 || end != 0 {
			p.windowStart, p.windowEnd, p.windowSet = start, end, true
		}
	}
	p.mu.Unlock()

	if p.store != nil {
		if err := p.store.SaveParental(s); err != nil {
			return fmt.Errorf("failed to persist parental settings: %w", err)
		}
	}
	return nil
}

// Settings returns the current settings.
func (p *Parental) Settings() ParentalSettings {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := ParentalSettings{
		Enabled:      p.enabled,
		LimitMinutes: int(p.limit / time.Minute),
	}
	if p.windowSet {
		s.WindowStart = formatClock(p.windowStart)
		s.WindowEnd = formatClock(p.windowEnd)
	}
	return s
}

// PlayTime reports how long the current session has been running.
func (p *Parental) PlayTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now().Sub(p.sessionStart)
}

// Restricted reports whether the current wall-clock time falls inside the
// restricted daily window. A window that crosses midnight (e.g. 21:00 to
// 07:00) wraps correctly.
func (p *Parental) Restricted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.restrictedLocked()
}

func (p *Parental) restrictedLocked() bool {
	if !p.enabled || !p.windowSet {
		return false
	}
	now := p.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	current := now.Sub(midnight)

	if p.windowStart < p.windowEnd {
		return current > p.windowStart && current < p.windowEnd
	}
	return current > p.windowStart || current < p.windowEnd
}

// Run starts the background check loop. Call in a goroutine.
func (p *Parental) Run(ctx context.Context) {
	ticker := time.NewTicker(p.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.enforce()
		}
	}
}

func (p *Parental) enforce() {
	p.mu.Lock()
	restricted := p.restrictedLocked()
	overLimit := p.enabled && p.limit > 0 && p.now().Sub(p.sessionStart) >= p.limit
	p.mu.Unlock()

	switch {
	case restricted:
		p.logger.Warn("Gameplay is restricted during this time, quitting")
		p.publish(events.KindQuit)
	case overLimit:
		p.logger.Warn("Play-time limit reached, quitting")
		p.publish(events.KindQuit)
	}
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
