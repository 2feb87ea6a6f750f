package timer

import (
	"errors"
	"fmt"
	"time"
)

// ErrLocked is returned when settings change while a countdown is running.
var ErrLocked = errors.New("timer settings cannot change while a session is running")

// Mode selects which countdown, if any, drives the session.
type Mode int

const (
	ModeOff         Mode = iota // No countdown
	ModePerQuestion             // Resets for every question
	ModeWholeTest               // One countdown for the whole session
)

var modeNames = map[Mode]string{
	ModeOff:         "off",
	ModePerQuestion: "per-question",
	ModeWholeTest:   "whole-test",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "off", "per-question" or "whole-test".
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeOff, fmt.Errorf("unknown timer mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Settings is the timer configuration chosen before a session starts.
type Settings struct {
	Mode     Mode          `json:"timerMode"`
	Duration time.Duration `json:"timerDuration"`
}

// Enabled reports whether a countdown is configured.
func (s Settings) Enabled() bool {
	return s.Mode != ModeOff
}

// Validate checks that an enabled timer has a positive duration.
func (s Settings) Validate() error {
	if _, ok := modeNames[s.Mode]; !ok {
		return fmt.Errorf("invalid timer mode %d", int(s.Mode))
	}
	if s.Enabled() && s.Duration <= 0 {
		return fmt.Errorf("%s timer needs a positive duration, got %s", s.Mode, s.Duration)
	}
	return nil
}

// Event is what a tick produced.
type Event int

const (
	EventNone            Event = iota // Nothing happened
	EventQuestionExpired              // Per-question countdown hit zero
	EventTestExpired                  // Whole-test countdown hit zero; timer stopped
)

// Controller tracks the countdown for one session. It does not own a clock:
// the UI delivers ticks as single-shot messages tagged with Generation and
// reschedules the next one only while Running reports true.
type Controller struct {
	settings   Settings
	remaining  time.Duration
	running    bool
	generation int
}

// New creates a stopped controller.
func New(settings Settings) *Controller {
	return &Controller{settings: settings, remaining: settings.Duration}
}

// Settings returns the current configuration.
func (c *Controller) Settings() Settings { return c.settings }

// Configure replaces the settings and resets the countdown.
func (c *Controller) Configure(s Settings) error {
	if c.running {
		return ErrLocked
	}
	if err := s.Validate(); err != nil {
		return err
	}
	c.settings = s
	c.remaining = s.Duration
	return nil
}

// Start begins the countdown. With ModeOff the controller stays stopped.
func (c *Controller) Start() {
	c.generation++
	c.remaining = c.settings.Duration
	c.running = c.settings.Enabled()
}

// Stop halts the countdown. Ticks already in flight become stale.
func (c *Controller) Stop() {
	if c.running {
		c.generation++
	}
	c.running = false
}

// Running reports whether the next tick should be scheduled.
func (c *Controller) Running() bool { return c.running }

// Generation identifies the current tick chain.
func (c *Controller) Generation() int { return c.generation }

// Remaining returns the time left on the active countdown.
func (c *Controller) Remaining() time.Duration {
	if c.remaining < 0 {
		return 0
	}
	return c.remaining
}

// ResetQuestion restarts the per-question countdown and starts a new tick
// generation, so a tick scheduled for the previous question is ignored. It
// has no effect in other modes.
func (c *Controller) ResetQuestion() {
	if c.running && c.settings.Mode == ModePerQuestion {
		c.remaining = c.settings.Duration
		c.generation++
	}
}

// Tick advances the countdown by elapsed. Ticks from another generation or
// arriving after Stop are ignored.
func (c *Controller) Tick(generation int, elapsed time.Duration) Event {
	if !c.running || generation != c.generation {
		return EventNone
	}

	c.remaining -= elapsed
	if c.remaining > 0 {
		return EventNone
	}

	switch c.settings.Mode {
	case ModePerQuestion:
		c.remaining = 0
		return EventQuestionExpired
	case ModeWholeTest:
		c.remaining = 0
		c.Stop()
		return EventTestExpired
	}
	return EventNone
}
