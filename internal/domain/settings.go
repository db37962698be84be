package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type EnergyMode string

const (
	EnergyCrisis EnergyMode = "crisis"
	EnergyNormal EnergyMode = "normal"
	EnergyFlow   EnergyMode = "flow"
)

func (m EnergyMode) String() string {
	return string(m)
}

func (m EnergyMode) IsValid() bool {
	return m == EnergyCrisis || m == EnergyNormal || m == EnergyFlow
}

type Momentum string

const (
	MomentumStuck   Momentum = "stuck"
	MomentumNeutral Momentum = "neutral"
	MomentumFlow    Momentum = "flow"
)

func (m Momentum) String() string {
	return string(m)
}

// ClockTime is a wall-clock time of day. It decodes from an hour number (9)
// or an "HH:MM" string.
type ClockTime struct {
	Hour   int
	Minute int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ClockTime{}, ErrInvalidClockTime
	}

	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")

	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}

	minute := 0
	if hasMinutes {
		minute, err = strconv.Atoi(minutePart)
		if err != nil {
			return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
		}
	}

	c := ClockTime{Hour: hour, Minute: minute}
	if !c.Valid() {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}

	return c, nil
}

// Valid allows 24:00 as the end of the day.
func (c ClockTime) Valid() bool {
	if c.Hour == 24 {
		return c.Minute == 0
	}
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the instant at this clock time on day's calendar date, in day's location.
func (c ClockTime) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).
		Add(time.Duration(c.Minutes()) * time.Minute)
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return c.UnmarshalText([]byte(s))
	}

	var hour float64
	if err := json.Unmarshal(data, &hour); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidClockTime, string(data))
	}

	whole := int(hour)
	parsed := ClockTime{Hour: whole, Minute: int((hour - float64(whole)) * 60)}
	if !parsed.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidClockTime, string(data))
	}
	*c = parsed
	return nil
}

type WorkingHours struct {
	Start ClockTime `json:"start" yaml:"start"`
	End   ClockTime `json:"end" yaml:"end"`
}

func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		Start: NewClockTime(9, 0),
		End:   NewClockTime(17, 0),
	}
}

func (w WorkingHours) Valid() bool {
	return w.Start.Valid() && w.End.Valid() && w.End.Minutes() > w.Start.Minutes()
}

// Bounds returns the working interval on day's calendar date.
func (w WorkingHours) Bounds(day time.Time) (time.Time, time.Time) {
	return w.Start.On(day), w.End.On(day)
}

func (w WorkingHours) Minutes() int {
	if !w.Valid() {
		return 0
	}
	return w.End.Minutes() - w.Start.Minutes()
}

const (
	DefaultEnergyLevel = 3
	DefaultFocusLevel  = 3
	minLevel           = 1
	maxLevel           = 5
)

// DaySettings is the per-user, per-day planning state supplied to the engine.
type DaySettings struct {
	Energy                 int          `json:"energy" yaml:"energy"`
	Focus                  int          `json:"focus" yaml:"focus"`
	EnergyMode             EnergyMode   `json:"energy_mode" yaml:"energy_mode"`
	WorkingHours           WorkingHours `json:"working_hours" yaml:"working_hours"`
	ManualTimeBlockMinutes int          `json:"manual_time_block_minutes" yaml:"manual_time_block_minutes"`
}

func DefaultDaySettings() DaySettings {
	return DaySettings{
		Energy:       DefaultEnergyLevel,
		Focus:        DefaultFocusLevel,
		EnergyMode:   EnergyNormal,
		WorkingHours: DefaultWorkingHours(),
	}
}

// WithDefaults fills zero or out-of-range fields from DefaultDaySettings.
func (s DaySettings) WithDefaults() DaySettings {
	def := DefaultDaySettings()

	if s.Energy < minLevel || s.Energy > maxLevel {
		s.Energy = def.Energy
	}
	if s.Focus < minLevel || s.Focus > maxLevel {
		s.Focus = def.Focus
	}
	if !s.EnergyMode.IsValid() {
		s.EnergyMode = def.EnergyMode
	}
	if !s.WorkingHours.Valid() {
		s.WorkingHours = def.WorkingHours
	}
	if s.ManualTimeBlockMinutes < 0 {
		s.ManualTimeBlockMinutes = 0
	}

	return s
}

func (s DaySettings) Validate() error {
	if s.Energy < minLevel || s.Energy > maxLevel {
		return fmt.Errorf("%w: energy must be between %d and %d", ErrInvalidSettings, minLevel, maxLevel)
	}
	if s.Focus < minLevel || s.Focus > maxLevel {
		return fmt.Errorf("%w: focus must be between %d and %d", ErrInvalidSettings, minLevel, maxLevel)
	}
	if !s.EnergyMode.IsValid() {
		return fmt.Errorf("%w: unknown energy mode %q", ErrInvalidSettings, s.EnergyMode)
	}
	if !s.WorkingHours.Valid() {
		return fmt.Errorf("%w: working hours must end after they start", ErrInvalidSettings)
	}
	if s.ManualTimeBlockMinutes < 0 {
		return fmt.Errorf("%w: manual time block must not be negative", ErrInvalidSettings)
	}
	return nil
}
