package domain

import (
	"fmt"
	"time"
)

// Arrival window for a stop. Arriving before Start means waiting;
// arriving after End makes the sequence infeasible.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Represents a single delivery location handled by the optimizer.
// A Stop is immutable once submitted for a given optimization request.
type Stop struct {
	ID          string
	Lat         float64
	Lon         float64
	Priority    int
	Demand      int
	ServiceTime time.Duration
	Window      *TimeWindow
}

// Validate checks coordinate ranges and window ordering.
func (s Stop) Validate() error {
	if s.ID == "" {
		return &InputError{Field: "stop.id", Reason: "must be non-empty"}
	}
	if s.Lat < -90 || s.Lat > 90 {
		return &InputError{
			Field:  fmt.Sprintf("stop[%s].lat", s.ID),
			Reason: fmt.Sprintf("latitude %v out of range [-90,90]", s.Lat),
		}
	}
	if s.Lon < -180 || s.Lon > 180 {
		return &InputError{
			Field:  fmt.Sprintf("stop[%s].lon", s.ID),
			Reason: fmt.Sprintf("longitude %v out of range [-180,180]", s.Lon),
		}
	}
	if s.Demand < 0 {
		return &InputError{
			Field:  fmt.Sprintf("stop[%s].demand", s.ID),
			Reason: "must not be negative",
		}
	}
	if s.ServiceTime < 0 {
		return &InputError{
			Field:  fmt.Sprintf("stop[%s].service_time", s.ID),
			Reason: "must not be negative",
		}
	}
	if s.Window != nil && !s.Window.End.After(s.Window.Start) {
		return &InputError{
			Field:  fmt.Sprintf("stop[%s].window", s.ID),
			Reason: "window end must be after window start",
		}
	}
	return nil
}
