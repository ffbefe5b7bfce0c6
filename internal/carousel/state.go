package carousel

import "go.uber.org/zap/zapcore"

// Phase names the practical state a controller is in.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseTransitioning Phase = "transitioning"
	PhaseFlipped       Phase = "flipped"
)

// State is the controller's observable selection state.
type State struct {
	ActiveIndex int  `json:"active_index"`
	Flipped     bool `json:"flipped"`
	Locked      bool `json:"locked"`
	// Direction is the sign of the last accepted move: +1 forward, -1 back,
	// 0 before any move or for a move onto the same index.
	Direction     int  `json:"direction"`
	AutoplayArmed bool `json:"autoplay_armed"`
}

// Phase reports which practical state s is in.
func (s State) Phase() Phase {
	switch {
	case s.Locked:
		return PhaseTransitioning
	case s.Flipped:
		return PhaseFlipped
	default:
		return PhaseIdle
	}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s State) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("active", s.ActiveIndex)
	enc.AddBool("flipped", s.Flipped)
	enc.AddBool("locked", s.Locked)
	enc.AddInt("direction", s.Direction)
	enc.AddBool("autoplay_armed", s.AutoplayArmed)
	enc.AddString("phase", string(s.Phase()))
	return nil
}
