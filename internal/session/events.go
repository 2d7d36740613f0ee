package session

// Event is a discrete external stimulus delivered by the host event
// loop. The engine advances only inside HandleEvent; no event handler
// blocks or suspends.
type Event interface {
	isEvent()
}

// Motion is a pointer movement observation at canvas coordinates.
type Motion struct {
	X float64
	Y float64
}

// StartMark is the participant activating the start marker. The
// activation point becomes the first trial's reference position.
type StartMark struct {
	X float64
	Y float64
}

// TargetHit is the participant activating a target. TargetID must
// match the currently bound target or the event is ignored.
type TargetHit struct {
	X        float64
	Y        float64
	TargetID string
}

// Stop is an explicit early-stop request.
type Stop struct{}

// Resize updates the canvas dimensions. Valid in any state; targets
// already placed are not moved.
type Resize struct {
	Width  float64
	Height float64
}

func (Motion) isEvent()    {}
func (StartMark) isEvent() {}
func (TargetHit) isEvent() {}
func (Stop) isEvent()      {}
func (Resize) isEvent()    {}
