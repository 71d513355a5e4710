package model

// Stage represents one position in the fixed delivery lifecycle.
// The delivery service moves every package through the same four stages,
// from drop-off at the bus station to hand-over at the campus.
//
// Design decision: We use iota-based constants with an explicit total order
// rather than comparing the server's display strings directly. The server is
// free to reword a label; an unrecognized label degrades to StageUnknown
// instead of breaking index lookup.
type Stage int

const (
	// StageUnknown indicates a status label outside the known lifecycle.
	// Rendering code must treat this as "no stage reached" rather than
	// an error; the server remains authoritative for the raw label.
	StageUnknown Stage = iota - 1

	// StageWaitingBus indicates the package has been registered and is
	// waiting to reach the bus station. This is the initial stage assigned
	// by the service on creation.
	StageWaitingBus

	// StageEnRoute indicates the package is in the delivery van on its way
	// to campus.
	StageEnRoute

	// StageAtCampusHub indicates the package has arrived at the campus hub
	// and is waiting for pickup or final delivery.
	StageAtCampusHub

	// StageDelivered indicates the package has been handed to the recipient.
	// This is the terminal stage; the service does not advance past it.
	StageDelivered
)

// StageCount is the number of stages in the delivery lifecycle.
const StageCount = 4

// stage wire codes as stored by the delivery service.
const (
	codeWaitingBus  = "waiting_bus"
	codeEnRoute     = "en_route_campus"
	codeAtCampusHub = "at_campus_hub"
	codeDelivered   = "delivered"
)

// stage display labels as rendered by the delivery service.
// The historical service serializes these labels into the status field of
// fetched records, so lookup must accept them as well as the codes.
const (
	labelWaitingBus  = "Waiting for package to reach bus station"
	labelEnRoute     = "Package in our van en route to campus"
	labelAtCampusHub = "Package at our campus hub"
	labelDelivered   = "Package delivered to recipient"
)

// Code returns the wire code the delivery service stores for this stage.
// Returns an empty string for StageUnknown.
func (s Stage) Code() string {
	switch s {
	case StageWaitingBus:
		return codeWaitingBus
	case StageEnRoute:
		return codeEnRoute
	case StageAtCampusHub:
		return codeAtCampusHub
	case StageDelivered:
		return codeDelivered
	default:
		return ""
	}
}

// String returns the human-readable label for this stage.
// Returns "unknown" for StageUnknown.
func (s Stage) String() string {
	switch s {
	case StageWaitingBus:
		return labelWaitingBus
	case StageEnRoute:
		return labelEnRoute
	case StageAtCampusHub:
		return labelAtCampusHub
	case StageDelivered:
		return labelDelivered
	default:
		return "unknown"
	}
}

// Index returns the zero-based position of the stage in the lifecycle,
// or -1 for StageUnknown.
func (s Stage) Index() int {
	if s < StageWaitingBus || s > StageDelivered {
		return -1
	}
	return int(s)
}

// IsTerminal returns true if this is the last stage of the lifecycle.
func (s Stage) IsTerminal() bool {
	return s == StageDelivered
}

// Next returns the stage that follows this one. The terminal stage and
// StageUnknown return themselves; the client never sequences stages locally,
// this is used by the demo service only.
func (s Stage) Next() Stage {
	if s < StageWaitingBus || s >= StageDelivered {
		return s
	}
	return s + 1
}

// Stages returns the lifecycle stages in order, earliest first.
func Stages() [StageCount]Stage {
	return [StageCount]Stage{StageWaitingBus, StageEnRoute, StageAtCampusHub, StageDelivered}
}

// ParseStage resolves a server-reported status label to a Stage.
// Both the wire codes (for example "waiting_bus") and the display labels
// (for example "Waiting for package to reach bus station") are accepted
// because the service has historically serialized either form.
// Anything else resolves to StageUnknown; callers must render the degraded
// case without failing.
func ParseStage(label string) Stage {
	switch label {
	case codeWaitingBus, labelWaitingBus:
		return StageWaitingBus
	case codeEnRoute, labelEnRoute:
		return StageEnRoute
	case codeAtCampusHub, labelAtCampusHub:
		return StageAtCampusHub
	case codeDelivered, labelDelivered:
		return StageDelivered
	default:
		return StageUnknown
	}
}

// Progression is the rendering state derived from a package's status label.
// It is a pure value recomputed on every fetch; it holds no mutable state
// and never advances or regresses on its own.
type Progression struct {
	// Current is the resolved stage, or StageUnknown for an
	// unrecognized label.
	Current Stage

	// Label is the raw status label the progression was derived from.
	// Preserved so the degraded case can still display what the server said.
	Label string
}

// NewProgression derives the progression state from a server-reported label.
func NewProgression(label string) Progression {
	return Progression{
		Current: ParseStage(label),
		Label:   label,
	}
}

// Index returns the current stage index, or -1 for an unrecognized label.
func (p Progression) Index() int {
	return p.Current.Index()
}

// Reached reports whether the stage at index i has been reached.
// All stages up to and including the current one are reached; for an
// unrecognized label no stage is reached.
func (p Progression) Reached(i int) bool {
	idx := p.Index()
	return idx >= 0 && i <= idx
}

// ReachedCount returns the number of reached stages (index+1, or zero for
// an unrecognized label).
func (p Progression) ReachedCount() int {
	return p.Index() + 1
}
