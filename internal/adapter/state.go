package adapter

type State int

const (
	StateIdle State = iota
	StateHandlingMetadata
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHandlingMetadata:
		return "handling metadata"
	case StateRunning:
		return "running sequence"
	default:
		return "unknown"
	}
}
