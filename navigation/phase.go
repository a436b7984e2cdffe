package navigation

// Phase is the navigator's position in the fade choreography
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFadingOut
	PhaseAwaitingParticles
	PhaseFadingIn
)

var phaseNames = [...]string{"idle", "fading-out", "awaiting-particles", "fading-in"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// validTransitions is the only way phases may change; every transition cycles back to idle
var validTransitions = map[Phase][]Phase{
	PhaseIdle:              {PhaseFadingOut},
	PhaseFadingOut:         {PhaseAwaitingParticles},
	PhaseAwaitingParticles: {PhaseFadingIn},
	PhaseFadingIn:          {PhaseIdle},
}

// CanTransition checks if a phase change is valid
func CanTransition(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
