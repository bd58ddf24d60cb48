package energy

// Params defines all configurable parameters for the composite energy
// score computation.
type Params struct {
	// Relative weights of each subsystem in the composite score.
	// Weights are renormalized over the subsystems that actually
	// produced a result, so a failed subsystem contributes no data
	// instead of dragging the composite toward zero.
	NumerologyWeight float64
	LunarWeight      float64
	AstrologyWeight  float64
	BiorhythmWeight  float64

	// Lunar amplification: phases listed in AmplifiedPhases apply
	// AmplifiedPhaseMultiplier to their intensity for users whose
	// Life Path number appears in AmplifiedLifePaths.
	AmplifiedPhases          []MoonPhase
	AmplifiedLifePaths       []int
	AmplifiedPhaseMultiplier float64

	// Biorhythm critical band: a cycle value within this distance of
	// zero is a transition point.
	CriticalBand int

	// Aspect orb tolerance in degrees.
	AspectOrb float64
}

// ParamsConfig allows overriding the default parameters when creating a
// new Params instance.
type ParamsConfig struct {
	NumerologyWeight float64
	LunarWeight      float64
	AstrologyWeight  float64
	BiorhythmWeight  float64

	AmplifiedPhaseMultiplier float64
	CriticalBand             int
	AspectOrb                float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		NumerologyWeight: 0.25,
		LunarWeight:      0.20,
		AstrologyWeight:  0.25,
		BiorhythmWeight:  0.30,

		AmplifiedPhases:          []MoonPhase{PhaseFull, PhaseNew},
		AmplifiedLifePaths:       []int{6, 7},
		AmplifiedPhaseMultiplier: 2.0,

		CriticalBand: 5,
		AspectOrb:    8.0,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.NumerologyWeight > 0 {
		params.NumerologyWeight = config.NumerologyWeight
	}
	if config.LunarWeight > 0 {
		params.LunarWeight = config.LunarWeight
	}
	if config.AstrologyWeight > 0 {
		params.AstrologyWeight = config.AstrologyWeight
	}
	if config.BiorhythmWeight > 0 {
		params.BiorhythmWeight = config.BiorhythmWeight
	}
	if config.AmplifiedPhaseMultiplier > 0 {
		params.AmplifiedPhaseMultiplier = config.AmplifiedPhaseMultiplier
	}
	if config.CriticalBand > 0 {
		params.CriticalBand = config.CriticalBand
	}
	if config.AspectOrb > 0 {
		params.AspectOrb = config.AspectOrb
	}

	return params
}

// amplifiesLifePath reports whether the given Life Path number receives
// lunar phase amplification.
func (p *Params) amplifiesLifePath(lifePath int) bool {
	for _, lp := range p.AmplifiedLifePaths {
		if lp == lifePath {
			return true
		}
	}
	return false
}

// amplifiesPhase reports whether the given moon phase is one of the
// stronger-effect phases.
func (p *Params) amplifiesPhase(phase MoonPhase) bool {
	for _, ph := range p.AmplifiedPhases {
		if ph == phase {
			return true
		}
	}
	return false
}
