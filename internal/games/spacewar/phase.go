package spacewar

import "math"

// Phase is a named segment of session time.
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseRush
	// PhaseBoss is displayed by hosts but has no entry transition and no behavior.
	PhaseBoss
)

func (p Phase) String() string {
	switch p {
	case PhaseNormal:
		return "normal"
	case PhaseRush:
		return "rush"
	case PhaseBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// phaseMachine tracks the current phase and its clock.
type phaseMachine struct {
	phase            Phase
	elapsedMs        float64
	warning          bool
	warningIntensity float64

	normalMs        float64
	rushMs          float64
	warningPeriodMs float64
}

// phaseStep describes what the machine did on advance.
type phaseStep struct {
	changed          bool
	from, to         Phase
	requestFormation bool
}

func newPhaseMachine(normalMs, rushMs, warningPeriodMs float64) phaseMachine {
	if warningPeriodMs <= 0 {
		warningPeriodMs = 200
	}
	return phaseMachine{
		phase:           PhaseNormal,
		normalMs:        normalMs,
		rushMs:          rushMs,
		warningPeriodMs: warningPeriodMs,
	}
}

// advance accumulates phase time and evaluates the transitions once.
func (m *phaseMachine) advance(deltaMs float64) phaseStep {
	m.elapsedMs += deltaMs

	switch m.phase {
	case PhaseNormal:
		if m.elapsedMs >= m.normalMs {
			return m.transition(PhaseRush, true, false)
		}
	case PhaseRush:
		if m.warning {
			m.warningIntensity = math.Abs(math.Sin(m.elapsedMs / m.warningPeriodMs))
		}
		if m.elapsedMs >= m.rushMs {
			return m.transition(PhaseNormal, false, true)
		}
	case PhaseBoss:
		// no timer
	}
	return phaseStep{}
}

func (m *phaseMachine) transition(to Phase, warning, requestFormation bool) phaseStep {
	step := phaseStep{changed: true, from: m.phase, to: to, requestFormation: requestFormation}
	m.phase = to
	m.elapsedMs = 0
	m.warning = warning
	if !warning {
		m.warningIntensity = 0
	}
	return step
}
