package exercise

import "time"

// Phase is a step of the breathing cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInhale
	PhaseHold
	PhaseExhale
	PhaseDone
)

var phaseNames = map[Phase]string{
	PhaseIdle:   "Listo",
	PhaseInhale: "Inhala",
	PhaseHold:   "Sostén",
	PhaseExhale: "Exhala",
	PhaseDone:   "Completado",
}

func (p Phase) String() string { return phaseNames[p] }

// Default breathing rhythm, matching the respiracion steps.
const (
	DefaultInhale = 4 * time.Second
	DefaultHold   = 4 * time.Second
	DefaultExhale = 6 * time.Second
	DefaultCycles = 5
)

// Pacer times the guided breathing exercise. It is driven by the caller's
// clock: Start and Tick take the current time, so it holds no goroutines.
type Pacer struct {
	Inhale time.Duration
	Hold   time.Duration
	Exhale time.Duration
	Cycles int

	phase    Phase
	cycle    int // 1-based while running
	phaseEnd time.Time
	left     time.Duration
}

func NewPacer() *Pacer {
	return &Pacer{
		Inhale: DefaultInhale,
		Hold:   DefaultHold,
		Exhale: DefaultExhale,
		Cycles: DefaultCycles,
	}
}

func (p *Pacer) Phase() Phase { return p.phase }

// Cycle is the current 1-based cycle, or 0 when idle.
func (p *Pacer) Cycle() int { return p.cycle }

// Remaining is the time left in the current phase as of the last Start or Tick.
func (p *Pacer) Remaining() time.Duration { return p.left }

func (p *Pacer) Running() bool {
	return p.phase == PhaseInhale || p.phase == PhaseHold || p.phase == PhaseExhale
}

func (p *Pacer) Start(now time.Time) {
	p.cycle = 1
	p.enter(PhaseInhale, now)
}

// Stop returns the pacer to idle.
func (p *Pacer) Stop() {
	p.phase = PhaseIdle
	p.cycle = 0
	p.left = 0
}

// Tick advances the pacer to now. It reports whether the phase changed.
// A tick that arrives late skips through every phase that already ended.
func (p *Pacer) Tick(now time.Time) bool {
	if !p.Running() {
		return false
	}
	changed := false
	for p.Running() && !now.Before(p.phaseEnd) {
		p.advance()
		changed = true
	}
	if p.Running() {
		p.left = p.phaseEnd.Sub(now)
	}
	return changed
}

// Progress is the fraction of the whole session completed, in [0,1].
func (p *Pacer) Progress() float64 {
	switch p.phase {
	case PhaseIdle:
		return 0
	case PhaseDone:
		return 1
	}
	cycleLen := p.Inhale + p.Hold + p.Exhale
	total := cycleLen * time.Duration(p.Cycles)
	if total <= 0 {
		return 0
	}
	elapsed := cycleLen * time.Duration(p.cycle-1)
	switch p.phase {
	case PhaseInhale:
		elapsed += p.Inhale - p.left
	case PhaseHold:
		elapsed += p.Inhale + p.Hold - p.left
	case PhaseExhale:
		elapsed += cycleLen - p.left
	}
	return float64(elapsed) / float64(total)
}

func (p *Pacer) advance() {
	end := p.phaseEnd
	switch p.phase {
	case PhaseInhale:
		p.enter(PhaseHold, end)
	case PhaseHold:
		p.enter(PhaseExhale, end)
	case PhaseExhale:
		if p.cycle >= p.Cycles {
			p.phase = PhaseDone
			p.left = 0
			return
		}
		p.cycle++
		p.enter(PhaseInhale, end)
	}
}

func (p *Pacer) enter(ph Phase, from time.Time) {
	p.phase = ph
	d := p.duration(ph)
	p.phaseEnd = from.Add(d)
	p.left = d
}

func (p *Pacer) duration(ph Phase) time.Duration {
	switch ph {
	case PhaseInhale:
		return p.Inhale
	case PhaseHold:
		return p.Hold
	case PhaseExhale:
		return p.Exhale
	}
	return 0
}
