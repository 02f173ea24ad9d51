package main

import (
	"fmt"
	"strings"
)

// numPatterns is the number of weekly operating pattern templates. Pattern
// code 1 means the machine is shut down for the week; code 9 is the longest
// operating pattern.
const numPatterns = 9

// Side selects which of a machine's two weekly pattern series a part touches.
type Side int

const (
	WeekDay Side = iota
	WeekEnd
)

// Machine holds one resource's calendar patterns, its unit pattern costs, and
// the latest load/delay feedback from the judge. Unit cost tables are filled
// once from the initialization header and never change; pattern arrays mutate
// only through Part apply/undo.
type Machine struct {
	WeekDayPatterns []int
	WeekEndPatterns []int

	WeekDayPatternCosts [numPatterns]float64
	WeekEndPatternCosts [numPatterns]float64

	Loads  []float64
	Delays []int
}

// State is the full solver-side view of the schedule plus the feedback
// scalars of the most recent judge reply.
type State struct {
	Machines []Machine

	Score        int64
	NoViolations int
	NoDelays     int
}

// NewState allocates a state for the given horizon and fleet size. Patterns
// start at zero; the controller fills them before the first emission.
func NewState(weeks, machines int) *State {
	state := &State{Machines: make([]Machine, machines)}
	for i := range state.Machines {
		m := &state.Machines[i]
		m.WeekDayPatterns = make([]int, weeks)
		m.WeekEndPatterns = make([]int, weeks)
		m.Loads = make([]float64, weeks)
		m.Delays = make([]int, weeks)
	}
	return state
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		Machines:     make([]Machine, len(s.Machines)),
		Score:        s.Score,
		NoViolations: s.NoViolations,
		NoDelays:     s.NoDelays,
	}
	for i := range s.Machines {
		m := &s.Machines[i]
		cm := &c.Machines[i]
		cm.WeekDayPatterns = append([]int(nil), m.WeekDayPatterns...)
		cm.WeekEndPatterns = append([]int(nil), m.WeekEndPatterns...)
		cm.WeekDayPatternCosts = m.WeekDayPatternCosts
		cm.WeekEndPatternCosts = m.WeekEndPatternCosts
		cm.Loads = append([]float64(nil), m.Loads...)
		cm.Delays = append([]int(nil), m.Delays...)
	}
	return c
}

// Part is a single slot rewrite: one (machine, week, side) pattern value
// changed from From to To. CostImprovement is the unit-cost delta of the
// rewrite; positive means the new pattern is cheaper.
type Part struct {
	Machine int
	Week    int
	Side    Side
	From    int
	To      int

	CostImprovement float64
}

// weekDayPart snapshots the current weekday pattern of (machine, week) and
// builds the part rewriting it to newPattern.
func weekDayPart(state *State, machine, week, newPattern int) Part {
	m := &state.Machines[machine]
	from := m.WeekDayPatterns[week]
	return Part{
		Machine:         machine,
		Week:            week,
		Side:            WeekDay,
		From:            from,
		To:              newPattern,
		CostImprovement: m.WeekDayPatternCosts[from-1] - m.WeekDayPatternCosts[newPattern-1],
	}
}

// weekEndPart is the weekend-side counterpart of weekDayPart.
func weekEndPart(state *State, machine, week, newPattern int) Part {
	m := &state.Machines[machine]
	from := m.WeekEndPatterns[week]
	return Part{
		Machine:         machine,
		Week:            week,
		Side:            WeekEnd,
		From:            from,
		To:              newPattern,
		CostImprovement: m.WeekEndPatternCosts[from-1] - m.WeekEndPatternCosts[newPattern-1],
	}
}

func (p Part) apply(state *State) {
	p.write(state, p.To)
}

func (p Part) undo(state *State) {
	p.write(state, p.From)
}

func (p Part) write(state *State, pattern int) {
	if pattern < 1 || pattern > numPatterns {
		panic(fmt.Sprintf("pattern code %d out of range for machine %d week %d", pattern, p.Machine, p.Week))
	}
	m := &state.Machines[p.Machine]
	if p.Side == WeekDay {
		m.WeekDayPatterns[p.Week] = pattern
	} else {
		m.WeekEndPatterns[p.Week] = pattern
	}
}

// Move is a named, ordered, atomically-applied group of parts. ID is the
// structural identity used for blacklisting: every part's
// machine-week-side-from-to tuple joined in part order. Two moves with the
// same parts are the same candidate regardless of name.
type Move struct {
	ID              string
	Name            string
	CostImprovement float64
	Parts           []Part
}

func newMove(name string, parts []Part) Move {
	var id strings.Builder

	improvement := 0.0
	for i, part := range parts {
		improvement += part.CostImprovement
		if i > 0 {
			id.WriteByte('_')
		}
		fmt.Fprintf(&id, "%d-%d-%d-%d-%d", part.Machine, part.Week, part.Side, part.From, part.To)
	}

	return Move{
		ID:              id.String(),
		Name:            name,
		CostImprovement: improvement,
		Parts:           parts,
	}
}

func (m *Move) apply(state *State) {
	for _, part := range m.Parts {
		part.apply(state)
	}
}

func (m *Move) undo(state *State) {
	for _, part := range m.Parts {
		part.undo(state)
	}
}

// partsImprovement sums the cost improvement of a part list without building
// a move around it.
func partsImprovement(parts []Part) float64 {
	improvement := 0.0
	for _, part := range parts {
		improvement += part.CostImprovement
	}
	return improvement
}
