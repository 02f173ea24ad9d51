package main

import (
	"fmt"
	"io"
	"os"
)

// Solver drives the interactive hill climb: one candidate move per round,
// validated against the next feedback block, reverted and blacklisted when
// the judge reports a regression.
type Solver struct {
	noWeeks        int
	noMachines     int
	maxChanges     int
	noInteractions int

	cfg Config

	currentInteraction int

	bestScore int64
	lastMove  *Move
	badMoves  map[string]struct{}

	isRepairing        bool
	reduceGlobalFailed bool
}

// NewSolver creates a solver for the given problem dimensions.
func NewSolver(noWeeks, noMachines, maxChanges, noInteractions int, cfg Config) *Solver {
	return &Solver{
		noWeeks:        noWeeks,
		noMachines:     noMachines,
		maxChanges:     maxChanges,
		noInteractions: noInteractions,
		cfg:            cfg,
		badMoves:       make(map[string]struct{}),
	}
}

// Run executes the full judge interaction: initialization header, then
// noInteractions rounds of grid emission and feedback. The refine step is
// skipped after the final read.
func Run(r io.Reader, w io.Writer, cfg Config) error {
	js := newJudgeStream(r, w)

	h, err := js.readHeader()
	if err != nil {
		return err
	}

	if Verbose {
		fmt.Fprintf(logw(), "[init] weeks=%d machines=%d maxChanges=%d interactions=%d\n",
			h.Weeks, h.Machines, h.MaxChanges, h.Interactions)
	}

	state := NewState(h.Weeks, h.Machines)
	for i := range state.Machines {
		if err := js.readUnitCosts(&state.Machines[i]); err != nil {
			return err
		}
	}

	solver := NewSolver(h.Weeks, h.Machines, h.MaxChanges, h.Interactions, cfg)
	solver.currentInteraction = 1
	solver.setInitialPatterns(state)

	for i := 0; i < h.Interactions; i++ {
		if err := js.writeGrid(state); err != nil {
			return err
		}
		if err := js.readFeedback(state); err != nil {
			return err
		}

		if Verbose {
			fmt.Fprintf(logw(), "[round %d] score=%d violations=%d delays=%d\n",
				i+1, state.Score, state.NoViolations, state.NoDelays)
		}

		if i == h.Interactions-1 {
			break
		}

		solver.currentInteraction = i + 2
		solver.refine(state)
	}

	if Verbose {
		fmt.Fprint(logw(), FormatSchedule(state, h.MaxChanges))
	}

	return nil
}

// setInitialPatterns fills every machine's both sides with the most expensive
// pattern. It cannot cause delays, so the first feedback is a safe baseline.
func (s *Solver) setInitialPatterns(state *State) {
	for i := range state.Machines {
		m := &state.Machines[i]
		for j := 0; j < s.noWeeks; j++ {
			m.WeekDayPatterns[j] = numPatterns
			m.WeekEndPatterns[j] = numPatterns
		}
	}
}

// refine is the per-round controller step: validate the previous move against
// the fresh feedback, then pick and apply the next one.
func (s *Solver) refine(state *State) {
	if state.Score > s.bestScore {
		s.bestScore = state.Score
	}

	if s.lastMove != nil && (state.NoDelays > 0 || state.Score < s.bestScore) {
		repaired := false
		if s.cfg.Repair && !s.isRepairing && state.NoDelays > 0 && state.NoDelays <= s.cfg.RepairMaxDelays {
			repaired = s.repair(state)
		}

		if repaired {
			if Verbose {
				fmt.Fprintf(logw(), "[refine] %s does not work, repaired in place\n", s.lastMove.Name)
			}
			return
		}

		if Verbose {
			fmt.Fprintf(logw(), "[refine] %s does not work, reverting\n", s.lastMove.Name)
		}

		s.lastMove.undo(state)
		s.badMoves[s.lastMove.ID] = struct{}{}
		if s.lastMove.Name == "ReduceGlobal" {
			s.reduceGlobalFailed = true
		}
		s.isRepairing = false
	} else if s.lastMove != nil {
		if Verbose {
			fmt.Fprintf(logw(), "[refine] %s works\n", s.lastMove.Name)
		}
		s.isRepairing = false
	}

	moves := s.generateMoves(state)

	var best *Move
	for i := range moves {
		mv := &moves[i]
		if mv.CostImprovement <= 0 {
			continue
		}
		if _, bad := s.badMoves[mv.ID]; bad {
			continue
		}
		if best == nil || mv.CostImprovement > best.CostImprovement {
			best = mv
		}
	}

	if best != nil {
		if Verbose {
			fmt.Fprintf(logw(), "[refine] trying %s (cost improvement: %.0f)\n", best.Name, best.CostImprovement)
		}
		best.apply(state)
	} else if Verbose {
		fmt.Fprintf(logw(), "[refine] no moves to try\n")
	}

	s.lastMove = best
}

// repair undoes only the parts of the last move touching weeks that reported
// delays and keeps the rest. The partial state is kept only if every
// machine's change budget still holds; otherwise the undone parts are
// restored and the caller falls back to a full revert.
func (s *Solver) repair(state *State) bool {
	var kept, undone []Part
	for _, part := range s.lastMove.Parts {
		if state.Machines[part.Machine].Delays[part.Week] > 0 {
			part.undo(state)
			undone = append(undone, part)
		} else {
			kept = append(kept, part)
		}
	}

	if len(undone) == 0 {
		return false
	}

	for i := range state.Machines {
		if s.remainingChanges(&state.Machines[i]) < 0 {
			for _, part := range undone {
				part.apply(state)
			}
			return false
		}
	}

	// The remainder becomes the move under validation, so a later full
	// revert never undoes an already-undone part.
	remainder := newMove(s.lastMove.Name, kept)
	s.lastMove = &remainder
	s.isRepairing = true
	return true
}

// lastOperatingWeeks returns the last week with a non-shutdown pattern on
// each side, or -1 when the whole side is shut down.
func (s *Solver) lastOperatingWeeks(m *Machine) (int, int) {
	lastWeekDay, lastWeekEnd := -1, -1
	for i := s.noWeeks - 1; i >= 0 && (lastWeekDay == -1 || lastWeekEnd == -1); i-- {
		if lastWeekDay == -1 && m.WeekDayPatterns[i] != 1 {
			lastWeekDay = i
		}
		if lastWeekEnd == -1 && m.WeekEndPatterns[i] != 1 {
			lastWeekEnd = i
		}
	}
	return lastWeekDay, lastWeekEnd
}

func (s *Solver) remainingChanges(m *Machine) int {
	return s.maxChanges - changes(m.WeekDayPatterns) - changes(m.WeekEndPatterns)
}

// changes counts adjacent-week pattern inequalities along one side.
func changes(patterns []int) int {
	n := 0
	for i := 0; i < len(patterns)-1; i++ {
		if patterns[i] != patterns[i+1] {
			n++
		}
	}
	return n
}

func logw() *os.File { return os.Stderr }
