package main

import "strconv"

// generateMoves enumerates every candidate move for the current state, in a
// fixed scan order so that cost-improvement ties resolve deterministically.
func (s *Solver) generateMoves(state *State) []Move {
	var moves []Move

	// Parts of every per-machine combined reduction, accumulated for the
	// fleet-wide compound move.
	var reduceGlobalParts []Part

	for i := range state.Machines {
		machine := &state.Machines[i]

		lastWeekDay, lastWeekEnd := s.lastOperatingWeeks(machine)

		canReduceWeekDay := lastWeekDay != -1
		canReduceWeekEnd := lastWeekEnd != -1

		weekDayLoadSum := 0.0
		for j := 0; j <= lastWeekDay; j++ {
			weekDayLoadSum += machine.Loads[j]
			if machine.WeekDayPatterns[j] != machine.WeekDayPatterns[0] {
				canReduceWeekDay = false
				break
			}
		}

		weekEndLoadSum := 0.0
		for j := 0; j <= lastWeekEnd; j++ {
			weekEndLoadSum += machine.Loads[j]
			if machine.WeekEndPatterns[j] != machine.WeekEndPatterns[0] {
				canReduceWeekEnd = false
				break
			}
		}

		loadAware := s.noInteractions != s.cfg.LoadTolerantRuns
		if canReduceWeekDay && loadAware && weekDayLoadSum/float64(lastWeekDay+1) > s.cfg.ReduceGlobalMaxLoad {
			canReduceWeekDay = false
		}
		if canReduceWeekEnd && loadAware && weekEndLoadSum/float64(lastWeekEnd+1) > s.cfg.ReduceGlobalMaxLoad {
			canReduceWeekEnd = false
		}

		if canReduceWeekDay && canReduceWeekEnd {
			var parts []Part
			for j := 0; j <= min(lastWeekDay, lastWeekEnd); j++ {
				wd := weekDayPart(state, i, j, machine.WeekDayPatterns[j]-1)
				we := weekEndPart(state, i, j, machine.WeekEndPatterns[j]-1)
				parts = append(parts, wd, we)
				reduceGlobalParts = append(reduceGlobalParts, wd, we)
			}
			moves = append(moves, newMove("ReduceGlobal"+strconv.Itoa(i), parts))
		}

		if canReduceWeekDay {
			var parts []Part
			for j := 0; j <= lastWeekDay; j++ {
				parts = append(parts, weekDayPart(state, i, j, machine.WeekDayPatterns[j]-1))
			}
			moves = append(moves, newMove("ReduceGlobalWeekDay"+strconv.Itoa(i), parts))
		}

		if canReduceWeekEnd {
			var parts []Part
			for j := 0; j <= lastWeekEnd; j++ {
				parts = append(parts, weekEndPart(state, i, j, machine.WeekEndPatterns[j]-1))
			}
			moves = append(moves, newMove("ReduceGlobalWeekEnd"+strconv.Itoa(i), parts))
		}

		weekDayChanges := changes(machine.WeekDayPatterns)
		weekEndChanges := changes(machine.WeekEndPatterns)

		if lastWeekDay != -1 {
			if mv, ok := s.improveSplit(state, i, WeekDay, machine.WeekDayPatterns, machine.Loads, lastWeekDay); ok {
				moves = append(moves, mv)
			}
			if mv, ok := s.createSplit(state, i, WeekDay, machine.WeekDayPatterns, machine.Loads, lastWeekDay, weekEndChanges); ok {
				moves = append(moves, mv)
			}
		}

		if lastWeekEnd != -1 {
			if mv, ok := s.improveSplit(state, i, WeekEnd, machine.WeekEndPatterns, machine.Loads, lastWeekEnd); ok {
				moves = append(moves, mv)
			}
			if mv, ok := s.createSplit(state, i, WeekEnd, machine.WeekEndPatterns, machine.Loads, lastWeekEnd, weekDayChanges); ok {
				moves = append(moves, mv)
			}
		}
	}

	if s.noInteractions != s.cfg.LoadTolerantRuns && !s.reduceGlobalFailed {
		moves = append(moves, newMove("ReduceGlobal", reduceGlobalParts))
	}

	// The final outgoing grid is the last chance to spend leftover change
	// budget on shutting down idle trailing weeks.
	if s.currentInteraction == s.noInteractions {
		moves = append(moves, s.shutdown(state))
	}

	return moves
}

// improveSplit scans the runs of equal pattern codes on one side, last run
// first, and reduces the first run that is idle enough. At most one improve
// move per side per round.
func (s *Solver) improveSplit(state *State, machine int, side Side, patterns []int, loads []float64, lastOperating int) (Move, bool) {
	type split struct{ start, size int }

	splits := []split{{0, 1}}
	for j := 1; j <= lastOperating; j++ {
		if patterns[j] != patterns[j-1] {
			splits = append(splits, split{j, 1})
		} else {
			splits[len(splits)-1].size++
		}
	}

	for k := len(splits) - 1; k >= 0; k-- {
		start, size := splits[k].start, splits[k].size

		canImprove := true
		loadSum := 0.0
		for j := start; j < start+size; j++ {
			loadSum += loads[j]
			if patterns[j] == 1 {
				canImprove = false
				break
			}
		}
		if loadSum/float64(size) > s.cfg.ImproveSplitMaxLoad {
			canImprove = false
		}
		if !canImprove {
			continue
		}

		parts := make([]Part, 0, size)
		for j := start; j < start+size; j++ {
			parts = append(parts, s.sidePart(state, machine, side, j, patterns[j]-1))
		}
		return newMove("ImproveSplit"+side.String()+strconv.Itoa(machine), parts), true
	}

	return Move{}, false
}

// createSplit extends a trailing suffix of one side while the running mean
// load stays low and reduces every included week by one, introducing a new
// run boundary. The move is withheld when the post-move change count would
// blow the budget; the other side's change count is taken pre-move.
func (s *Solver) createSplit(state *State, machine int, side Side, patterns []int, loads []float64, lastOperating, otherSideChanges int) (Move, bool) {
	var parts []Part
	newPatterns := append([]int(nil), patterns...)

	loadSum := 0.0
	for j := lastOperating; j >= 0; j-- {
		if patterns[j] == 1 {
			break
		}
		loadSum += loads[j]
		if loadSum/float64(lastOperating-j+1) > s.cfg.CreateSplitMaxLoad {
			break
		}

		parts = append(parts, s.sidePart(state, machine, side, j, patterns[j]-1))
		newPatterns[j]--
	}

	newRemainingChanges := s.maxChanges - changes(newPatterns) - otherSideChanges
	if len(parts) == 0 || newRemainingChanges < 0 {
		return Move{}, false
	}
	return newMove("CreateSplit"+side.String()+strconv.Itoa(machine), parts), true
}

// shutdown builds the terminal move: for every machine with leftover change
// budget, set trailing zero-load weeks to pattern 1. With exactly one change
// left only one side can move, so the side with the larger saving wins.
func (s *Solver) shutdown(state *State) Move {
	var parts []Part

	for i := range state.Machines {
		machine := &state.Machines[i]

		lastWeekDay, lastWeekEnd := s.lastOperatingWeeks(machine)

		remaining := s.remainingChanges(machine)
		if remaining <= 0 {
			continue
		}

		var partsAll, partsWeekDay, partsWeekEnd []Part
		for j := max(lastWeekDay, lastWeekEnd); j >= 0; j-- {
			if machine.Loads[j] > 0 {
				break
			}
			partsAll = append(partsAll, weekDayPart(state, i, j, 1), weekEndPart(state, i, j, 1))
			partsWeekDay = append(partsWeekDay, weekDayPart(state, i, j, 1))
			partsWeekEnd = append(partsWeekEnd, weekEndPart(state, i, j, 1))
		}

		if remaining == 1 {
			if partsImprovement(partsWeekDay) > partsImprovement(partsWeekEnd) {
				parts = append(parts, partsWeekDay...)
			} else {
				parts = append(parts, partsWeekEnd...)
			}
		} else {
			parts = append(parts, partsAll...)
		}
	}

	return newMove("Shutdown", parts)
}

func (s *Solver) sidePart(state *State, machine int, side Side, week, newPattern int) Part {
	if side == WeekDay {
		return weekDayPart(state, machine, week, newPattern)
	}
	return weekEndPart(state, machine, week, newPattern)
}

func (s Side) String() string {
	if s == WeekDay {
		return "WeekDay"
	}
	return "WeekEnd"
}
