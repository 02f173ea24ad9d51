package main

import "testing"

func findMove(moves []Move, name string) *Move {
	for i := range moves {
		if moves[i].Name == name {
			return &moves[i]
		}
	}
	return nil
}

func setLoads(state *State, machine int, loads ...float64) {
	copy(state.Machines[machine].Loads, loads)
}

func TestReduceGlobalEligibility(t *testing.T) {
	t.Run("constant idle prefix is reducible", func(t *testing.T) {
		state := newTestState(t, 4, 1)
		setLoads(state, 0, 0.2, 0.2, 0.2, 0.2)

		s := NewSolver(4, 1, 20, 10, DefaultConfig())
		moves := s.generateMoves(state)

		for _, name := range []string{"ReduceGlobal0", "ReduceGlobalWeekDay0", "ReduceGlobalWeekEnd0"} {
			mv := findMove(moves, name)
			if mv == nil {
				t.Fatalf("%s not generated", name)
			}
			for _, part := range mv.Parts {
				if part.From != 9 || part.To != 8 {
					t.Errorf("%s part %d-%d: %d -> %d, want 9 -> 8", name, part.Machine, part.Week, part.From, part.To)
				}
			}
		}
	})

	t.Run("busy machine is not reducible", func(t *testing.T) {
		state := newTestState(t, 4, 1)
		setLoads(state, 0, 0.7, 0.7, 0.7, 0.7)

		s := NewSolver(4, 1, 20, 10, DefaultConfig())
		moves := s.generateMoves(state)

		for _, name := range []string{"ReduceGlobal0", "ReduceGlobalWeekDay0", "ReduceGlobalWeekEnd0"} {
			if findMove(moves, name) != nil {
				t.Errorf("%s generated despite mean load 0.7", name)
			}
		}
		if findMove(moves, "ImproveSplitWeekDay0") == nil {
			t.Error("ImproveSplitWeekDay0 not generated despite mean load below 0.9")
		}
	})

	t.Run("non-constant prefix is not reducible", func(t *testing.T) {
		state := newTestState(t, 4, 1)
		state.Machines[0].WeekDayPatterns[2] = 8
		setLoads(state, 0, 0.2, 0.2, 0.2, 0.2)

		s := NewSolver(4, 1, 20, 10, DefaultConfig())
		moves := s.generateMoves(state)

		if findMove(moves, "ReduceGlobalWeekDay0") != nil {
			t.Error("ReduceGlobalWeekDay0 generated despite non-constant prefix")
		}
		if findMove(moves, "ReduceGlobalWeekEnd0") == nil {
			t.Error("ReduceGlobalWeekEnd0 not generated")
		}
	})

	t.Run("300-interaction runs ignore load", func(t *testing.T) {
		state := newTestState(t, 4, 1)
		setLoads(state, 0, 0.95, 0.95, 0.95, 0.95)

		s := NewSolver(4, 1, 20, 300, DefaultConfig())
		moves := s.generateMoves(state)

		if findMove(moves, "ReduceGlobal0") == nil {
			t.Error("ReduceGlobal0 not generated on a 300-interaction run")
		}
		if findMove(moves, "ReduceGlobal") != nil {
			t.Error("fleet-wide ReduceGlobal generated on a 300-interaction run")
		}
	})
}

func TestFleetReduceGlobal(t *testing.T) {
	state := newTestState(t, 4, 2)
	setLoads(state, 0, 0.2, 0.2, 0.2, 0.2)
	setLoads(state, 1, 0.2, 0.2, 0.2, 0.2)

	s := NewSolver(4, 2, 20, 10, DefaultConfig())
	moves := s.generateMoves(state)

	fleet := findMove(moves, "ReduceGlobal")
	if fleet == nil {
		t.Fatal("fleet-wide ReduceGlobal not generated")
	}
	if len(fleet.Parts) != 16 {
		t.Errorf("fleet move has %d parts, want 16 (2 machines x 4 weeks x 2 sides)", len(fleet.Parts))
	}

	s.reduceGlobalFailed = true
	moves = s.generateMoves(state)
	if findMove(moves, "ReduceGlobal") != nil {
		t.Error("fleet-wide ReduceGlobal generated after it failed")
	}
}

func TestImproveSplitPicksLastIdleRun(t *testing.T) {
	state := newTestState(t, 4, 1)
	state.Machines[0].WeekDayPatterns = []int{9, 9, 8, 8}
	setLoads(state, 0, 0.2, 0.2, 0.95, 0.95)

	s := NewSolver(4, 1, 20, 10, DefaultConfig())
	moves := s.generateMoves(state)

	mv := findMove(moves, "ImproveSplitWeekDay0")
	if mv == nil {
		t.Fatal("ImproveSplitWeekDay0 not generated")
	}
	// the trailing run is too busy, so the first run is reduced instead
	if len(mv.Parts) != 2 {
		t.Fatalf("improve split has %d parts, want 2", len(mv.Parts))
	}
	for i, part := range mv.Parts {
		if part.Week != i || part.From != 9 || part.To != 8 {
			t.Errorf("part %d touches week %d (%d -> %d), want week %d (9 -> 8)", i, part.Week, part.From, part.To, i)
		}
	}
}

func TestImproveSplitSkipsShutdownRun(t *testing.T) {
	state := newTestState(t, 4, 1)
	state.Machines[0].WeekDayPatterns = []int{1, 1, 9, 9}
	setLoads(state, 0, 0, 0, 0.2, 0.2)

	s := NewSolver(4, 1, 20, 10, DefaultConfig())
	moves := s.generateMoves(state)

	mv := findMove(moves, "ImproveSplitWeekDay0")
	if mv == nil {
		t.Fatal("ImproveSplitWeekDay0 not generated")
	}
	for _, part := range mv.Parts {
		if part.From == 1 {
			t.Errorf("improve split reduces a shutdown week %d", part.Week)
		}
	}
}

func TestCreateSplitBudget(t *testing.T) {
	build := func(t *testing.T, maxChanges int) []Move {
		t.Helper()
		state := newTestState(t, 3, 1)
		state.Machines[0].WeekEndPatterns = []int{9, 9, 8}
		setLoads(state, 0, 0.9, 0.9, 0.1)

		s := NewSolver(3, 1, maxChanges, 10, DefaultConfig())
		return s.generateMoves(state)
	}

	// the new weekday boundary plus the existing weekend one exceeds a
	// budget of 1
	if mv := findMove(build(t, 1), "CreateSplitWeekDay0"); mv != nil {
		t.Error("CreateSplitWeekDay0 generated despite exhausted change budget")
	}

	mv := findMove(build(t, 2), "CreateSplitWeekDay0")
	if mv == nil {
		t.Fatal("CreateSplitWeekDay0 not generated with budget available")
	}
	if len(mv.Parts) != 1 || mv.Parts[0].Week != 2 {
		t.Errorf("create split parts %+v, want a single part at week 2", mv.Parts)
	}
}

func TestCreateSplitUsesOwnSideHorizon(t *testing.T) {
	state := newTestState(t, 4, 1)
	state.Machines[0].WeekEndPatterns = []int{9, 9, 1, 1}
	setLoads(state, 0, 0.35, 0.45, 0, 0)

	s := NewSolver(4, 1, 20, 10, DefaultConfig())
	moves := s.generateMoves(state)

	// week 1 alone carries load 0.45; averaged over the weekend side's own
	// one-week suffix that exceeds the threshold, so no split is created
	if findMove(moves, "CreateSplitWeekEnd0") != nil {
		t.Error("CreateSplitWeekEnd0 generated; suffix mean must use the weekend horizon")
	}
}

func TestShutdownOnlyAtFinalInteraction(t *testing.T) {
	state := newTestState(t, 4, 1)
	setLoads(state, 0, 0.5, 0.3, 0, 0)

	s := NewSolver(4, 1, 20, 10, DefaultConfig())
	s.currentInteraction = 9
	if findMove(s.generateMoves(state), "Shutdown") != nil {
		t.Error("Shutdown generated before the final interaction")
	}

	s.currentInteraction = 10
	mv := findMove(s.generateMoves(state), "Shutdown")
	if mv == nil {
		t.Fatal("Shutdown not generated at the final interaction")
	}
	if len(mv.Parts) != 4 {
		t.Fatalf("shutdown has %d parts, want 4 (weeks 2..3, both sides)", len(mv.Parts))
	}
	for _, part := range mv.Parts {
		if part.To != 1 {
			t.Errorf("shutdown part targets pattern %d, want 1", part.To)
		}
		if part.Week != 2 && part.Week != 3 {
			t.Errorf("shutdown touches loaded week %d", part.Week)
		}
	}
}

func TestShutdownWithSingleRemainingChange(t *testing.T) {
	state := newTestState(t, 4, 1)
	state.Machines[0].WeekDayPatterns = []int{9, 9, 9, 8}
	state.Machines[0].WeekEndPatterns = []int{9, 9, 9, 3}
	setLoads(state, 0, 0.5, 0, 0, 0)

	// one change on each side already, so one remains
	s := NewSolver(4, 1, 3, 10, DefaultConfig())
	s.currentInteraction = 10

	mv := findMove(s.generateMoves(state), "Shutdown")
	if mv == nil {
		t.Fatal("Shutdown not generated")
	}
	if len(mv.Parts) != 3 {
		t.Fatalf("shutdown has %d parts, want 3 (weeks 1..3, one side)", len(mv.Parts))
	}
	for _, part := range mv.Parts {
		// the weekday side saves more
		if part.Side != WeekDay {
			t.Errorf("shutdown touches the weekend side at week %d with one change left", part.Week)
		}
	}
}
