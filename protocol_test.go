package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadHeader(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		js := newJudgeStream(strings.NewReader("12 10 4 100\n"), &bytes.Buffer{})
		h, err := js.readHeader()
		if err != nil {
			t.Fatalf("readHeader: %v", err)
		}
		want := header{Weeks: 12, Machines: 10, MaxChanges: 4, Interactions: 100}
		if h != want {
			t.Errorf("header %+v, want %+v", h, want)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		js := newJudgeStream(strings.NewReader("12 ten 4 100\n"), &bytes.Buffer{})
		if _, err := js.readHeader(); err == nil {
			t.Error("no error for non-numeric header")
		}
	})

	t.Run("out of range", func(t *testing.T) {
		js := newJudgeStream(strings.NewReader("0 10 4 100\n"), &bytes.Buffer{})
		if _, err := js.readHeader(); err == nil {
			t.Error("no error for zero-week header")
		}
	})

	t.Run("truncated", func(t *testing.T) {
		js := newJudgeStream(strings.NewReader("12 10\n"), &bytes.Buffer{})
		if _, err := js.readHeader(); err == nil {
			t.Error("no error for truncated header")
		}
	})
}

func TestReadUnitCosts(t *testing.T) {
	var in strings.Builder
	for k := 1; k <= numPatterns; k++ {
		in.WriteString("100 50 ")
	}
	js := newJudgeStream(strings.NewReader(in.String()), &bytes.Buffer{})

	var m Machine
	if err := js.readUnitCosts(&m); err != nil {
		t.Fatalf("readUnitCosts: %v", err)
	}
	for k := 0; k < numPatterns; k++ {
		if m.WeekDayPatternCosts[k] != 100 || m.WeekEndPatternCosts[k] != 50 {
			t.Errorf("pattern %d costs %.0f/%.0f, want 100/50", k+1, m.WeekDayPatternCosts[k], m.WeekEndPatternCosts[k])
		}
	}
}

func TestWriteGrid(t *testing.T) {
	state := NewState(3, 2)
	state.Machines[0].WeekDayPatterns = []int{9, 8, 1}
	state.Machines[0].WeekEndPatterns = []int{7, 6, 1}
	state.Machines[1].WeekDayPatterns = []int{2, 2, 2}
	state.Machines[1].WeekEndPatterns = []int{3, 3, 3}

	var out bytes.Buffer
	js := newJudgeStream(strings.NewReader(""), &out)
	if err := js.writeGrid(state); err != nil {
		t.Fatalf("writeGrid: %v", err)
	}

	if got, want := out.String(), "978611\n232323\n"; got != want {
		t.Errorf("grid %q, want %q", got, want)
	}
}

func TestReadFeedback(t *testing.T) {
	input := "1234 0 3\n" +
		"0.73 0\n0.00 2\n" +
		"1.00 1\n0.50 0\n"
	js := newJudgeStream(strings.NewReader(input), &bytes.Buffer{})

	state := NewState(2, 2)
	if err := js.readFeedback(state); err != nil {
		t.Fatalf("readFeedback: %v", err)
	}

	if state.Score != 1234 || state.NoViolations != 0 || state.NoDelays != 3 {
		t.Errorf("scalars %d/%d/%d, want 1234/0/3", state.Score, state.NoViolations, state.NoDelays)
	}
	if state.Machines[0].Loads[0] != 0.73 || state.Machines[0].Delays[1] != 2 {
		t.Errorf("machine 0 feedback %v %v", state.Machines[0].Loads, state.Machines[0].Delays)
	}
	if state.Machines[1].Loads[0] != 1.0 || state.Machines[1].Delays[0] != 1 {
		t.Errorf("machine 1 feedback %v %v", state.Machines[1].Loads, state.Machines[1].Delays)
	}

	if err := js.readFeedback(state); err == nil {
		t.Error("no error on exhausted stream")
	}
}
