package main

import (
	"bufio"
	"fmt"
	"io"
)

// header is the one-time initialization block of the judge stream.
type header struct {
	Weeks        int
	Machines     int
	MaxChanges   int
	Interactions int
}

// judgeStream adapts the blocking request/response channel to the judge:
// whitespace-separated decimal input, digit-grid output. Writes are flushed
// per grid so the judge sees a complete request before computing feedback.
type judgeStream struct {
	in  *bufio.Reader
	out *bufio.Writer
}

func newJudgeStream(r io.Reader, w io.Writer) *judgeStream {
	return &judgeStream{
		in:  bufio.NewReader(r),
		out: bufio.NewWriter(w),
	}
}

func (js *judgeStream) readHeader() (header, error) {
	var h header
	if _, err := fmt.Fscan(js.in, &h.Weeks, &h.Machines, &h.MaxChanges, &h.Interactions); err != nil {
		return header{}, fmt.Errorf("read header: %w", err)
	}
	if h.Weeks <= 0 || h.Machines <= 0 || h.MaxChanges < 0 || h.Interactions <= 0 {
		return header{}, fmt.Errorf("invalid header: weeks=%d machines=%d maxChanges=%d interactions=%d",
			h.Weeks, h.Machines, h.MaxChanges, h.Interactions)
	}
	return h, nil
}

// readUnitCosts fills one machine's cost tables: nine (weekday, weekend)
// integer pairs in ascending pattern-code order.
func (js *judgeStream) readUnitCosts(m *Machine) error {
	for k := 0; k < numPatterns; k++ {
		var weekDayCost, weekEndCost int64
		if _, err := fmt.Fscan(js.in, &weekDayCost, &weekEndCost); err != nil {
			return fmt.Errorf("read unit costs: %w", err)
		}
		m.WeekDayPatternCosts[k] = float64(weekDayCost)
		m.WeekEndPatternCosts[k] = float64(weekEndCost)
	}
	return nil
}

// writeGrid emits one line per machine: 2W digit characters, weekday and
// weekend code interleaved per week.
func (js *judgeStream) writeGrid(state *State) error {
	for i := range state.Machines {
		m := &state.Machines[i]
		line := make([]byte, 0, 2*len(m.WeekDayPatterns)+1)
		for k := range m.WeekDayPatterns {
			line = append(line, byte('0'+m.WeekDayPatterns[k]), byte('0'+m.WeekEndPatterns[k]))
		}
		line = append(line, '\n')
		if _, err := js.out.Write(line); err != nil {
			return fmt.Errorf("write grid: %w", err)
		}
	}
	if err := js.out.Flush(); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	return nil
}

// readFeedback overwrites the state's feedback scalars and every machine's
// load/delay arrays from one feedback block.
func (js *judgeStream) readFeedback(state *State) error {
	if _, err := fmt.Fscan(js.in, &state.Score, &state.NoViolations, &state.NoDelays); err != nil {
		return fmt.Errorf("read feedback: %w", err)
	}

	for i := range state.Machines {
		m := &state.Machines[i]
		for k := range m.Loads {
			if _, err := fmt.Fscan(js.in, &m.Loads[k], &m.Delays[k]); err != nil {
				return fmt.Errorf("read feedback for machine %d: %w", i, err)
			}
		}
	}
	return nil
}
