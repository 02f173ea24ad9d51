package main

import (
	"fmt"
	"strings"
)

// FormatSchedule renders a calendar grid with per-machine change counts and
// pattern cost, for diagnostics and sim output.
func FormatSchedule(state *State, maxChanges int) string {
	var b strings.Builder

	totalCost := 0.0
	for i := range state.Machines {
		m := &state.Machines[i]

		cost := 0.0
		weekDay := make([]byte, len(m.WeekDayPatterns))
		weekEnd := make([]byte, len(m.WeekEndPatterns))
		for w := range m.WeekDayPatterns {
			weekDay[w] = byte('0' + m.WeekDayPatterns[w])
			weekEnd[w] = byte('0' + m.WeekEndPatterns[w])
			cost += m.WeekDayPatternCosts[m.WeekDayPatterns[w]-1] + m.WeekEndPatternCosts[m.WeekEndPatterns[w]-1]
		}
		totalCost += cost

		fmt.Fprintf(&b, "machine %d: weekday=%s weekend=%s changes=%d/%d cost=%.0f\n",
			i, weekDay, weekEnd, changes(m.WeekDayPatterns)+changes(m.WeekEndPatterns), maxChanges, cost)
	}

	fmt.Fprintf(&b, "total: score=%d cost=%.0f\n", state.Score, totalCost)
	return b.String()
}
