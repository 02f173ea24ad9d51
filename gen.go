package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
)

// Per-day working hours of each pattern code, split into day shift, night
// shift, and total. Code 1 is a full shutdown; codes 7..9 extend into night
// shifts.
var (
	patternDayHours   = [numPatterns]int{0, 3, 5, 8, 10, 12, 12, 12, 12}
	patternNightHours = [numPatterns]int{0, 0, 0, 0, 0, 0, 2, 4, 6}
	patternTotalHours = [numPatterns]int{0, 3, 5, 8, 10, 12, 14, 16, 18}
)

// holidayCostFactor scales a weekday pattern cost down to the two-day
// weekend equivalent, including the holiday wage premium.
const holidayCostFactor = 1.2 / 5.0 * 2.0

// genParam carries the instance generation ranges.
var genParam = struct {
	ItemMin, ItemMax               int
	ResMin, ResMax                 int
	WeeksMin, WeeksMax             int
	ChangeLimitMin                 int
	ChangeLimitMax                 int
	ProcMin                        int
	WorkerSigma                    float64
	BaseCostPerHour                int
	CostPerHourSigma               float64
	CostPerHourNightSigma          float64
	CostExpMin, CostExpMax         float64
	Calendar1CostRatioMin          float64
	Calendar1CostRatioMax          float64
	MutationRatioMin               float64
	MutationRatioMax               float64
	MaxCost                        float64
	InteractionChoices             [3]int
	ProdTimeSigma                  float64
	ProdTimeVarMin, ProdTimeVarMax float64
}{
	ItemMin:               30,
	ItemMax:               300,
	ResMin:                10,
	ResMax:                20,
	WeeksMin:              8,
	WeeksMax:              16,
	ChangeLimitMin:        2,
	ChangeLimitMax:        8,
	ProcMin:               2,
	WorkerSigma:           2,
	BaseCostPerHour:       800,
	CostPerHourSigma:      500,
	CostPerHourNightSigma: 50,
	CostExpMin:            1.1,
	CostExpMax:            1.5,
	Calendar1CostRatioMin: 0.5,
	Calendar1CostRatioMax: 1.0,
	MutationRatioMin:      0.0,
	MutationRatioMax:      0.2,
	MaxCost:               10_000_000_000,
	InteractionChoices:    [3]int{50, 100, 300},
	ProdTimeSigma:         1.5,
	ProdTimeVarMin:        0.8,
	ProdTimeVarMax:        1.2,
}

// GenOptions are the generator's command-line parameters. Zero-valued size
// fields are drawn randomly from the parameter ranges.
type GenOptions struct {
	Week        int
	ResourceN   int
	ItemN       int
	ChangeLimit int
	Seed        int64
}

// Instance is a generated contest instance: the judge-visible header and
// cost tables, plus the judge-side calendars and demand used by the local
// simulation.
type Instance struct {
	Weeks        int
	Resources    int
	MaxChanges   int
	Interactions int

	WeekDayCosts [][numPatterns]int64
	WeekEndCosts [][numPatterns]int64

	// OriginalCalendar holds one 2W-digit string per resource: the calendar
	// the demand was generated against.
	OriginalCalendar []string

	// Demand is the scheduled working hours per resource per week under the
	// original calendar.
	Demand [][]float64

	Operations int
}

// GenerateInstance builds a deterministic instance from the options.
func GenerateInstance(opts GenOptions) *Instance {
	r := rand.New(rand.NewSource(opts.Seed))

	inst := &Instance{
		Weeks:        randIn(r, genParam.WeeksMin, genParam.WeeksMax),
		Resources:    randIn(r, genParam.ResMin, genParam.ResMax),
		MaxChanges:   randIn(r, genParam.ChangeLimitMin, genParam.ChangeLimitMax),
		Interactions: genParam.InteractionChoices[((opts.Seed%3)+3)%3],
	}

	// The smallest seeds pin every dimension to its minimum, giving stable
	// smoke-test instances.
	if opts.Seed <= 2 {
		inst.Weeks = genParam.WeeksMin
		inst.Resources = genParam.ResMin
		inst.MaxChanges = genParam.ChangeLimitMin
	}

	if opts.Week > 0 {
		inst.Weeks = opts.Week
	}
	if opts.ResourceN > 0 {
		inst.Resources = opts.ResourceN
	}
	if opts.ChangeLimit > 0 {
		inst.MaxChanges = opts.ChangeLimit
	}

	itemN := randIn(r, genParam.ItemMin, genParam.ItemMax)
	if opts.Seed <= 2 {
		itemN = genParam.ItemMin
	}
	if opts.ItemN > 0 {
		itemN = opts.ItemN
	}

	inst.generateResources(r)
	inst.generateDemand(r, itemN)
	return inst
}

type genResource struct {
	workerN            int
	costPerHour        int
	costPerHourNight   int
	costRatio          float64
	calendar1CostRatio float64
	calendar0CostRatio float64
}

func (inst *Instance) generateResources(r *rand.Rand) {
	// Contiguous resource ranges share a process, and each process has a
	// base calendar the resources mutate from.
	procN := randIn(r, genParam.ProcMin, inst.Resources)
	procOfResource := make([]int, inst.Resources)
	for i := range procOfResource {
		procOfResource[i] = i * procN / inst.Resources
	}
	procBaseCalendar := make([]int, procN)
	for i := range procBaseCalendar {
		procBaseCalendar[i] = randIn(r, 3, 7)
	}

	resources := make([]genResource, inst.Resources)
	rollCosts := func() {
		for i := range resources {
			res := &resources[i]
			res.workerN = 1 + int(math.Abs(r.NormFloat64()*genParam.WorkerSigma))
			res.costPerHour = genParam.BaseCostPerHour + int(math.Abs(r.NormFloat64()*genParam.CostPerHourSigma))
			res.costPerHourNight = res.costPerHour + int(math.Abs(r.NormFloat64()*genParam.CostPerHourNightSigma))
			res.costRatio = uniformIn(r, genParam.CostExpMin, genParam.CostExpMax)
			res.calendar1CostRatio = uniformIn(r, genParam.Calendar1CostRatioMin, genParam.Calendar1CostRatioMax)
			res.calendar0CostRatio = uniformIn(r, 0, res.calendar1CostRatio)
		}
	}
	rollCosts()

	inst.WeekDayCosts = make([][numPatterns]int64, inst.Resources)
	inst.WeekEndCosts = make([][numPatterns]int64, inst.Resources)

	// Re-roll resource economics until the all-out fleet cost fits the
	// judge's score range.
	for {
		maxCost := 0.0
		for i := range resources {
			res := &resources[i]
			for k := 2; k < numPatterns; k++ {
				weekDayCost := float64(patternDayHours[k]*res.workerN*res.costPerHour+
					patternNightHours[k]*res.workerN*res.costPerHourNight) *
					math.Pow(res.costRatio, float64(patternTotalHours[k]))
				inst.WeekDayCosts[i][k] = int64(weekDayCost)
				inst.WeekEndCosts[i][k] = int64(weekDayCost * holidayCostFactor)
			}
			maxCost += float64(inst.WeekDayCosts[i][numPatterns-1])
			maxCost += float64(inst.WeekEndCosts[i][numPatterns-1])
		}
		if maxCost < genParam.MaxCost {
			break
		}
		rollCosts()
	}

	for i := range resources {
		res := &resources[i]
		inst.WeekDayCosts[i][0] = int64(float64(inst.WeekDayCosts[i][2]) * res.calendar0CostRatio)
		inst.WeekEndCosts[i][0] = int64(float64(inst.WeekEndCosts[i][2]) * res.calendar0CostRatio)
		inst.WeekDayCosts[i][1] = int64(float64(inst.WeekDayCosts[i][2]) * res.calendar1CostRatio)
		inst.WeekEndCosts[i][1] = int64(float64(inst.WeekEndCosts[i][2]) * res.calendar1CostRatio)
	}

	// Original calendars: the process base type, mutated per week with the
	// resource's mutation probability.
	inst.OriginalCalendar = make([]string, inst.Resources)
	for i := 0; i < inst.Resources; i++ {
		mutationRatio := uniformIn(r, genParam.MutationRatioMin, genParam.MutationRatioMax)

		weights := make([]float64, numPatterns)
		for k := range weights {
			weights[k] = r.Float64()
		}

		calendar := make([]byte, 0, 2*inst.Weeks)
		for w := 0; w < inst.Weeks; w++ {
			code := procBaseCalendar[procOfResource[i]]
			if mutationRatio > r.Float64() {
				code = weightedPick(r, weights) + 1
			}
			calendar = append(calendar, byte('0'+code), byte('0'+code))
		}
		inst.OriginalCalendar[i] = string(calendar)
	}
}

// generateDemand assigns item process chains to resources left-aligned
// against the original calendars, adding operations until capacity runs out.
func (inst *Instance) generateDemand(r *rand.Rand, itemN int) {
	type item struct {
		chain    []int
		prodTime float64
	}

	items := make([]item, itemN)
	for i := range items {
		chainLen := 1 + r.Intn(max(1, inst.Resources/4))
		chain := r.Perm(inst.Resources)[:chainLen]
		// process chains run through resources in index order
		sort.Ints(chain)
		items[i] = item{
			chain:    chain,
			prodTime: 1 + math.Abs(r.NormFloat64()*genParam.ProdTimeSigma),
		}
	}

	free := make([][]float64, inst.Resources)
	inst.Demand = make([][]float64, inst.Resources)
	for i := 0; i < inst.Resources; i++ {
		free[i] = make([]float64, inst.Weeks)
		inst.Demand[i] = make([]float64, inst.Weeks)
		for w := 0; w < inst.Weeks; w++ {
			free[i][w] = originalWeekHours(inst.OriginalCalendar[i], w)
		}
	}

	type placement struct {
		resource, week int
		hours          float64
	}

	failures := 0
	for failures < 50 {
		it := items[r.Intn(len(items))]

		var placed []placement
		week := 0
		ok := true
		for _, res := range it.chain {
			hours := it.prodTime * uniformIn(r, genParam.ProdTimeVarMin, genParam.ProdTimeVarMax)
			for hours > 1e-9 {
				if week >= inst.Weeks {
					ok = false
					break
				}
				take := math.Min(hours, free[res][week])
				if take > 0 {
					placed = append(placed, placement{res, week, take})
					hours -= take
				}
				if hours > 1e-9 {
					week++
				}
			}
			if !ok {
				break
			}
		}

		if !ok {
			failures++
			continue
		}

		for _, p := range placed {
			free[p.resource][p.week] -= p.hours
			inst.Demand[p.resource][p.week] += p.hours
		}
		inst.Operations++
	}
}

// originalWeekHours is the weekly working-hour capacity of one resource's
// original calendar at the given week.
func originalWeekHours(calendar string, week int) float64 {
	weekDayCode := int(calendar[2*week] - '0')
	weekEndCode := int(calendar[2*week+1] - '0')
	return float64(5*patternTotalHours[weekDayCode-1] + 2*patternTotalHours[weekEndCode-1])
}

// WriteInput writes the instance in judge input order: header, cost tables,
// then the judge-side original calendars and demand table.
func (inst *Instance) WriteInput(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d %d %d %d\n", inst.Weeks, inst.Resources, inst.MaxChanges, inst.Interactions); err != nil {
		return fmt.Errorf("write instance: %w", err)
	}

	for i := 0; i < inst.Resources; i++ {
		for k := 0; k < numPatterns; k++ {
			sep := " "
			if k == numPatterns-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%d %d%s", inst.WeekDayCosts[i][k], inst.WeekEndCosts[i][k], sep); err != nil {
				return fmt.Errorf("write instance: %w", err)
			}
		}
	}

	for i := 0; i < inst.Resources; i++ {
		if _, err := fmt.Fprintln(w, inst.OriginalCalendar[i]); err != nil {
			return fmt.Errorf("write instance: %w", err)
		}
	}

	for i := 0; i < inst.Resources; i++ {
		for w2 := 0; w2 < inst.Weeks; w2++ {
			sep := " "
			if w2 == inst.Weeks-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%.2f%s", inst.Demand[i][w2], sep); err != nil {
				return fmt.Errorf("write instance: %w", err)
			}
		}
	}

	return nil
}

func randIn(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func uniformIn(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// weightedPick draws an index with probability proportional to its weight.
func weightedPick(r *rand.Rand, weights []float64) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	threshold := r.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if acc >= threshold {
			return i
		}
	}
	return len(weights) - 1
}
