package render

import (
	"testing"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

func TestDiffNumberFirstObservationIsNotAChange(t *testing.T) {
	c := NewCache()
	u := c.DiffNumber("all", "avg_return", 3.67, FormatPercent(3.67), ClassFor(3.67))
	if u.Changed {
		t.Error("first observation must not flag a change")
	}
	if u.Direction != DirectionNone {
		t.Errorf("direction = %q, want none", u.Direction)
	}
	if u.Text != "+3.67%" {
		t.Errorf("text = %q, want +3.67%%", u.Text)
	}
	if u.Class != "positive" {
		t.Errorf("class = %q, want positive", u.Class)
	}
}

func TestDiffNumberStableOnUnchangedValue(t *testing.T) {
	c := NewCache()
	c.DiffNumber("all", "avg_return", 3.67, "+3.67%", "positive")
	u := c.DiffNumber("all", "avg_return", 3.67, "+3.67%", "positive")
	if u.Changed {
		t.Error("re-rendering an unchanged value must not flag a change")
	}
}

func TestDiffNumberDetectsDirection(t *testing.T) {
	c := NewCache()
	c.DiffNumber("all", "avg_return", 3.67, "+3.67%", "positive")

	up := c.DiffNumber("all", "avg_return", 5.0, "+5.00%", "positive")
	if !up.Changed || up.Direction != DirectionUp {
		t.Errorf("up change = %v/%q", up.Changed, up.Direction)
	}
	if up.Old != 3.67 {
		t.Errorf("old = %v, want 3.67", up.Old)
	}

	down := c.DiffNumber("all", "avg_return", 1.0, "+1.00%", "positive")
	if !down.Changed || down.Direction != DirectionDown {
		t.Errorf("down change = %v/%q", down.Changed, down.Direction)
	}
}

func TestDiffNumberScopesAreIndependent(t *testing.T) {
	c := NewCache()
	c.DiffNumber("all", "avg_return", 3.67, "+3.67%", "positive")

	// Same field under a new scope is a first observation, not a change.
	u := c.DiffNumber("BTC", "avg_return", 9.0, "+9.00%", "positive")
	if u.Changed {
		t.Error("a new scope must start its own history")
	}

	// And updating BTC must not disturb the all scope.
	u = c.DiffNumber("all", "avg_return", 3.67, "+3.67%", "positive")
	if u.Changed {
		t.Error("unchanged value in original scope flagged after other-scope update")
	}
}

func TestDiffTextImmediateSwap(t *testing.T) {
	c := NewCache()
	first := c.DiffText("all", "sync_state", "Active", "positive")
	if first.Changed {
		t.Error("first text observation must not flag a change")
	}
	second := c.DiffText("all", "sync_state", "Syncing", "warning")
	if !second.Changed {
		t.Error("text change not detected")
	}
	if second.Numeric {
		t.Error("text fields must not be numeric")
	}
}

func TestCounterSteps(t *testing.T) {
	steps := CounterSteps(0, 10, 5)
	if len(steps) != 5 {
		t.Fatalf("len = %d, want 5", len(steps))
	}
	if steps[4] != 10 {
		t.Errorf("final step = %v, want exactly 10", steps[4])
	}
	if steps[0] != 2 {
		t.Errorf("first step = %v, want 2", steps[0])
	}
	for i := 1; i < len(steps); i++ {
		if steps[i] <= steps[i-1] {
			t.Errorf("steps not increasing at %d: %v", i, steps)
		}
	}

	// Degenerate frame count still lands on the target.
	steps = CounterSteps(5, 3, 0)
	if len(steps) != 1 || steps[0] != 3 {
		t.Errorf("steps = %v, want [3]", steps)
	}
}

func TestFormatPercentScenario(t *testing.T) {
	// Two records at +12.34% and -5.00% average to +3.67%.
	mean := (12.34 + -5.00) / 2
	if got := FormatPercent(mean); got != "+3.67%" {
		t.Errorf("FormatPercent(%v) = %q, want +3.67%%", mean, got)
	}
	if ClassFor(mean) != "positive" {
		t.Errorf("class = %q, want positive", ClassFor(mean))
	}
	if got := FormatPercent(-5); got != "-5.00%" {
		t.Errorf("FormatPercent(-5) = %q", got)
	}
}

func TestTableRowsEnteringDetection(t *testing.T) {
	c := NewCache()
	rows := []model.StrategyRecord{
		{Symbol: "BTC", BucketRaw: "b1", TSID: "1", Position: model.PositionLong},
		{Symbol: "ETH", BucketRaw: "b1", TSID: "2", Position: model.PositionShort},
	}

	views := TableRows(c, rows, true)
	for _, v := range views {
		if !v.Entering {
			t.Errorf("row %s should enter on first animated render", v.Key)
		}
	}

	// Same rows again: nothing enters.
	views = TableRows(c, rows, true)
	for _, v := range views {
		if v.Entering {
			t.Errorf("row %s re-entered without being new", v.Key)
		}
	}

	// A new row enters, existing ones do not.
	rows = append(rows, model.StrategyRecord{Symbol: "SOL", BucketRaw: "b2", TSID: "3"})
	views = TableRows(c, rows, true)
	entering := 0
	for _, v := range views {
		if v.Entering {
			entering++
			if v.Key != "b2/TS-3" {
				t.Errorf("unexpected entering row %s", v.Key)
			}
		}
	}
	if entering != 1 {
		t.Errorf("entering count = %d, want 1", entering)
	}
}

func TestTableRowsAnimationSuppressed(t *testing.T) {
	c := NewCache()
	rows := []model.StrategyRecord{{Symbol: "BTC", BucketRaw: "b1", TSID: "1"}}

	views := TableRows(c, rows, false)
	if views[0].Entering {
		t.Error("suppressed pass must not mark rows as entering")
	}
}

func TestStatFieldsChangeDetectionStability(t *testing.T) {
	c := NewCache()
	stats := model.AggregateStats{TotalSymbols: 4, AvgReturn: 3.67, FreshnessPercent: 75}

	StatFields(c, "all", stats)
	// Re-fetching an unchanged dataset: no field may pulse.
	for _, f := range StatFields(c, "all", stats) {
		if f.Changed {
			t.Errorf("field %s flagged changed on identical stats", f.Key.Field)
		}
	}

	stats.AvgReturn = 4.0
	changed := 0
	for _, f := range StatFields(c, "all", stats) {
		if f.Changed {
			changed++
			if f.Key.Field != "avg_return" {
				t.Errorf("unexpected changed field %s", f.Key.Field)
			}
		}
	}
	if changed != 1 {
		t.Errorf("changed count = %d, want 1", changed)
	}
}
