package timeline

import (
	"testing"
	"time"
)

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestBuildStepsOnlyCreated(t *testing.T) {
	steps := BuildSteps(Milestones{CreatedAt: ts("2026-01-02T10:00:00Z")})

	if !steps[0].IsComplete {
		t.Error("Imported should be complete")
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].IsComplete {
			t.Errorf("step %s should be incomplete", steps[i].Name)
		}
	}
	if !steps[1].IsCurrent {
		t.Error("Processing should be current")
	}
	if steps[2].IsCurrent || steps[3].IsCurrent {
		t.Error("only one step may be current")
	}
	if got := Percent(steps); got != 0 {
		t.Errorf("progress should be 0%%, got %d", got)
	}
}

func TestBuildStepsAllComplete(t *testing.T) {
	m := Milestones{
		CreatedAt:   ts("2026-01-01T00:00:00Z"),
		PickedAt:    ts("2026-01-02T00:00:00Z"),
		LabeledAt:   ts("2026-01-03T00:00:00Z"),
		DeliveredAt: ts("2026-01-05T00:00:00Z"),
	}
	steps := BuildSteps(m)
	for _, s := range steps {
		if !s.IsComplete {
			t.Errorf("step %s should be complete", s.Name)
		}
		if s.IsCurrent {
			t.Errorf("completed timeline should have no current step, got %s", s.Name)
		}
	}
	if got := Percent(steps); got != 100 {
		t.Errorf("progress should be 100%%, got %d", got)
	}
}

func TestBuildStepsPackedCountsAsProcessing(t *testing.T) {
	m := Milestones{
		CreatedAt: ts("2026-01-01T00:00:00Z"),
		PackedAt:  ts("2026-01-02T00:00:00Z"),
	}
	steps := BuildSteps(m)
	if !steps[1].IsComplete {
		t.Error("Processing should be complete when packed_at is set")
	}
	if !steps[2].IsCurrent {
		t.Error("Shipped should be current")
	}
	if got := Percent(steps); got != 33 {
		t.Errorf("progress should be 33%%, got %d", got)
	}
}

func TestBuildStepsNothingComplete(t *testing.T) {
	steps := BuildSteps(Milestones{})
	if !steps[0].IsCurrent {
		t.Error("Imported should be current when nothing is complete")
	}
	if got := Percent(steps); got != 0 {
		t.Errorf("progress should clamp to 0%%, got %d", got)
	}
}

func TestGroupEvents(t *testing.T) {
	events := []Event{
		{Timestamp: *ts("2026-01-02T08:00:00Z"), Description: "Order imported", Origin: OriginShipment},
		{Timestamp: *ts("2026-01-02T14:30:00Z"), Description: "Picked", Origin: OriginShipment},
		{Timestamp: *ts("2026-01-03T09:00:00Z"), Description: "Label created", Origin: OriginShipment},
		{Timestamp: *ts("2026-01-05T12:00:00Z"), Description: "Claim opened", Origin: OriginClaim},
	}

	groups := GroupEvents(events)
	if len(groups) != 3 {
		t.Fatalf("expected 3 date groups, got %d", len(groups))
	}
	if groups[0].Date != "2026-01-02" || len(groups[0].Events) != 2 {
		t.Errorf("first group should hold both Jan 2 events, got %+v", groups[0])
	}
	if groups[0].Events[0].Description != "Order imported" {
		t.Error("input order must be preserved inside a group")
	}
	if groups[2].Events[0].Origin != OriginClaim {
		t.Error("claim-origin events must survive grouping")
	}
}

func TestGroupEventsEmpty(t *testing.T) {
	if groups := GroupEvents(nil); groups != nil {
		t.Errorf("empty event list should produce no groups, got %+v", groups)
	}
}

func TestBuild(t *testing.T) {
	p := Build(Milestones{CreatedAt: ts("2026-01-01T00:00:00Z")}, nil)
	if p.HasEvents {
		t.Error("no events should suppress the detail view")
	}
	if len(p.Steps) != 4 {
		t.Errorf("expected 4 steps, got %d", len(p.Steps))
	}
}
