// Package timeline derives the shipment drawer's coarse progress steps and
// its date-grouped event feed from lifecycle timestamps and raw tracking
// events.
package timeline

import "time"

// Milestones carries the nullable lifecycle timestamps of a shipment.
type Milestones struct {
	CreatedAt   *time.Time
	PickedAt    *time.Time
	PackedAt    *time.Time
	LabeledAt   *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
}

// StepName identifies one of the four coarse progress steps.
type StepName string

const (
	StepImported   StepName = "Imported"
	StepProcessing StepName = "Processing"
	StepShipped    StepName = "Shipped"
	StepDelivered  StepName = "Delivered"
)

// Step is one resolved progress step.
type Step struct {
	Name       StepName `json:"name"`
	IsComplete bool     `json:"isComplete"`
	IsCurrent  bool     `json:"isCurrent"`
}

// EventOrigin tags where a timeline event came from.
type EventOrigin string

const (
	OriginShipment EventOrigin = "shipment"
	OriginClaim    EventOrigin = "claim"
)

// Event is a single discrete timeline entry, assumed already chronological.
type Event struct {
	Timestamp   time.Time   `json:"timestamp"`
	Description string      `json:"description"`
	Origin      EventOrigin `json:"origin"`
}

// EventGroup holds consecutive events sharing a calendar date.
type EventGroup struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

// Progress is the assembled view: four steps, a completion percentage, and
// the grouped event feed.
type Progress struct {
	Steps     []Step       `json:"steps"`
	Percent   int          `json:"percent"`
	Groups    []EventGroup `json:"groups,omitempty"`
	HasEvents bool         `json:"hasEvents"`
}

// BuildSteps resolves the four coarse steps from lifecycle timestamps.
// A step is complete when any of its governing timestamps is set; the
// current step is the first incomplete one whose predecessor completed.
func BuildSteps(m Milestones) []Step {
	completed := []bool{
		m.CreatedAt != nil,
		m.PickedAt != nil || m.PackedAt != nil,
		m.LabeledAt != nil || m.InTransitAt != nil,
		m.DeliveredAt != nil,
	}
	names := []StepName{StepImported, StepProcessing, StepShipped, StepDelivered}

	steps := make([]Step, len(names))
	currentMarked := false
	for i, name := range names {
		steps[i] = Step{Name: name, IsComplete: completed[i]}
		if !currentMarked && !completed[i] {
			reachable := i == 0 || completed[i-1]
			if reachable {
				steps[i].IsCurrent = true
			}
			currentMarked = true
		}
	}
	return steps
}

// Percent computes the progress percentage for the given steps:
// (completed-1)/(total-1)*100, clamped to 0 when nothing is complete.
func Percent(steps []Step) int {
	if len(steps) < 2 {
		return 0
	}
	completed := 0
	for _, s := range steps {
		if s.IsComplete {
			completed++
		}
	}
	if completed == 0 {
		return 0
	}
	return (completed - 1) * 100 / (len(steps) - 1)
}

// GroupEvents buckets consecutive events by calendar date, preserving input
// order exactly. The upstream feed is trusted to be chronological; no
// re-sort is performed.
func GroupEvents(events []Event) []EventGroup {
	if len(events) == 0 {
		return nil
	}

	var groups []EventGroup
	for _, ev := range events {
		date := ev.Timestamp.Format("2006-01-02")
		if n := len(groups); n > 0 && groups[n-1].Date == date {
			groups[n-1].Events = append(groups[n-1].Events, ev)
			continue
		}
		groups = append(groups, EventGroup{Date: date, Events: []Event{ev}})
	}
	return groups
}

// Build assembles the full progress view.
func Build(m Milestones, events []Event) Progress {
	steps := BuildSteps(m)
	return Progress{
		Steps:     steps,
		Percent:   Percent(steps),
		Groups:    GroupEvents(events),
		HasEvents: len(events) > 0,
	}
}
