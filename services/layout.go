package services

import (
	"sort"
	"time"

	"clinic_agenda_go/models"
)

// ColumnSlot is the side-by-side position of one agenda entry when several
// professionals share a timeline: Index-th of Total equal-width columns.
type ColumnSlot struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// WidthPercent is the rendered width of the entry as a percentage of the
// day column.
func (c ColumnSlot) WidthPercent() float64 {
	if c.Total <= 0 {
		return 100
	}
	return 100.0 / float64(c.Total)
}

// LeftPercent is the rendered left offset of the entry as a percentage of
// the day column.
func (c ColumnSlot) LeftPercent() float64 {
	return float64(c.Index) * c.WidthPercent()
}

type layoutInterval struct {
	id           string
	professional string
	start, end   time.Time
}

// assignColumns partitions intervals into overlap groups and assigns each a
// deterministic column. A group is the transitive closure of half-open
// interval intersection: a chain of partial overlaps (A-B and B-C overlap,
// A-C do not) still merges all three into a single group of 3. Columns are
// never reused within a group even between disjoint members, so a chain
// over-allocates width rather than packing like interval-graph coloring;
// that is the intended rendering of the multi-professional view.
func assignColumns(items []layoutInterval) map[string]ColumnSlot {
	sorted := make([]layoutInterval, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	slots := make(map[string]ColumnSlot, len(sorted))

	var group []layoutInterval
	var groupEnd time.Time
	flush := func() {
		if len(group) == 0 {
			return
		}
		// Column order inside a group is by professional id so that the same
		// inputs always render the same layout.
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].professional < group[j].professional
		})
		for i, member := range group {
			slots[member.id] = ColumnSlot{Index: i, Total: len(group)}
		}
		group = nil
	}

	for _, item := range sorted {
		// Half-open intervals: an entry starting exactly at the group's
		// furthest end does not intersect it and opens a new group.
		if len(group) > 0 && item.start.Before(groupEnd) {
			group = append(group, item)
			if item.end.After(groupEnd) {
				groupEnd = item.end
			}
			continue
		}
		flush()
		group = []layoutInterval{item}
		groupEnd = item.end
	}
	flush()

	return slots
}

// AssignAppointmentColumns computes side-by-side columns for one day's
// appointments in multi-professional view. Cancelled appointments are left
// out entirely: they render struck through at full width and claim no column.
func AssignAppointmentColumns(appointments []models.Appointment) map[string]ColumnSlot {
	items := make([]layoutInterval, 0, len(appointments))
	for _, apt := range appointments {
		if apt.Cancelled {
			continue
		}
		items = append(items, layoutInterval{
			id:           apt.ID,
			professional: apt.ProfessionalID,
			start:        apt.StartTime,
			end:          apt.EndTime,
		})
	}
	return assignColumns(items)
}

// AssignBlockColumns computes side-by-side columns for one day's manual
// blocks. Blocks are partitioned independently of appointment groups; the
// two kinds never share a group.
func AssignBlockColumns(blocks []models.Block) map[string]ColumnSlot {
	items := make([]layoutInterval, 0, len(blocks))
	for _, block := range blocks {
		items = append(items, layoutInterval{
			id:           block.ID,
			professional: block.ProfessionalID,
			start:        block.StartAt,
			end:          block.EndAt,
		})
	}
	return assignColumns(items)
}
