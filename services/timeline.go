package services

import (
	"time"

	"clinic_agenda_go/models"
)

// Timeline entry kinds
const (
	EntryKindAppointment = "appointment"
	EntryKindBlock       = "block"
	EntryKindVirtual     = "virtual"
)

// Compositor defaults
const (
	DefaultScale          = 1.0  // pixels per minute
	DefaultMinEntryHeight = 15.0 // keeps very short entries legible
	DefaultSlotMinutes    = 30
)

// TimelineEntry is one positioned item on the rendered agenda.
type TimelineEntry struct {
	Kind           string     `json:"kind"`
	ID             string     `json:"id,omitempty"` // empty for virtual blocks
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	ProfessionalID string     `json:"professional_id,omitempty"`
	Status         string     `json:"status,omitempty"`
	Cancelled      bool       `json:"cancelled,omitempty"`
	StartAt        time.Time  `json:"start_at"`
	EndAt          time.Time  `json:"end_at"`
	Top            float64    `json:"top"`
	Height         float64    `json:"height"`
	Column         ColumnSlot `json:"column"`
}

// DayTimeline is the render-ready composition of one day: positioned
// entries plus the slot occupancy maps the presentation layer uses to
// enable or suppress "new appointment here" click targets.
type DayTimeline struct {
	Date        time.Time       `json:"date"`
	SlotMinutes int             `json:"slot_minutes"`
	Entries     []TimelineEntry `json:"entries"`
	// Occupied marks slots overlapping a block or a non-cancelled
	// appointment; booking is disabled there.
	Occupied map[int]bool `json:"occupied"`
	// Interior marks slots strictly between an entry's start and end; the
	// separate empty-slot click target is suppressed there.
	Interior map[int]bool `json:"interior"`
}

// TimelineOptions controls scale and layout of the composition.
type TimelineOptions struct {
	Scale             float64 // pixels per minute
	MinEntryHeight    float64
	SlotMinutes       int
	MultiProfessional bool
}

func (o TimelineOptions) withDefaults() TimelineOptions {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.MinEntryHeight <= 0 {
		o.MinEntryHeight = DefaultMinEntryHeight
	}
	if o.SlotMinutes <= 0 {
		o.SlotMinutes = DefaultSlotMinutes
	}
	return o
}

func entryPosition(start, end time.Time, opts TimelineOptions) (top, height float64) {
	top = float64(MinutesSinceDayStart(start)) * opts.Scale
	height = float64(MinutesBetween(start, end)) * opts.Scale
	if height < opts.MinEntryHeight {
		height = opts.MinEntryHeight
	}
	return top, height
}

// markSlots flags every slot overlapping [startMin, endMin) as occupied and
// every slot after the entry's start slot as occupied-interior.
func markSlots(occupied, interior map[int]bool, startMin, endMin, slotMinutes int) {
	startSlot := startMin / slotMinutes
	for i := startSlot; i*slotMinutes < endMin; i++ {
		occupied[i] = true
		if i > startSlot {
			interior[i] = true
		}
	}
}

// ComposeDayTimeline merges one day's appointments, manual blocks and
// derived virtual blocks into a single positioned timeline. Cancelled
// appointments are rendered (struck through by the presentation layer) but
// do not occupy slots and take no overlap column.
func ComposeDayTimeline(date time.Time, appointments []models.Appointment, blocks []models.Block, virtuals []models.VirtualBlock, opts TimelineOptions) DayTimeline {
	opts = opts.withDefaults()

	timeline := DayTimeline{
		Date:        DayStart(date),
		SlotMinutes: opts.SlotMinutes,
		Entries:     make([]TimelineEntry, 0, len(appointments)+len(blocks)+len(virtuals)),
		Occupied:    make(map[int]bool),
		Interior:    make(map[int]bool),
	}

	appointmentColumns := map[string]ColumnSlot{}
	blockColumns := map[string]ColumnSlot{}
	if opts.MultiProfessional {
		appointmentColumns = AssignAppointmentColumns(appointments)
		blockColumns = AssignBlockColumns(blocks)
	}

	for _, apt := range appointments {
		top, height := entryPosition(apt.StartTime, apt.EndTime, opts)

		title := apt.ServiceType
		if apt.Patient.Name != "" {
			title = apt.Patient.Name + " - " + apt.ServiceType
		}

		column := ColumnSlot{Index: 0, Total: 1}
		if slot, ok := appointmentColumns[apt.ID]; ok {
			column = slot
		}

		observations := ""
		if apt.Observations != nil {
			observations = *apt.Observations
		}

		timeline.Entries = append(timeline.Entries, TimelineEntry{
			Kind:           EntryKindAppointment,
			ID:             apt.ID,
			Title:          title,
			Description:    observations,
			ProfessionalID: apt.ProfessionalID,
			Status:         apt.Status,
			Cancelled:      apt.Cancelled,
			StartAt:        apt.StartTime,
			EndAt:          apt.EndTime,
			Top:            top,
			Height:         height,
			Column:         column,
		})

		if apt.Occupies() {
			markSlots(timeline.Occupied, timeline.Interior,
				MinutesSinceDayStart(apt.StartTime), MinutesSinceDayStart(apt.StartTime)+MinutesBetween(apt.StartTime, apt.EndTime),
				opts.SlotMinutes)
		}
	}

	for _, block := range blocks {
		top, height := entryPosition(block.StartAt, block.EndAt, opts)

		column := ColumnSlot{Index: 0, Total: 1}
		if slot, ok := blockColumns[block.ID]; ok {
			column = slot
		}

		description := ""
		if block.Description != nil {
			description = *block.Description
		}

		timeline.Entries = append(timeline.Entries, TimelineEntry{
			Kind:           EntryKindBlock,
			ID:             block.ID,
			Title:          block.Title,
			Description:    description,
			ProfessionalID: block.ProfessionalID,
			StartAt:        block.StartAt,
			EndAt:          block.EndAt,
			Top:            top,
			Height:         height,
			Column:         column,
		})

		markSlots(timeline.Occupied, timeline.Interior,
			MinutesSinceDayStart(block.StartAt), MinutesSinceDayStart(block.StartAt)+MinutesBetween(block.StartAt, block.EndAt),
			opts.SlotMinutes)
	}

	for _, virtual := range virtuals {
		top, height := entryPosition(virtual.StartAt, virtual.EndAt, opts)

		timeline.Entries = append(timeline.Entries, TimelineEntry{
			Kind:        EntryKindVirtual,
			Title:       virtual.Title,
			Description: virtual.Description,
			StartAt:     virtual.StartAt,
			EndAt:       virtual.EndAt,
			Top:         top,
			Height:      height,
			Column:      ColumnSlot{Index: 0, Total: 1},
		})

		markSlots(timeline.Occupied, timeline.Interior,
			MinutesSinceDayStart(virtual.StartAt), MinutesSinceDayStart(virtual.StartAt)+MinutesBetween(virtual.StartAt, virtual.EndAt),
			opts.SlotMinutes)
	}

	return timeline
}

// ComposeWeekTimeline composes the 7 days starting at weekStart. Entries
// are bucketed into days by their start date; virtual blocks are derived
// from the schedule per day.
func ComposeWeekTimeline(weekStart time.Time, schedule models.WeekSchedule, appointments []models.Appointment, blocks []models.Block, opts TimelineOptions) []DayTimeline {
	days := make([]DayTimeline, 0, 7)
	for i := 0; i < 7; i++ {
		date := DayStart(weekStart.AddDate(0, 0, i))
		next := date.AddDate(0, 0, 1)

		var dayAppointments []models.Appointment
		for _, apt := range appointments {
			if !apt.StartTime.Before(date) && apt.StartTime.Before(next) {
				dayAppointments = append(dayAppointments, apt)
			}
		}

		var dayBlocks []models.Block
		for _, block := range blocks {
			if !block.StartAt.Before(date) && block.StartAt.Before(next) {
				dayBlocks = append(dayBlocks, block)
			}
		}

		virtuals := VirtualBlocksForDay(schedule, date)
		days = append(days, ComposeDayTimeline(date, dayAppointments, dayBlocks, virtuals, opts))
	}
	return days
}
