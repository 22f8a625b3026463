package services

import (
	"testing"
	"time"

	"clinic_agenda_go/models"

	"github.com/stretchr/testify/assert"
)

func makeAppointment(id, professionalID string, startClock, endClock string) models.Appointment {
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	startHour, startMin, _ := ParseClock(startClock)
	endHour, endMin, _ := ParseClock(endClock)
	return models.Appointment{
		ID:             id,
		ProfessionalID: professionalID,
		StartTime:      day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		EndTime:        day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestAssignAppointmentColumns_Disjoint(t *testing.T) {
	appointments := []models.Appointment{
		makeAppointment("a", "prof-1", "09:00", "09:30"),
		makeAppointment("b", "prof-2", "10:00", "10:30"),
	}

	slots := AssignAppointmentColumns(appointments)

	assert.Equal(t, ColumnSlot{Index: 0, Total: 1}, slots["a"])
	assert.Equal(t, ColumnSlot{Index: 0, Total: 1}, slots["b"])
}

func TestAssignAppointmentColumns_BackToBack(t *testing.T) {
	// Touching endpoints are not an overlap: [9:00,9:30) and [9:30,10:00)
	appointments := []models.Appointment{
		makeAppointment("a", "prof-1", "09:00", "09:30"),
		makeAppointment("b", "prof-2", "09:30", "10:00"),
	}

	slots := AssignAppointmentColumns(appointments)

	assert.Equal(t, ColumnSlot{Index: 0, Total: 1}, slots["a"])
	assert.Equal(t, ColumnSlot{Index: 0, Total: 1}, slots["b"])
}

func TestAssignAppointmentColumns_Pair(t *testing.T) {
	appointments := []models.Appointment{
		makeAppointment("a", "prof-2", "09:00", "10:00"),
		makeAppointment("b", "prof-1", "09:30", "10:30"),
	}

	slots := AssignAppointmentColumns(appointments)

	// Columns within a group are ordered by professional id
	assert.Equal(t, ColumnSlot{Index: 1, Total: 2}, slots["a"])
	assert.Equal(t, ColumnSlot{Index: 0, Total: 2}, slots["b"])
}

func TestAssignAppointmentColumns_ChainOfThree(t *testing.T) {
	// A overlaps B, B overlaps C, but A and C do not touch. The chain still
	// merges all three into one group of 3, columns ordered by professional
	// id, so no two entries share a horizontal span.
	appointments := []models.Appointment{
		makeAppointment("a", "prof-1", "09:00", "09:30"),
		makeAppointment("b", "prof-2", "09:15", "09:45"),
		makeAppointment("c", "prof-3", "09:40", "10:00"),
	}

	slots := AssignAppointmentColumns(appointments)

	assert.Equal(t, ColumnSlot{Index: 0, Total: 3}, slots["a"])
	assert.Equal(t, ColumnSlot{Index: 1, Total: 3}, slots["b"])
	assert.Equal(t, ColumnSlot{Index: 2, Total: 3}, slots["c"])

	// Members of one group partition the full width into equal shares
	assert.InDelta(t, 100.0/3, slots["a"].WidthPercent(), 0.001)
	assert.InDelta(t, slots["a"].LeftPercent()+slots["a"].WidthPercent(), slots["b"].LeftPercent(), 0.001)
	assert.InDelta(t, slots["b"].LeftPercent()+slots["b"].WidthPercent(), slots["c"].LeftPercent(), 0.001)
	assert.InDelta(t, 100.0, slots["c"].LeftPercent()+slots["c"].WidthPercent(), 0.001)
}

func TestAssignAppointmentColumns_ChainThenSeparate(t *testing.T) {
	// A fourth appointment past the chain's end starts a fresh group
	appointments := []models.Appointment{
		makeAppointment("a", "prof-1", "09:00", "09:30"),
		makeAppointment("b", "prof-2", "09:15", "09:45"),
		makeAppointment("c", "prof-3", "09:40", "10:00"),
		makeAppointment("d", "prof-4", "10:00", "10:30"),
	}

	slots := AssignAppointmentColumns(appointments)

	assert.Equal(t, 3, slots["a"].Total)
	assert.Equal(t, ColumnSlot{Index: 0, Total: 1}, slots["d"])
}

func TestAssignAppointmentColumns_SkipsCancelled(t *testing.T) {
	cancelled := makeAppointment("a", "prof-1", "09:00", "10:00")
	cancelled.Cancelled = true
	appointments := []models.Appointment{
		cancelled,
		makeAppointment("b", "prof-2", "09:30", "10:30"),
	}

	slots := AssignAppointmentColumns(appointments)

	_, hasCancelled := slots["a"]
	assert.False(t, hasCancelled)
	assert.Equal(t, ColumnSlot{Index: 0, Total: 1}, slots["b"])
}

func TestAssignBlockColumns(t *testing.T) {
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	blocks := []models.Block{
		{ID: "x", ProfessionalID: "prof-2", StartAt: day.Add(9 * time.Hour), EndAt: day.Add(11 * time.Hour)},
		{ID: "y", ProfessionalID: "prof-1", StartAt: day.Add(10 * time.Hour), EndAt: day.Add(12 * time.Hour)},
	}

	slots := AssignBlockColumns(blocks)

	assert.Equal(t, ColumnSlot{Index: 1, Total: 2}, slots["x"])
	assert.Equal(t, ColumnSlot{Index: 0, Total: 2}, slots["y"])
}

func TestColumnSlotGeometry(t *testing.T) {
	slot := ColumnSlot{Index: 1, Total: 2}
	assert.InDelta(t, 50.0, slot.WidthPercent(), 0.001)
	assert.InDelta(t, 50.0, slot.LeftPercent(), 0.001)

	third := ColumnSlot{Index: 2, Total: 3}
	assert.InDelta(t, 100.0/3, third.WidthPercent(), 0.001)
	assert.InDelta(t, 200.0/3, third.LeftPercent(), 0.001)

	// Columns of one group always partition the full width
	assert.InDelta(t, 100.0, third.LeftPercent()+third.WidthPercent(), 0.001)

	// Degenerate totals still render full width
	assert.InDelta(t, 100.0, ColumnSlot{}.WidthPercent(), 0.001)
}
