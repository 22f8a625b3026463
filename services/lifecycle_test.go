package services

import (
	"testing"

	"clinic_agenda_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// seedLifecycleAppointment books a fresh pending appointment
func seedLifecycleAppointment(t *testing.T, db *gorm.DB) *models.Appointment {
	professional := seedProfessional(t, db, "drsmith")
	patient := seedPatient(t, db, "ana")

	apt := appointmentAt(patient.ID, professional.ID, aptMonday, 9, 10)
	assert.NoError(t, CreateAppointment(db, apt))
	return apt
}

func TestConfirmAppointment(t *testing.T) {
	db := SetupAppointmentTestDB(t)
	apt := seedLifecycleAppointment(t, db)

	confirmed, err := ConfirmAppointment(db, apt.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, confirmed.Status)

	// Confirming twice fails: no longer pending
	_, err = ConfirmAppointment(db, apt.ID)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestCompleteAppointment(t *testing.T) {
	db := SetupAppointmentTestDB(t)
	apt := seedLifecycleAppointment(t, db)

	// Completion requires confirmation first
	_, err := CompleteAppointment(db, apt.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	_, err = ConfirmAppointment(db, apt.ID)
	assert.NoError(t, err)

	completed, err := CompleteAppointment(db, apt.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCompleted, completed.Status)

	// Terminal: no further transitions
	_, err = CompleteAppointment(db, apt.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	_, err = MarkAppointmentNoShow(db, apt.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestMarkAppointmentNoShow(t *testing.T) {
	db := SetupAppointmentTestDB(t)
	apt := seedLifecycleAppointment(t, db)

	// A pending appointment cannot be a no-show
	_, err := MarkAppointmentNoShow(db, apt.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	_, err = ConfirmAppointment(db, apt.ID)
	assert.NoError(t, err)

	noShow, err := MarkAppointmentNoShow(db, apt.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusNoShow, noShow.Status)
}

func TestCancelAppointment(t *testing.T) {
	db := SetupAppointmentTestDB(t)
	apt := seedLifecycleAppointment(t, db)

	byID := "receptionist-1"
	cancelled, err := CancelAppointment(db, apt.ID, "patient called in sick", &byID)
	assert.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.NotNil(t, cancelled.CancelledAt)

	// The status is left as it was: cancellation is orthogonal
	reloaded, err := GetAppointmentByID(db, apt.ID)
	assert.NoError(t, err)
	assert.True(t, reloaded.Cancelled)
	assert.Equal(t, models.AppointmentStatusPending, reloaded.Status)
	assert.Equal(t, "patient called in sick", *reloaded.CancellationReason)
	assert.Equal(t, byID, *reloaded.CancelledByID)
}

func TestCancelAppointment_FromConfirmed(t *testing.T) {
	db := SetupAppointmentTestDB(t)
	apt := seedLifecycleAppointment(t, db)

	_, err := ConfirmAppointment(db, apt.ID)
	assert.NoError(t, err)

	cancelled, err := CancelAppointment(db, apt.ID, "", nil)
	assert.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.Equal(t, models.AppointmentStatusConfirmed, cancelled.Status)
}

func TestCancelAppointment_Preconditions(t *testing.T) {
	db := SetupAppointmentTestDB(t)
	apt := seedLifecycleAppointment(t, db)

	_, err := ConfirmAppointment(db, apt.ID)
	assert.NoError(t, err)
	_, err = CompleteAppointment(db, apt.ID)
	assert.NoError(t, err)

	// A completed appointment can no longer be cancelled
	_, err = CancelAppointment(db, apt.ID, "", nil)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestCancelAppointment_Irreversible(t *testing.T) {
	db := SetupAppointmentTestDB(t)
	apt := seedLifecycleAppointment(t, db)

	_, err := CancelAppointment(db, apt.ID, "", nil)
	assert.NoError(t, err)

	// Cancelling again, or transitioning a cancelled appointment, all fail
	_, err = CancelAppointment(db, apt.ID, "", nil)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	_, err = ConfirmAppointment(db, apt.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	_, err = CompleteAppointment(db, apt.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	_, err = MarkAppointmentNoShow(db, apt.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}
