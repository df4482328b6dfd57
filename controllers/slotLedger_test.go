package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveAndDoubleReserve(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSlotLedger(db)
	doctor := seedDoctor(t, db, "ledger@test.com", 500, true)

	require.NoError(t, ledger.Reserve(doctor.DoctorID, "2024-03-10", "10:00"))

	err := ledger.Reserve(doctor.DoctorID, "2024-03-10", "10:00")
	assert.ErrorIs(t, err, ErrSlotTaken)

	// A different time on the same date is still free.
	require.NoError(t, ledger.Reserve(doctor.DoctorID, "2024-03-10", "10:30"))
}

func TestReserveUnavailableDoctor(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSlotLedger(db)
	doctor := seedDoctor(t, db, "off@test.com", 500, false)

	err := ledger.Reserve(doctor.DoctorID, "2024-03-10", "10:00")
	assert.ErrorIs(t, err, ErrDoctorUnavailable)
}

func TestReserveUnknownDoctor(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSlotLedger(db)

	err := ledger.Reserve(999, "2024-03-10", "10:00")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestReleaseFreesSlotForRebooking(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSlotLedger(db)
	doctor := seedDoctor(t, db, "rebook@test.com", 500, true)

	require.NoError(t, ledger.Reserve(doctor.DoctorID, "2024-03-10", "10:00"))
	require.NoError(t, ledger.Release(doctor.DoctorID, "2024-03-10", "10:00"))
	require.NoError(t, ledger.Reserve(doctor.DoctorID, "2024-03-10", "10:00"))
}

func TestReleaseIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSlotLedger(db)
	doctor := seedDoctor(t, db, "idem@test.com", 500, true)

	// Releasing a slot that was never claimed is a no-op, not an error.
	require.NoError(t, ledger.Release(doctor.DoctorID, "2024-03-10", "09:00"))
	require.NoError(t, ledger.Release(doctor.DoctorID, "2024-03-10", "09:00"))
}

func TestBookedSlots(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSlotLedger(db)
	doctor := seedDoctor(t, db, "map@test.com", 500, true)

	require.NoError(t, ledger.Reserve(doctor.DoctorID, "2024-03-10", "10:00"))
	require.NoError(t, ledger.Reserve(doctor.DoctorID, "2024-03-10", "11:00"))
	require.NoError(t, ledger.Reserve(doctor.DoctorID, "2024-03-11", "09:30"))

	booked, err := ledger.BookedSlots(doctor.DoctorID)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"2024-03-10": {"10:00", "11:00"},
		"2024-03-11": {"09:30"},
	}, booked)
}
