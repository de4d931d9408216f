package repository

import (
	"context"
	"testing"
	"time"

	"inpatient-registration/internal/domain/entity"
	domainRepo "inpatient-registration/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPatientStore_LoadReturnsSeedCopy(t *testing.T) {
	store := NewMemoryPatientStore(MockPatients(), 0, 0)

	first, err := store.LoadPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 7)
	assert.Equal(t, "Budi Santoso", first[0].Nama)
	assert.Equal(t, "Rahman Ali", first[6].Nama)

	first[0].Nama = "changed"
	second, err := store.LoadPatients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", second[0].Nama)
}

func TestMemoryPatientStore_InsertPrepends(t *testing.T) {
	store := NewMemoryPatientStore(MockPatients(), 0, 0)
	patient := entity.Patient{ID: "new", Nama: "Ani", NIK: "3201012345678999", Ruangan: "VIP 101"}

	stored, err := store.InsertPatient(context.Background(), patient)
	require.NoError(t, err)
	assert.Equal(t, patient, stored)

	all, err := store.LoadPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 8)
	assert.Equal(t, "new", all[0].ID)
}

func TestMemoryPatientStore_InsertDuplicateNIK(t *testing.T) {
	store := NewMemoryPatientStore(MockPatients(), 0, 0)

	_, err := store.InsertPatient(context.Background(), entity.Patient{ID: "x", NIK: "3201012345678901"})
	assert.ErrorIs(t, err, domainRepo.ErrDuplicateNIK)
}

func TestMemoryPatientStore_DelayHonoursContext(t *testing.T) {
	store := NewMemoryPatientStore(nil, time.Hour, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := store.LoadPatients(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = store.InsertPatient(ctx, entity.Patient{ID: "x", NIK: "1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockPatients_UniqueIDsAndNIKs(t *testing.T) {
	ids := map[string]bool{}
	niks := map[string]bool{}
	for _, p := range MockPatients() {
		assert.False(t, ids[p.ID], "duplicate id %s", p.ID)
		assert.False(t, niks[p.NIK], "duplicate nik %s", p.NIK)
		assert.Len(t, p.NIK, 16)
		ids[p.ID] = true
		niks[p.NIK] = true
	}
}
