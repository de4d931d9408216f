package repository

import (
	"context"
	"errors"

	"inpatient-registration/internal/domain/entity"
)

// ErrDuplicateNIK is returned by a store that already holds a record with the same NIK.
var ErrDuplicateNIK = errors.New("patient with this nik already exists")

// PatientStore is the remote system of record for admissions.
type PatientStore interface {
	// LoadPatients returns every stored record, most recent first.
	LoadPatients(ctx context.Context) ([]entity.Patient, error)
	// InsertPatient persists a record whose id was assigned by the registry
	// and returns the stored record.
	InsertPatient(ctx context.Context, patient entity.Patient) (entity.Patient, error)
}
