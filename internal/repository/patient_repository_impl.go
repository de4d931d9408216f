package repository

import (
	"context"
	"errors"
	"strings"

	"inpatient-registration/internal/domain/entity"
	domainRepo "inpatient-registration/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository returns a PostgreSQL backed PatientStore.
func NewPatientRepository(db *gorm.DB) domainRepo.PatientStore {
	return &patientRepository{db: db}
}

// LoadPatients orders by admission date since the table keeps no insertion sequence.
func (r *patientRepository) LoadPatients(ctx context.Context) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).
		Order("tanggal_masuk DESC").
		Order("id").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) InsertPatient(ctx context.Context, patient entity.Patient) (entity.Patient, error) {
	if err := r.db.WithContext(ctx).Create(&patient).Error; err != nil {
		if isDuplicateKeyError(err, "nik") {
			return entity.Patient{}, domainRepo.ErrDuplicateNIK
		}
		return entity.Patient{}, err
	}
	return patient, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// on a constraint whose name contains constraintName
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
