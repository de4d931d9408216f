package repository

import (
	"context"
	"sync"
	"time"

	"inpatient-registration/internal/domain/entity"
	domainRepo "inpatient-registration/internal/domain/repository"
)

type memoryPatientStore struct {
	mu          sync.Mutex
	patients    []entity.Patient
	loadDelay   time.Duration
	insertDelay time.Duration
}

// NewMemoryPatientStore returns a PatientStore that keeps records in process
// and waits loadDelay / insertDelay on each call to mimic a remote service.
func NewMemoryPatientStore(seed []entity.Patient, loadDelay, insertDelay time.Duration) domainRepo.PatientStore {
	patients := make([]entity.Patient, len(seed))
	copy(patients, seed)

	return &memoryPatientStore{
		patients:    patients,
		loadDelay:   loadDelay,
		insertDelay: insertDelay,
	}
}

func (s *memoryPatientStore) LoadPatients(ctx context.Context) ([]entity.Patient, error) {
	if err := wait(ctx, s.loadDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Patient, len(s.patients))
	copy(out, s.patients)
	return out, nil
}

func (s *memoryPatientStore) InsertPatient(ctx context.Context, patient entity.Patient) (entity.Patient, error) {
	if err := wait(ctx, s.insertDelay); err != nil {
		return entity.Patient{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.patients {
		if p.NIK == patient.NIK {
			return entity.Patient{}, domainRepo.ErrDuplicateNIK
		}
	}

	s.patients = append([]entity.Patient{patient}, s.patients...)
	return patient, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
