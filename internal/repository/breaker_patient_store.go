package repository

import (
	"context"
	"errors"

	"inpatient-registration/internal/domain/entity"
	domainRepo "inpatient-registration/internal/domain/repository"
	"inpatient-registration/pkg/circuitbreaker"
)

type breakerPatientStore struct {
	next    domainRepo.PatientStore
	breaker *circuitbreaker.CircuitBreaker
}

// NewBreakerPatientStore guards every call to next with breaker.
func NewBreakerPatientStore(next domainRepo.PatientStore, breaker *circuitbreaker.CircuitBreaker) domainRepo.PatientStore {
	return &breakerPatientStore{
		next:    next,
		breaker: breaker,
	}
}

func (s *breakerPatientStore) LoadPatients(ctx context.Context) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		patients, err = s.next.LoadPatients(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (s *breakerPatientStore) InsertPatient(ctx context.Context, patient entity.Patient) (entity.Patient, error) {
	var stored entity.Patient
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		stored, err = s.next.InsertPatient(ctx, patient)
		return err
	})
	if err != nil {
		return entity.Patient{}, err
	}
	return stored, nil
}

// StoreCallSucceeded reports whether err leaves the store healthy from the
// breaker's point of view. Duplicate rejections and caller cancellations do.
func StoreCallSucceeded(err error) bool {
	return err == nil ||
		errors.Is(err, domainRepo.ErrDuplicateNIK) ||
		errors.Is(err, context.Canceled)
}
