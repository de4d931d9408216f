package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"inpatient-registration/internal/converter"
	"inpatient-registration/internal/delivery/dto"
	"inpatient-registration/internal/domain/entity"
	domainRepo "inpatient-registration/internal/domain/repository"
	"inpatient-registration/internal/observability/metrics"
	"inpatient-registration/internal/registry"
	"inpatient-registration/internal/service"
	"inpatient-registration/pkg/validator"

	"github.com/sirupsen/logrus"
)

var (
	ErrAdmissionInProgress = errors.New("an admission is already being submitted")
	ErrRemoteInsert        = errors.New("failed to store patient")
)

const (
	admissionSucceededTitle   = "Berhasil!"
	admissionSucceededMessage = "Pasien %s berhasil didaftarkan"
	admissionFailedTitle      = "Gagal!"
	admissionFailedMessage    = "Terjadi kesalahan saat mendaftarkan pasien"
)

// PatientAdmissionUsecase runs one admission at a time:
// idle -> submitting -> succeeded | failed -> idle.
type PatientAdmissionUsecase interface {
	// Admit validates req, stores the record remotely and prepends it to the
	// registry. Validation problems come back as validator.FieldErrors.
	Admit(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	State() entity.AdmissionState
	// Acknowledge returns a finished admission to idle.
	Acknowledge()
}

type patientAdmissionUsecase struct {
	log       *logrus.Logger
	validator *validator.CustomValidator
	registry  *registry.PatientRegistry
	store     domainRepo.PatientStore
	locker    service.AdmissionLocker
	notifier  service.Notifier
	metrics   *metrics.Metrics

	mu    sync.Mutex
	state entity.AdmissionState
}

func NewPatientAdmissionUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	registry *registry.PatientRegistry,
	store domainRepo.PatientStore,
	locker service.AdmissionLocker,
	notifier service.Notifier,
	metrics *metrics.Metrics,
) PatientAdmissionUsecase {
	return &patientAdmissionUsecase{
		log:       log,
		validator: validator,
		registry:  registry,
		store:     store,
		locker:    locker,
		notifier:  notifier,
		metrics:   metrics,
		state:     entity.AdmissionIdle,
	}
}

func (u *patientAdmissionUsecase) Admit(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	started := time.Now()

	if err := u.begin(); err != nil {
		u.metrics.ObserveAdmission(metrics.OutcomeRejected, started)
		return nil, err
	}

	patient, outcome, err := u.admit(ctx, req)
	u.metrics.ObserveAdmission(outcome, started)
	if err != nil {
		u.finish(entity.AdmissionFailed)
		return nil, err
	}

	u.finish(entity.AdmissionSucceeded)
	return converter.PatientToResponse(&patient), nil
}

func (u *patientAdmissionUsecase) admit(ctx context.Context, req *dto.CreatePatientRequest) (entity.Patient, string, error) {
	if err := u.validator.Validate(req); err != nil {
		return entity.Patient{}, metrics.OutcomeInvalid, err
	}

	input, err := converter.CreatePatientRequestToInput(req)
	if err != nil {
		return entity.Patient{}, metrics.OutcomeInvalid, err
	}

	if u.registry.HasNIK(input.NIK) {
		return entity.Patient{}, metrics.OutcomeInvalid, u.validator.UniqueViolation("nik")
	}

	// an admission that reached the store runs to completion
	ctx = context.WithoutCancel(ctx)

	var stored entity.Patient
	err = u.locker.WithNIKLock(ctx, input.NIK, func(ctx context.Context) error {
		record := u.registry.NewRecord(input)

		saved, err := u.store.InsertPatient(ctx, record)
		if err != nil {
			return err
		}
		if err := u.registry.Insert(saved); err != nil {
			u.log.Warnf("Patient %s stored but rejected by registry: %+v", saved.ID, err)
			u.reloadRegistry(ctx)
			return err
		}

		stored = saved
		return nil
	})

	switch {
	case err == nil:
		u.metrics.SetRegistrySize(u.registry.Len())
		u.notifier.Notify(entity.NotificationSuccess, admissionSucceededTitle, fmt.Sprintf(admissionSucceededMessage, stored.Nama))
		return stored, metrics.OutcomeSucceeded, nil

	case errors.Is(err, service.ErrLockNotAcquired):
		return entity.Patient{}, metrics.OutcomeRejected, ErrAdmissionInProgress

	case errors.Is(err, domainRepo.ErrDuplicateNIK), errors.Is(err, registry.ErrDuplicateNIK):
		return entity.Patient{}, metrics.OutcomeInvalid, u.validator.UniqueViolation("nik")

	default:
		u.log.Errorf("Failed to insert patient: %+v", err)
		u.notifier.Notify(entity.NotificationError, admissionFailedTitle, admissionFailedMessage)
		return entity.Patient{}, metrics.OutcomeFailed, fmt.Errorf("%w: %w", ErrRemoteInsert, err)
	}
}

// reloadRegistry replaces the registry with the store's records after the two
// have diverged.
func (u *patientAdmissionUsecase) reloadRegistry(ctx context.Context) {
	patients, err := u.store.LoadPatients(ctx)
	if err != nil {
		u.log.Warnf("Failed to reload registry: %+v", err)
		return
	}

	u.registry.Seed(patients)
	u.metrics.SetRegistrySize(len(patients))
}

// begin moves to submitting, acknowledging a finished admission first.
func (u *patientAdmissionUsecase) begin() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state == entity.AdmissionSubmitting {
		return ErrAdmissionInProgress
	}
	u.state = entity.AdmissionSubmitting
	return nil
}

func (u *patientAdmissionUsecase) finish(state entity.AdmissionState) {
	u.mu.Lock()
	u.state = state
	u.mu.Unlock()
}

func (u *patientAdmissionUsecase) State() entity.AdmissionState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *patientAdmissionUsecase) Acknowledge() {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state.Terminal() {
		u.state = entity.AdmissionIdle
	}
}
