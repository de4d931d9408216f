package usecase

import (
	"context"
	"errors"

	"inpatient-registration/internal/converter"
	"inpatient-registration/internal/delivery/dto"
	"inpatient-registration/internal/domain/entity"
	domainRepo "inpatient-registration/internal/domain/repository"
	"inpatient-registration/internal/observability/metrics"
	"inpatient-registration/internal/registry"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

type PatientUsecase interface {
	// LoadRegistry replaces the registry contents with the remote store's
	// records. On failure the registry is left as it was.
	LoadRegistry(ctx context.Context) (int, error)
	ListPatients(ctx context.Context, query entity.PatientQuery) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, id string) (*dto.PatientResponse, error)
	GetRooms(ctx context.Context) (*dto.RoomListResponse, error)
}

type patientUsecase struct {
	log      *logrus.Logger
	registry *registry.PatientRegistry
	store    domainRepo.PatientStore
	metrics  *metrics.Metrics
}

func NewPatientUsecase(
	log *logrus.Logger,
	registry *registry.PatientRegistry,
	store domainRepo.PatientStore,
	metrics *metrics.Metrics,
) PatientUsecase {
	return &patientUsecase{
		log:      log,
		registry: registry,
		store:    store,
		metrics:  metrics,
	}
}

func (u *patientUsecase) LoadRegistry(ctx context.Context) (int, error) {
	patients, err := u.store.LoadPatients(ctx)
	if err != nil {
		u.log.Warnf("Failed to load patients: %+v", err)
		return 0, err
	}

	u.registry.Seed(patients)
	u.metrics.SetRegistrySize(len(patients))
	u.log.Infof("Registry loaded with %d patients", len(patients))

	return len(patients), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, query entity.PatientQuery) (*dto.PatientListResponse, error) {
	all := u.registry.ListAll()
	page := registry.Query(all, query)
	u.metrics.IncQueries()

	return &dto.PatientListResponse{
		Patients:   converter.PatientsToResponses(page.Items),
		Total:      page.TotalCount,
		Registered: len(all),
		Page:       page.Page,
		Limit:      page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id string) (*dto.PatientResponse, error) {
	patient, ok := u.registry.FindByID(id)
	if !ok {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(&patient), nil
}

func (u *patientUsecase) GetRooms(ctx context.Context) (*dto.RoomListResponse, error) {
	return &dto.RoomListResponse{
		Rooms: registry.DistinctRooms(u.registry.ListAll()),
	}, nil
}
