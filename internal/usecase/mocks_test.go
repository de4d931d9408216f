package usecase

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"inpatient-registration/internal/domain/entity"
	domainRepo "inpatient-registration/internal/domain/repository"
	"inpatient-registration/internal/service"

	"github.com/sirupsen/logrus"
)

var _ domainRepo.PatientStore = (*MockPatientStore)(nil)

type MockPatientStore struct {
	LoadPatientsFunc  func(ctx context.Context) ([]entity.Patient, error)
	InsertPatientFunc func(ctx context.Context, patient entity.Patient) (entity.Patient, error)

	LoadCallCount   int32
	InsertCallCount int32
}

func (m *MockPatientStore) LoadPatients(ctx context.Context) ([]entity.Patient, error) {
	atomic.AddInt32(&m.LoadCallCount, 1)
	if m.LoadPatientsFunc != nil {
		return m.LoadPatientsFunc(ctx)
	}
	return nil, nil
}

func (m *MockPatientStore) InsertPatient(ctx context.Context, patient entity.Patient) (entity.Patient, error) {
	atomic.AddInt32(&m.InsertCallCount, 1)
	if m.InsertPatientFunc != nil {
		return m.InsertPatientFunc(ctx, patient)
	}
	return patient, nil
}

var _ service.Notifier = (*MockNotifier)(nil)

type MockNotifier struct {
	mu            sync.Mutex
	Notifications []entity.Notification
}

func (m *MockNotifier) Notify(kind entity.NotificationKind, title, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, entity.Notification{Kind: kind, Title: title, Message: message})
}

var _ service.AdmissionLocker = (*MockLocker)(nil)

type MockLocker struct {
	WithNIKLockFunc func(ctx context.Context, nik string, fn func(ctx context.Context) error) error
}

func (m *MockLocker) WithNIKLock(ctx context.Context, nik string, fn func(ctx context.Context) error) error {
	if m.WithNIKLockFunc != nil {
		return m.WithNIKLockFunc(ctx, nik, fn)
	}
	return fn(ctx)
}

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
