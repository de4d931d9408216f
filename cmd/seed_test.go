package main

import (
	"context"
	"testing"

	"inpatient-registration/internal/delivery/dto"
	"inpatient-registration/internal/registry"
	"inpatient-registration/internal/repository"
	"inpatient-registration/pkg/validator"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeeder(t *testing.T) (*patientSeeder, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()

	return &patientSeeder{
		log:       log,
		faker:     gofakeit.New(42),
		validator: validator.NewValidator(validator.WithFieldLabels(dto.PatientFieldLabels)),
		registry:  registry.New(),
		store:     repository.NewMemoryPatientStore(repository.MockPatients(), 0, 0),
	}, hook
}

func TestPatientSeeder_GeneratedRequestsAreValid(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	for i := 0; i < 200; i++ {
		req := seeder.fakeRequest()
		require.NoError(t, seeder.validator.Validate(req), "%+v", req)
	}
}

func TestPatientSeeder_Run(t *testing.T) {
	seeder, hook := newTestSeeder(t)
	ctx := context.Background()

	inserted, err := seeder.Run(ctx, 20)

	require.NoError(t, err)
	assert.Equal(t, 20, inserted)
	assert.Empty(t, hook.AllEntries())
	assert.Equal(t, 27, seeder.registry.Len())

	stored, err := seeder.store.LoadPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 27)
}

func TestPatientSeeder_LoadFailure(t *testing.T) {
	seeder, _ := newTestSeeder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seeder.store = repository.NewMemoryPatientStore(nil, 0, 0)

	_, err := seeder.Run(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
}
