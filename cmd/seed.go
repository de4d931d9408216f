package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inpatient-registration/cmd/bootstrap"
	"inpatient-registration/config"
	"inpatient-registration/internal/converter"
	"inpatient-registration/internal/delivery/dto"
	domainRepo "inpatient-registration/internal/domain/repository"
	"inpatient-registration/internal/registry"
	"inpatient-registration/pkg/validator"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var seedDiagnoses = []string{
	"Demam Berdarah Dengue",
	"Pneumonia Komunitas",
	"Gastroenteritis Akut",
	"Hipertensi Emergensi",
	"Diabetes Melitus Tipe 2",
	"Fraktur Femur",
	"Stroke Iskemik",
	"Gagal Jantung Kongestif",
	"Appendisitis Akut",
	"Demam Tifoid",
}

var seedSpecialties = []string{"Sp.PD", "Sp.A", "Sp.B", "Sp.JP", "Sp.N", "Sp.OT", "Sp.P"}

var seedRooms = []string{
	"VIP 101", "VIP 102", "VIP 103",
	"Kelas 1 - 201", "Kelas 1 - 202",
	"Kelas 2 - 301", "Kelas 2 - 302",
	"Kelas 3 - 401",
	"ICU 01", "ICU 02",
}

func newSeedCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert generated inpatients into the patient store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.NewCLI()
			if err != nil {
				return err
			}
			defer app.Close()

			if app.Config.Store.Driver != config.StoreDriverPostgres {
				return fmt.Errorf("seed requires STORE_DRIVER=postgres")
			}

			seeder := &patientSeeder{
				log:       app.Log,
				faker:     gofakeit.New(seed),
				validator: validator.NewValidator(validator.WithFieldLabels(dto.PatientFieldLabels)),
				registry:  app.Registry,
				store:     app.Store,
			}

			inserted, err := seeder.Run(cmd.Context(), count)
			if err != nil {
				return err
			}
			app.Log.Infof("Seed complete: %d patients inserted", inserted)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 50, "number of patients to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one at random)")

	return cmd
}

type patientSeeder struct {
	log       *logrus.Logger
	faker     *gofakeit.Faker
	validator *validator.CustomValidator
	registry  *registry.PatientRegistry
	store     domainRepo.PatientStore
}

// Run loads the existing patients, then inserts count generated ones. Records
// whose NIK is already taken are skipped.
func (s *patientSeeder) Run(ctx context.Context, count int) (int, error) {
	existing, err := s.store.LoadPatients(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing patients: %w", err)
	}
	s.registry.Seed(existing)

	inserted := 0
	for i := 0; i < count; i++ {
		req := s.fakeRequest()
		if err := s.validator.Validate(req); err != nil {
			s.log.Warnf("Skipping generated patient: %+v", err)
			continue
		}
		if s.registry.HasNIK(req.NIK) {
			continue
		}

		input, err := converter.CreatePatientRequestToInput(req)
		if err != nil {
			return inserted, err
		}

		patient, err := s.store.InsertPatient(ctx, s.registry.NewRecord(input))
		if errors.Is(err, domainRepo.ErrDuplicateNIK) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("failed to insert patient %s: %w", req.Nama, err)
		}
		if err := s.registry.Insert(patient); err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, nil
}

func (s *patientSeeder) fakeRequest() *dto.CreatePatientRequest {
	now := time.Now()
	admitted := s.faker.DateRange(now.AddDate(0, -6, 0), now)

	return &dto.CreatePatientRequest{
		Nama:                  s.faker.Name(),
		NIK:                   s.faker.Numerify("################"),
		Diagnosa:              s.faker.RandomString(seedDiagnoses),
		TanggalMasuk:          admitted.Format("2006-01-02"),
		DokterPenanggungJawab: fmt.Sprintf("dr. %s, %s", s.faker.Name(), s.faker.RandomString(seedSpecialties)),
		Ruangan:               s.faker.RandomString(seedRooms),
	}
}
