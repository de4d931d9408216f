package converter

import (
	"inpatient-registration/internal/delivery/dto"
	"inpatient-registration/internal/domain/entity"
	"inpatient-registration/pkg/validator"
)

// DisplayDateLayout is the id-ID short date format.
const DisplayDateLayout = "02/01/2006"

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                    patient.ID,
		Nama:                  patient.Nama,
		NIK:                   patient.NIK,
		Diagnosa:              patient.Diagnosa,
		TanggalMasuk:          patient.TanggalMasuk,
		TanggalMasukDisplay:   patient.TanggalMasuk.Format(DisplayDateLayout),
		DokterPenanggungJawab: patient.DokterPenanggungJawab,
		Ruangan:               patient.Ruangan,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

// CreatePatientRequestToInput converts an already validated request into a
// PatientInput. Text fields are kept as entered; only the date is parsed.
func CreatePatientRequestToInput(req *dto.CreatePatientRequest) (entity.PatientInput, error) {
	tanggalMasuk, err := validator.ParseAdmissionDate(req.TanggalMasuk)
	if err != nil {
		return entity.PatientInput{}, err
	}

	return entity.PatientInput{
		Nama:                  req.Nama,
		NIK:                   req.NIK,
		Diagnosa:              req.Diagnosa,
		TanggalMasuk:          tanggalMasuk,
		DokterPenanggungJawab: req.DokterPenanggungJawab,
		Ruangan:               req.Ruangan,
	}, nil
}
