package dto

import "time"

// PatientFieldLabels are the labels used in validation messages.
var PatientFieldLabels = map[string]string{
	"nama":                    "Nama",
	"nik":                     "NIK",
	"diagnosa":                "Diagnosa",
	"tanggal_masuk":           "Tanggal masuk",
	"dokter_penanggung_jawab": "Nama dokter",
	"ruangan":                 "Ruangan",
}

// Request DTOs

type CreatePatientRequest struct {
	Nama                  string `json:"nama" validate:"min=2,max=100"`
	NIK                   string `json:"nik" validate:"len=16,digits"`
	Diagnosa              string `json:"diagnosa" validate:"min=5"`
	TanggalMasuk          string `json:"tanggal_masuk" validate:"required,admission_date,admission_window"` // Format: YYYY-MM-DD or RFC 3339
	DokterPenanggungJawab string `json:"dokter_penanggung_jawab" validate:"min=2"`
	Ruangan               string `json:"ruangan" validate:"min=1"`
}

// Response DTOs

type PatientResponse struct {
	ID                    string    `json:"id"`
	Nama                  string    `json:"nama"`
	NIK                   string    `json:"nik"`
	Diagnosa              string    `json:"diagnosa"`
	TanggalMasuk          time.Time `json:"tanggal_masuk"`
	TanggalMasukDisplay   string    `json:"tanggal_masuk_display"` // Format: DD/MM/YYYY
	DokterPenanggungJawab string    `json:"dokter_penanggung_jawab"`
	Ruangan               string    `json:"ruangan"`
}

type PatientListResponse struct {
	Patients   []PatientResponse `json:"patients"`
	Total      int               `json:"total"`
	Registered int               `json:"registered"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type RoomListResponse struct {
	Rooms []string `json:"rooms"`
}

type AdmissionStateResponse struct {
	State string `json:"state"`
}
