package entity

import "time"

// Patient is an inpatient admission record. The ID is assigned once by the
// registry and never changes afterwards.
type Patient struct {
	ID                    string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Nama                  string    `gorm:"type:varchar(100);not null" json:"nama"`
	NIK                   string    `gorm:"column:nik;type:char(16);uniqueIndex;not null" json:"nik"`
	Diagnosa              string    `gorm:"type:text;not null" json:"diagnosa"`
	TanggalMasuk          time.Time `gorm:"column:tanggal_masuk;not null;index" json:"tanggal_masuk"`
	DokterPenanggungJawab string    `gorm:"column:dokter_penanggung_jawab;type:varchar(100);not null" json:"dokter_penanggung_jawab"`
	Ruangan               string    `gorm:"type:varchar(50);not null;index" json:"ruangan"`
}

func (Patient) TableName() string {
	return "patients"
}

// PatientInput is a candidate record that already passed validation.
type PatientInput struct {
	Nama                  string
	NIK                   string
	Diagnosa              string
	TanggalMasuk          time.Time
	DokterPenanggungJawab string
	Ruangan               string
}

// ToPatient builds a record from the input with the given id.
func (in PatientInput) ToPatient(id string) Patient {
	return Patient{
		ID:                    id,
		Nama:                  in.Nama,
		NIK:                   in.NIK,
		Diagnosa:              in.Diagnosa,
		TanggalMasuk:          in.TanggalMasuk,
		DokterPenanggungJawab: in.DokterPenanggungJawab,
		Ruangan:               in.Ruangan,
	}
}
