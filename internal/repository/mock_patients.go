package repository

import (
	"time"

	"inpatient-registration/internal/domain/entity"
)

func admissionDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MockPatients returns the demo ward used to seed the memory store.
func MockPatients() []entity.Patient {
	return []entity.Patient{
		{
			ID:                    "1",
			Nama:                  "Budi Santoso",
			NIK:                   "3201012345678901",
			Diagnosa:              "Hipertensi dan Diabetes Mellitus Tipe 2",
			TanggalMasuk:          admissionDay(2024, time.January, 15),
			DokterPenanggungJawab: "dr. Sarah Wijaya, Sp.PD",
			Ruangan:               "VIP 101",
		},
		{
			ID:                    "2",
			Nama:                  "Siti Rahayu",
			NIK:                   "3201012345678902",
			Diagnosa:              "Pneumonia Komunitas",
			TanggalMasuk:          admissionDay(2024, time.January, 16),
			DokterPenanggungJawab: "dr. Ahmad Rahman, Sp.P",
			Ruangan:               "Kelas 1A",
		},
		{
			ID:                    "3",
			Nama:                  "Joko Widodo",
			NIK:                   "3201012345678903",
			Diagnosa:              "Post Operasi Appendektomi",
			TanggalMasuk:          admissionDay(2024, time.January, 14),
			DokterPenanggungJawab: "dr. Lisa Permata, Sp.B",
			Ruangan:               "ICU 02",
		},
		{
			ID:                    "4",
			Nama:                  "Maya Sari",
			NIK:                   "3201012345678904",
			Diagnosa:              "Gastritis Akut",
			TanggalMasuk:          admissionDay(2024, time.January, 17),
			DokterPenanggungJawab: "dr. Rina Hartono, Sp.PD",
			Ruangan:               "Kelas 2B",
		},
		{
			ID:                    "5",
			Nama:                  "Andi Pratama",
			NIK:                   "3201012345678905",
			Diagnosa:              "Fraktur Femur",
			TanggalMasuk:          admissionDay(2024, time.January, 13),
			DokterPenanggungJawab: "dr. Bambang Sutrisno, Sp.OT",
			Ruangan:               "VIP 102",
		},
		{
			ID:                    "6",
			Nama:                  "Dewi Lestari",
			NIK:                   "3201012345678906",
			Diagnosa:              "Stroke Iskemik",
			TanggalMasuk:          admissionDay(2024, time.January, 12),
			DokterPenanggungJawab: "dr. Michael Tan, Sp.S",
			Ruangan:               "ICU 01",
		},
		{
			ID:                    "7",
			Nama:                  "Rahman Ali",
			NIK:                   "3201012345678907",
			Diagnosa:              "Infark Miokard Akut",
			TanggalMasuk:          admissionDay(2024, time.January, 18),
			DokterPenanggungJawab: "dr. Sari Indah, Sp.JP",
			Ruangan:               "ICCU 01",
		},
	}
}
