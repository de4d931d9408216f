package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type admissionForm struct {
	Nama                  string `json:"nama" validate:"min=2,max=100"`
	NIK                   string `json:"nik" validate:"len=16,digits"`
	Diagnosa              string `json:"diagnosa" validate:"min=5"`
	TanggalMasuk          string `json:"tanggal_masuk" validate:"required,admission_date,admission_window"`
	DokterPenanggungJawab string `json:"dokter_penanggung_jawab" validate:"min=2"`
	Ruangan               string `json:"ruangan" validate:"min=1"`
}

var labels = map[string]string{
	"nama":                    "Nama",
	"nik":                     "NIK",
	"diagnosa":                "Diagnosa",
	"tanggal_masuk":           "Tanggal masuk",
	"dokter_penanggung_jawab": "Nama dokter",
	"ruangan":                 "Ruangan",
}

func validForm() admissionForm {
	return admissionForm{
		Nama:                  "Budi Santoso",
		NIK:                   "3201012345678901",
		Diagnosa:              "Pneumonia Komunitas",
		TanggalMasuk:          "2024-01-15",
		DokterPenanggungJawab: "dr. Sarah Wijaya, Sp.PD",
		Ruangan:               "VIP 101",
	}
}

func asFieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(FieldErrors)
	require.True(t, ok, "expected FieldErrors, got %T", err)
	return fe
}

func fields(fe FieldErrors) []string {
	out := make([]string, len(fe))
	for i, e := range fe {
		out[i] = e.Field
	}
	return out
}

func TestValidate_ValidForm(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))
	form := validForm()
	assert.NoError(t, cv.Validate(&form))
}

func TestValidate_AllFieldsInvalidInDeclarationOrder(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))

	fe := asFieldErrors(t, cv.Validate(&admissionForm{}))

	assert.Equal(t, []string{
		"nama", "nik", "diagnosa", "tanggal_masuk", "dokter_penanggung_jawab", "ruangan",
	}, fields(fe))
	assert.Equal(t, "Nama minimal 2 karakter", fe[0].Message)
	assert.Equal(t, "NIK harus terdiri dari 16 digit", fe[1].Message)
	assert.Equal(t, "Diagnosa minimal 5 karakter", fe[2].Message)
	assert.Equal(t, "Tanggal masuk harus diisi", fe[3].Message)
	assert.Equal(t, "Nama dokter minimal 2 karakter", fe[4].Message)
	assert.Equal(t, "Ruangan harus diisi", fe[5].Message)
}

func TestValidate_FifteenDigitNIK(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))
	form := validForm()
	form.NIK = "320101234567890"

	fe := asFieldErrors(t, cv.Validate(&form))

	require.Len(t, fe, 1)
	assert.Equal(t, "nik", fe[0].Field)
	assert.Equal(t, "len", fe[0].Tag)
}

func TestValidate_NIKWithNonDigits(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))

	cases := []string{"32010123456789AB", "-320101234567890", "3201 12345678901", "٣٢٠١٠١٢٣٤٥٦٧٨٩٠١"}
	for _, nik := range cases {
		t.Run(nik, func(t *testing.T) {
			form := validForm()
			form.NIK = nik

			fe := asFieldErrors(t, cv.Validate(&form))
			require.Len(t, fe, 1)
			assert.Equal(t, "nik", fe[0].Field)
		})
	}
}

func TestValidate_NIKDigitsMessage(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))
	form := validForm()
	form.NIK = "32010123456789AB"

	fe := asFieldErrors(t, cv.Validate(&form))
	assert.Equal(t, TagDigits, fe[0].Tag)
	assert.Equal(t, "NIK hanya boleh berisi angka", fe[0].Message)
}

func TestValidate_NIKReportsEveryViolatedRule(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))
	form := validForm()
	form.NIK = "abc"

	fe := asFieldErrors(t, cv.Validate(&form))

	require.Len(t, fe, 2)
	assert.Equal(t, FieldError{Field: "nik", Tag: "len", Message: "NIK harus terdiri dari 16 digit"}, fe[0])
	assert.Equal(t, FieldError{Field: "nik", Tag: TagDigits, Message: "NIK hanya boleh berisi angka"}, fe[1])
}

func TestValidate_ExtraRulesKeepFieldOrder(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))
	form := validForm()
	form.Nama = "A"
	form.NIK = "12a"
	form.Diagnosa = "flu"

	fe := asFieldErrors(t, cv.Validate(&form))

	assert.Equal(t, []string{"nama", "nik", "nik", "diagnosa"}, fields(fe))
}

func TestValidate_NameBounds(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))

	form := validForm()
	form.Nama = "Al"
	assert.NoError(t, cv.Validate(&form))

	form.Nama = strings.Repeat("a", 100)
	assert.NoError(t, cv.Validate(&form))

	form.Nama = strings.Repeat("a", 101)
	fe := asFieldErrors(t, cv.Validate(&form))
	assert.Equal(t, "Nama maksimal 100 karakter", fe[0].Message)

	form.Nama = "A"
	fe = asFieldErrors(t, cv.Validate(&form))
	assert.Equal(t, "min", fe[0].Tag)
}

func TestValidate_AdmissionDateFormats(t *testing.T) {
	cv := NewValidator()

	for _, value := range []string{"2024-01-15", "2024-01-15T08:30:00+07:00", "2024-01-15T01:30:00Z"} {
		form := validForm()
		form.TanggalMasuk = value
		assert.NoError(t, cv.Validate(&form), value)
	}

	form := validForm()
	form.TanggalMasuk = "15/01/2024"
	fe := asFieldErrors(t, cv.Validate(&form))
	assert.Equal(t, TagAdmissionDate, fe[0].Tag)
}

func TestValidate_AdmissionWindowOnlyWhenStrict(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC) }

	future := validForm()
	future.TanggalMasuk = "2024-02-01"
	ancient := validForm()
	ancient.TanggalMasuk = "1899-12-31"
	today := validForm()
	today.TanggalMasuk = "2024-01-20"

	lenient := NewValidator(WithClock(now))
	assert.NoError(t, lenient.Validate(&future))
	assert.NoError(t, lenient.Validate(&ancient))

	strict := NewValidator(WithClock(now), WithStrictAdmissionDate(true), WithFieldLabels(labels))
	assert.NoError(t, strict.Validate(&today))

	fe := asFieldErrors(t, strict.Validate(&future))
	assert.Equal(t, TagAdmissionWindow, fe[0].Tag)
	assert.Equal(t, "Tanggal masuk harus antara 1900-01-01 dan hari ini", fe[0].Message)

	fe = asFieldErrors(t, strict.Validate(&ancient))
	assert.Equal(t, TagAdmissionWindow, fe[0].Tag)
}

func TestValidate_IsDeterministic(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))
	form := admissionForm{Nama: "X", NIK: "123"}

	first := cv.Validate(&form)
	second := cv.Validate(&form)
	assert.Equal(t, first, second)
}

func TestUniqueViolation(t *testing.T) {
	cv := NewValidator(WithFieldLabels(labels))

	fe := cv.UniqueViolation("nik")

	assert.True(t, fe.Has("nik", TagUnique))
	assert.False(t, fe.Has("nama", ""))
	assert.Equal(t, "NIK sudah terdaftar", fe[0].Message)
	assert.Contains(t, fe.Error(), "nik: NIK sudah terdaftar")
}

func TestParseAdmissionDate(t *testing.T) {
	got, err := ParseAdmissionDate(" 2024-01-15 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseAdmissionDate("kemarin")
	assert.Error(t, err)
}

func TestValidate_AdmissionWindowUsesClockZone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	now := func() time.Time { return time.Date(2024, 1, 21, 0, 30, 0, 0, jakarta) }
	cv := NewValidator(WithClock(now), WithStrictAdmissionDate(true))

	cases := map[string]bool{
		"2024-01-21":                true,
		"2024-01-21T23:50:00+07:00": true,
		"2024-01-22":                false,
		"2024-01-22T03:00:00+07:00": false,
		"1900-01-01":                true,
	}
	for value, ok := range cases {
		form := validForm()
		form.TanggalMasuk = value

		err := cv.Validate(&form)
		if ok {
			assert.NoError(t, err, value)
			continue
		}
		fe := asFieldErrors(t, err)
		assert.True(t, fe.Has("tanggal_masuk", TagAdmissionWindow), value)
	}
}
