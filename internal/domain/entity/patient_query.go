package entity

// RoomFilterAll disables the room filter.
const RoomFilterAll = "all"

// DefaultPageSize is used when a query carries no positive page size.
const DefaultPageSize = 10

type SortField string

const (
	SortByNama                  SortField = "nama"
	SortByTanggalMasuk          SortField = "tanggal_masuk"
	SortByRuangan               SortField = "ruangan"
	SortByDokterPenanggungJawab SortField = "dokter_penanggung_jawab"
)

// ParseSortField accepts the snake_case field names as well as the camelCase
// names used by browser clients.
func ParseSortField(s string) (SortField, bool) {
	switch s {
	case "nama":
		return SortByNama, true
	case "tanggal_masuk", "tanggalMasuk":
		return SortByTanggalMasuk, true
	case "ruangan":
		return SortByRuangan, true
	case "dokter_penanggung_jawab", "dokterPenanggungJawab":
		return SortByDokterPenanggungJawab, true
	}
	return "", false
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, bool) {
	switch SortDirection(s) {
	case SortAsc, SortDesc:
		return SortDirection(s), true
	}
	return "", false
}

// PatientQuery is the domain-level view over the registry.
// Used by the query pipeline to avoid coupling with delivery DTOs.
type PatientQuery struct {
	Search        string
	Room          string // RoomFilterAll or empty disables the filter
	SortField     SortField
	SortDirection SortDirection
	Page          int // 1-based
	PageSize      int
}

// PatientPage is one page of a query result.
type PatientPage struct {
	Items      []Patient
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}
