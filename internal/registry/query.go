package registry

import (
	"slices"
	"strings"

	"inpatient-registration/internal/domain/entity"

	"golang.org/x/text/cases"
)

// Query runs filter, sort and paginate over records. records is not modified.
func Query(records []entity.Patient, q entity.PatientQuery) entity.PatientPage {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = entity.DefaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	filtered := Filter(records, q.Search, q.Room)
	sorted := Sort(filtered, q.SortField, q.SortDirection)
	items, totalPages := Paginate(sorted, page, pageSize)

	return entity.PatientPage{
		Items:      items,
		TotalCount: len(sorted),
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}

// Filter keeps records whose name contains search (case-insensitive) or
// whose NIK contains search verbatim, restricted to room unless room is
// empty or entity.RoomFilterAll. Relative order is preserved.
func Filter(records []entity.Patient, search, room string) []entity.Patient {
	folder := cases.Fold()
	needle := folder.String(search)
	anyRoom := room == "" || room == entity.RoomFilterAll

	out := make([]entity.Patient, 0, len(records))
	for _, p := range records {
		if !anyRoom && p.Ruangan != room {
			continue
		}
		if search != "" && !strings.Contains(folder.String(p.Nama), needle) && !strings.Contains(p.NIK, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

type sortItem struct {
	key     string
	patient entity.Patient
}

// Sort returns a stably sorted copy. Equal keys keep their input order in
// both directions. An unknown or empty field leaves the order unchanged.
func Sort(records []entity.Patient, field entity.SortField, dir entity.SortDirection) []entity.Patient {
	out := slices.Clone(records)
	if out == nil {
		out = []entity.Patient{}
	}

	var textKey func(p entity.Patient) string
	switch field {
	case entity.SortByNama:
		textKey = func(p entity.Patient) string { return p.Nama }
	case entity.SortByRuangan:
		textKey = func(p entity.Patient) string { return p.Ruangan }
	case entity.SortByDokterPenanggungJawab:
		textKey = func(p entity.Patient) string { return p.DokterPenanggungJawab }
	case entity.SortByTanggalMasuk:
		slices.SortStableFunc(out, func(a, b entity.Patient) int {
			return directed(a.TanggalMasuk.Compare(b.TanggalMasuk), dir)
		})
		return out
	default:
		return out
	}

	folder := cases.Fold()
	items := make([]sortItem, len(out))
	for i, p := range out {
		items[i] = sortItem{key: folder.String(textKey(p)), patient: p}
	}

	slices.SortStableFunc(items, func(a, b sortItem) int {
		return directed(strings.Compare(a.key, b.key), dir)
	})

	for i := range items {
		out[i] = items[i].patient
	}
	return out
}

func directed(c int, dir entity.SortDirection) int {
	if dir == entity.SortDesc {
		return -c
	}
	return c
}

// Paginate returns the 1-based page of records and the total page count.
// Pages past the end are empty; page is never clamped to the last page.
func Paginate(records []entity.Patient, page, pageSize int) ([]entity.Patient, int) {
	if pageSize <= 0 {
		pageSize = entity.DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	totalPages := (len(records) + pageSize - 1) / pageSize
	if page > totalPages {
		return []entity.Patient{}, totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(records))

	return slices.Clone(records[start:end]), totalPages
}

// DistinctRooms lists every room in records once, ascending.
func DistinctRooms(records []entity.Patient) []string {
	seen := make(map[string]struct{}, len(records))
	rooms := make([]string, 0)
	for _, p := range records {
		if _, ok := seen[p.Ruangan]; ok {
			continue
		}
		seen[p.Ruangan] = struct{}{}
		rooms = append(rooms, p.Ruangan)
	}
	slices.Sort(rooms)
	return rooms
}
