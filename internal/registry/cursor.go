package registry

import "inpatient-registration/internal/domain/entity"

// ListCursor tracks the list view state between queries. Changing the search
// text or room filter returns to the first page; sorting does not.
type ListCursor struct {
	query entity.PatientQuery
}

// NewListCursor starts on page 1, all rooms, newest admission first.
func NewListCursor(pageSize int) *ListCursor {
	if pageSize <= 0 {
		pageSize = entity.DefaultPageSize
	}
	return &ListCursor{
		query: entity.PatientQuery{
			Room:          entity.RoomFilterAll,
			SortField:     entity.SortByTanggalMasuk,
			SortDirection: entity.SortDesc,
			Page:          1,
			PageSize:      pageSize,
		},
	}
}

func (c *ListCursor) Query() entity.PatientQuery {
	return c.query
}

func (c *ListCursor) SetSearch(search string) {
	c.query.Search = search
	c.query.Page = 1
}

func (c *ListCursor) ClearSearch() {
	c.SetSearch("")
}

func (c *ListCursor) SetRoom(room string) {
	if room == "" {
		room = entity.RoomFilterAll
	}
	c.query.Room = room
	c.query.Page = 1
}

// ToggleSort flips the direction when field is already active, otherwise
// switches to field ascending.
func (c *ListCursor) ToggleSort(field entity.SortField) {
	if c.query.SortField == field {
		if c.query.SortDirection == entity.SortAsc {
			c.query.SortDirection = entity.SortDesc
		} else {
			c.query.SortDirection = entity.SortAsc
		}
		return
	}
	c.query.SortField = field
	c.query.SortDirection = entity.SortAsc
}

func (c *ListCursor) SortBy(field entity.SortField, dir entity.SortDirection) {
	c.query.SortField = field
	c.query.SortDirection = dir
}

// GoTo moves to page, clamped to [1, totalPages].
func (c *ListCursor) GoTo(page, totalPages int) {
	c.query.Page = max(1, min(page, totalPages))
}

// Next advances one page unless already on the last one. It reports whether
// the page changed.
func (c *ListCursor) Next(totalPages int) bool {
	if c.query.Page >= totalPages {
		return false
	}
	c.query.Page++
	return true
}

func (c *ListCursor) Prev() bool {
	if c.query.Page <= 1 {
		return false
	}
	c.query.Page--
	return true
}
