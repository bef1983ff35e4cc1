package domain

// DefaultPageSize is the page size applied when the caller does not request
// one (or requests an invalid one).
const DefaultPageSize = 10

// Pagination is an immutable 1-based page descriptor. The zero value is
// valid and normalizes to page 1 with the default page size.
type Pagination struct {
	page      int
	pageSize  int
	unlimited bool
}

// NewPagination builds a Pagination. Values are kept as given and
// normalized by the accessors, so equality is by requested value.
func NewPagination(page, pageSize int) Pagination {
	return Pagination{page: page, pageSize: pageSize}
}

// NewUnlimitedPagination builds a Pagination with no upper bound on the
// page size: all records from the computed offset are returned.
func NewUnlimitedPagination(page int) Pagination {
	return Pagination{page: page, unlimited: true}
}

// Page returns the normalized page number: any page <= 0 becomes 1.
func (p Pagination) Page() int {
	if p.page <= 0 {
		return 1
	}
	return p.page
}

// PageSize returns the normalized page size: any size <= 0 becomes def.
// For unlimited pagination it returns 0, meaning "no limit".
func (p Pagination) PageSize(def int) int {
	if p.unlimited {
		return 0
	}
	if p.pageSize <= 0 {
		return def
	}
	return p.pageSize
}

// Unlimited reports whether no upper bound applies to the page size.
func (p Pagination) Unlimited() bool {
	return p.unlimited
}

// Skip returns the record offset of the page: (page-1) * pageSize. For
// unlimited pagination the offset window is the default page size, so an
// unlimited request for page 1 starts at the first record.
func (p Pagination) Skip() int64 {
	size := p.PageSize(DefaultPageSize)
	if p.unlimited {
		size = DefaultPageSize
	}
	return int64(p.Page()-1) * int64(size)
}
