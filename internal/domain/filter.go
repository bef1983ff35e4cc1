package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

var birthYearRangePattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// BirthYearRange is an inclusive range of birth years. Either bound may be
// zero, meaning that side of the range is open.
type BirthYearRange struct {
	Start int
	End   int
}

// ParseBirthYearRange parses the wire format "YYYY-YYYY" (e.g. "1992-2000").
func ParseBirthYearRange(s string) (BirthYearRange, error) {
	m := birthYearRangePattern.FindStringSubmatch(s)
	if m == nil {
		return BirthYearRange{}, fmt.Errorf("birth year range must be in the format YYYY-YYYY, got %q", s)
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return BirthYearRange{Start: start, End: end}, nil
}

// LowerDate returns the inclusive lower date bound ("{start}-01-01") and
// whether the start year is set.
func (r BirthYearRange) LowerDate() (string, bool) {
	if r.Start <= 0 {
		return "", false
	}
	return fmt.Sprintf("%04d-01-01", r.Start), true
}

// UpperDate returns the inclusive upper date bound ("{end}-12-31") and
// whether the end year is set.
func (r BirthYearRange) UpperDate() (string, bool) {
	if r.End <= 0 {
		return "", false
	}
	return fmt.Sprintf("%04d-12-31", r.End), true
}

// Empty reports whether neither bound is set. An empty range contributes no
// date predicate at all.
func (r BirthYearRange) Empty() bool {
	return r.Start <= 0 && r.End <= 0
}

// Filter is an immutable predicate description over the player catalog.
// Every field is optional; the update status defaults to UPDATED so that
// documents pending manual correction stay invisible to normal reads.
type Filter struct {
	position     *string
	isActive     *bool
	clubID       *string
	birthYears   *BirthYearRange
	updateStatus *UpdateStatus
}

// FilterOption configures a Filter at construction time.
type FilterOption func(*Filter)

// WithPosition filters on an exact position match.
func WithPosition(position string) FilterOption {
	return func(f *Filter) {
		f.position = &position
	}
}

// WithActive filters on the active flag.
func WithActive(isActive bool) FilterOption {
	return func(f *Filter) {
		f.isActive = &isActive
	}
}

// WithClubID filters on an exact club id match.
func WithClubID(clubID string) FilterOption {
	return func(f *Filter) {
		f.clubID = &clubID
	}
}

// WithBirthYearRange filters on an inclusive birth year range. An empty
// range is ignored.
func WithBirthYearRange(r BirthYearRange) FilterOption {
	return func(f *Filter) {
		if !r.Empty() {
			f.birthYears = &r
		}
	}
}

// WithUpdateStatus overrides the default UPDATED trust status predicate.
func WithUpdateStatus(status UpdateStatus) FilterOption {
	return func(f *Filter) {
		f.updateStatus = &status
	}
}

// NewFilter builds a Filter from the given options. A Filter with no
// options matches every document with update status UPDATED.
func NewFilter(opts ...FilterOption) *Filter {
	f := &Filter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Position returns the position predicate, if set.
func (f *Filter) Position() (string, bool) {
	if f == nil || f.position == nil {
		return "", false
	}
	return *f.position, true
}

// IsActive returns the active flag predicate, if set.
func (f *Filter) IsActive() (bool, bool) {
	if f == nil || f.isActive == nil {
		return false, false
	}
	return *f.isActive, true
}

// ClubID returns the club id predicate, if set.
func (f *Filter) ClubID() (string, bool) {
	if f == nil || f.clubID == nil {
		return "", false
	}
	return *f.clubID, true
}

// BirthYears returns the birth year range predicate, if set.
func (f *Filter) BirthYears() (BirthYearRange, bool) {
	if f == nil || f.birthYears == nil {
		return BirthYearRange{}, false
	}
	return *f.birthYears, true
}

// UpdateStatus returns the trust status predicate, defaulting to UPDATED
// when the caller did not override it.
func (f *Filter) UpdateStatus() UpdateStatus {
	if f == nil || f.updateStatus == nil {
		return UpdateStatusUpdated
	}
	return *f.updateStatus
}
