package model

import (
	"time"
)

// SalaryNotAvailable is the sentinel stored when a posting omits a salary.
const SalaryNotAvailable = "NA"

type Posting struct {
	ID              int64      `db:"id" json:"id"`
	Company         string     `db:"company" json:"company"`
	Designation     string     `db:"designation" json:"designation"`
	Description     string     `db:"description" json:"description"`
	ImagePath       string     `db:"image_path" json:"imagePath"`
	ApplicationLink string     `db:"application_link" json:"applicationLink"`
	Salary          string     `db:"salary" json:"salary"`
	Batch           string     `db:"batch" json:"batch"`
	PostedDate      time.Time  `db:"posted_date" json:"postedDate"`
	InactiveDate    *time.Time `db:"inactive_date" json:"inactiveDate"`
}

// PostingParams carries the caller-supplied fields for create and update.
// An empty Salary and a nil InactiveDate mean "not supplied" and are
// defaulted by the posting service.
type PostingParams struct {
	Company         string
	Designation     string
	Description     string
	ImagePath       string
	ApplicationLink string
	Salary          string
	Batch           string
	InactiveDate    *time.Time
}

// PublicPosting is the projection returned by the public listing endpoint.
type PublicPosting struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Designation string `json:"designation"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Application string `json:"application"`
}

// DateOnly strips the time-of-day portion, keeping the location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ActiveOn reports whether the posting is visible on the given day.
// A posting with no inactive date never expires; one whose inactive
// date is today is still active.
func (p *Posting) ActiveOn(today time.Time) bool {
	if p.InactiveDate == nil {
		return true
	}
	return !DateOnly(*p.InactiveDate).Before(DateOnly(today))
}

// Public returns the publicly visible projection of the posting.
func (p *Posting) Public() PublicPosting {
	return PublicPosting{
		ID:          p.ID,
		Company:     p.Company,
		Designation: p.Designation,
		Description: p.Description,
		Image:       p.ImagePath,
		Application: p.ApplicationLink,
	}
}
