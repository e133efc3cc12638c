package candidate

import (
	"fmt"
	"strings"
)

// Candidate is one applicant record from an uploaded batch.
// Only Skills, TotalExperience, RelevantExperience, Profile, CurrentDesignation
// and InterestedRole take part in scoring; everything else is carried for display.
type Candidate struct {
	ID                   string   `json:"id,omitempty"`
	CandidateID          int64    `json:"candidateId"`
	FirstName            string   `json:"firstName"`
	MiddleName           string   `json:"middleName,omitempty"`
	LastName             string   `json:"lastName"`
	DateOfBirth          string   `json:"dateOfBirth,omitempty"`
	Email                string   `json:"email,omitempty"`
	PhoneNumber          string   `json:"phoneNumber,omitempty"`
	AlternatePhoneNumber string   `json:"alternatePhoneNumber,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	Skills               string   `json:"skills"`
	CurrentCompany       string   `json:"currentCompany,omitempty"`
	Profile              string   `json:"profile,omitempty"`
	CurrentDesignation   string   `json:"currentDesignation,omitempty"`
	TotalExperience      string   `json:"totalExperience"`
	RelevantExperience   string   `json:"relevantExperience,omitempty"`
	CurrentLocation      string   `json:"currentLocation,omitempty"`
	PreferredLocation    []string `json:"preferredLocation,omitempty"`
	CurrentCTC           string   `json:"currentCTC,omitempty"`
	ExpectedCTC          string   `json:"expectedCTC,omitempty"`
	NoticePeriod         string   `json:"noticePeriod,omitempty"`
	LastWorkingDay       string   `json:"lastWorkingDay,omitempty"`
	HoldingAnyOffer      string   `json:"holdingAnyOffer,omitempty"`
	InterestedRole       string   `json:"interestedRole,omitempty"`
	CreatedAt            string   `json:"createdAt,omitempty"`
	UpdatedAt            string   `json:"updatedAt,omitempty"`

	// Raw is the record exactly as uploaded.
	Raw map[string]any `json:"-"`
	// Malformed holds the decoding error of a record whose identity is intact
	// but whose scoring fields are not text or could not be read.
	Malformed error `json:"-"`
}

// Name returns the display name used in rankings.
func (c Candidate) Name() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

// Batch is the set of candidates submitted together with one job description.
type Batch struct {
	Resumes        []Candidate
	JobDescription string
}

func (b *Batch) Len() int {
	return len(b.Resumes)
}

// Validate checks that the batch can be ranked.
func (b *Batch) Validate() error {
	if b.Len() == 0 {
		return ErrEmptyBatch
	}
	if strings.TrimSpace(b.JobDescription) == "" {
		return ErrNoJobDescription
	}
	return nil
}
