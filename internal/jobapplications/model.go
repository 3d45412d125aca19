package jobapplications

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"applywise-backend/internal/shared/optional"
)

// Status is the fixed application-status enumeration.
type Status string

const (
	StatusApplied       Status = "Applied"
	StatusInterviewing  Status = "Interviewing"
	StatusOfferReceived Status = "Offer Received"
	StatusRejected      Status = "Rejected"
	StatusArchived      Status = "Archived"
)

// Valid reports whether s is one of the enumeration values.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOfferReceived, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// JobApplication is one stored application entry. A user may own many.
type JobApplication struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         string             `bson:"user_id" json:"user_id" binding:"required"`
	JobTitle       string             `bson:"job_title" json:"job_title" binding:"required"`
	CompanyName    string             `bson:"company_name" json:"company_name" binding:"required"`
	CompanyWebsite string             `bson:"company_website,omitempty" json:"company_website,omitempty"`
	JobURL         string             `bson:"job_url,omitempty" json:"job_url,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`

	Status          Status `bson:"status" json:"status"`
	ApplicationDate Date   `bson:"application_date" json:"application_date"`

	LastUpdated    time.Time `bson:"last_updated" json:"last_updated"`
	InterviewDates []Date    `bson:"interview_dates" json:"interview_dates"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`

	AssociatedResumeID   *primitive.ObjectID `bson:"associated_resume_id,omitempty" json:"associated_resume_id,omitempty"`
	AssociatedAnalysisID *primitive.ObjectID `bson:"associated_analysis_id,omitempty" json:"associated_analysis_id,omitempty"`
}

// ListItem is the projection returned by list, create and update responses.
type ListItem struct {
	ID                   primitive.ObjectID  `json:"_id"`
	UserID               string              `json:"user_id"`
	JobTitle             string              `json:"job_title"`
	CompanyName          string              `json:"company_name"`
	Status               Status              `json:"status"`
	ApplicationDate      Date                `json:"application_date"`
	LastUpdated          time.Time           `json:"last_updated"`
	AssociatedResumeID   *primitive.ObjectID `json:"associated_resume_id,omitempty"`
	AssociatedAnalysisID *primitive.ObjectID `json:"associated_analysis_id,omitempty"`
}

// ListItem projects the document onto the list shape.
func (a JobApplication) ListItem() ListItem {
	return ListItem{
		ID:                   a.ID,
		UserID:               a.UserID,
		JobTitle:             a.JobTitle,
		CompanyName:          a.CompanyName,
		Status:               a.Status,
		ApplicationDate:      a.ApplicationDate,
		LastUpdated:          a.LastUpdated,
		AssociatedResumeID:   a.AssociatedResumeID,
		AssociatedAnalysisID: a.AssociatedAnalysisID,
	}
}

// Page is the paginated list envelope.
type Page struct {
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Items    []ListItem `json:"items"`
}

// Update carries a partial update. Absent keys are left unchanged; keys
// present in the payload overwrite, with explicit null clearing the field.
type Update struct {
	JobTitle             optional.Field[string] `json:"job_title"`
	CompanyName          optional.Field[string] `json:"company_name"`
	CompanyWebsite       optional.Field[string] `json:"company_website"`
	JobURL               optional.Field[string] `json:"job_url"`
	Location             optional.Field[string] `json:"location"`
	Status               optional.Field[Status] `json:"status"`
	ApplicationDate      optional.Field[Date]   `json:"application_date"`
	InterviewDates       optional.Field[[]Date] `json:"interview_dates"`
	Notes                optional.Field[string] `json:"notes"`
	AssociatedResumeID   optional.Field[string] `json:"associated_resume_id"`
	AssociatedAnalysisID optional.Field[string] `json:"associated_analysis_id"`
}

// Ref is a resolved associated-document reference: unset leaves the stored
// reference alone, a set nil clears it.
type Ref = optional.Field[*primitive.ObjectID]

// Apply merges the update into the application, leaving unset fields
// untouched. Identifier references are parsed by the service before this
// runs.
func (u Update) Apply(a *JobApplication, resumeRef, analysisRef Ref) {
	if u.JobTitle.Set {
		a.JobTitle = u.JobTitle.Value
	}
	if u.CompanyName.Set {
		a.CompanyName = u.CompanyName.Value
	}
	if u.CompanyWebsite.Set {
		a.CompanyWebsite = u.CompanyWebsite.Value
	}
	if u.JobURL.Set {
		a.JobURL = u.JobURL.Value
	}
	if u.Location.Set {
		a.Location = u.Location.Value
	}
	if u.Status.Set {
		a.Status = u.Status.Value
	}
	if u.ApplicationDate.Set {
		a.ApplicationDate = u.ApplicationDate.Value
	}
	if u.InterviewDates.Set {
		a.InterviewDates = u.InterviewDates.Value
	}
	if u.Notes.Set {
		a.Notes = u.Notes.Value
	}
	if resumeRef.Set {
		a.AssociatedResumeID = resumeRef.Value
	}
	if analysisRef.Set {
		a.AssociatedAnalysisID = analysisRef.Value
	}
}

// Sort fields permitted on the list endpoint.
const (
	SortByApplicationDate = "application_date"
	SortByLastUpdated     = "last_updated"
	SortByJobTitle        = "job_title"
	SortByCompanyName     = "company_name"
)

// ListOptions is the structured filter set for List. HasNotes and
// HasInterviews are tri-state: nil means no filter.
type ListOptions struct {
	UserID             string
	JobTitle           string
	CompanyName        string
	Status             string
	MinApplicationDate *time.Time
	MaxApplicationDate *time.Time
	HasNotes           *bool
	HasInterviews      *bool
	SortBy             string
	SortOrder          string
	Page               int
	PageSize           int
}
