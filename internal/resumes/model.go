package resumes

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"applywise-backend/internal/shared/optional"
)

// Contact holds a resume's contact information.
type Contact struct {
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	LinkedIn string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub   string `bson:"github,omitempty" json:"github,omitempty"`
}

// Education is one education entry.
type Education struct {
	Institution string   `bson:"institution" json:"institution"`
	Location    string   `bson:"location,omitempty" json:"location,omitempty"`
	Degree      string   `bson:"degree" json:"degree"`
	Major       string   `bson:"major,omitempty" json:"major,omitempty"`
	Minor       string   `bson:"minor,omitempty" json:"minor,omitempty"`
	StartDate   string   `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     string   `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Description []string `bson:"description,omitempty" json:"description,omitempty"`
}

// Experience is one work-experience entry.
type Experience struct {
	Title       string   `bson:"title" json:"title"`
	Company     string   `bson:"company" json:"company"`
	Location    string   `bson:"location,omitempty" json:"location,omitempty"`
	StartDate   string   `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     string   `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Description []string `bson:"description" json:"description"`
}

// Project is one project entry.
type Project struct {
	Name         string   `bson:"name" json:"name"`
	Technologies string   `bson:"technologies,omitempty" json:"technologies,omitempty"`
	DateRange    string   `bson:"date_range,omitempty" json:"date_range,omitempty"`
	Link         string   `bson:"link,omitempty" json:"link,omitempty"`
	Description  []string `bson:"description" json:"description"`
}

// SkillCategory groups skills under a label, e.g. "Languages".
type SkillCategory struct {
	Category string `bson:"category" json:"category"`
	Items    string `bson:"items" json:"items"`
}

// Resume is the stored resume document. At most one exists per user.
type Resume struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     string             `bson:"user_id" json:"user_id" binding:"required"`
	Name       string             `bson:"name" json:"name" binding:"required"`
	Starred    bool               `bson:"starred" json:"starred"`
	Contact    *Contact           `bson:"contact,omitempty" json:"contact,omitempty"`
	Education  []Education        `bson:"education" json:"education"`
	Experience []Experience       `bson:"experience" json:"experience"`
	Projects   []Project          `bson:"projects" json:"projects"`
	Skills     []SkillCategory    `bson:"skills" json:"skills"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// ListItem is the projection returned by the list endpoint.
type ListItem struct {
	ID        primitive.ObjectID `json:"_id"`
	UserID    string             `json:"user_id"`
	Name      string             `json:"name"`
	Starred   bool               `json:"starred"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ListItem projects the document onto the list shape.
func (r Resume) ListItem() ListItem {
	return ListItem{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Starred:   r.Starred,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Page is the paginated list envelope. Total counts all matches regardless
// of page bounds.
type Page struct {
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Items    []ListItem `json:"items"`
}

// Update carries a partial update. Absent keys are left unchanged; keys
// present in the payload overwrite, with explicit null clearing the field.
type Update struct {
	Name       optional.Field[string]          `json:"name"`
	Starred    optional.Field[bool]            `json:"starred"`
	Contact    optional.Field[*Contact]        `json:"contact"`
	Education  optional.Field[[]Education]     `json:"education"`
	Experience optional.Field[[]Experience]    `json:"experience"`
	Projects   optional.Field[[]Project]       `json:"projects"`
	Skills     optional.Field[[]SkillCategory] `json:"skills"`
}

// Apply merges the update into the resume, leaving unset fields untouched.
func (u Update) Apply(r *Resume) {
	if u.Name.Set {
		r.Name = u.Name.Value
	}
	if u.Starred.Set {
		r.Starred = u.Starred.Value
	}
	if u.Contact.Set {
		r.Contact = u.Contact.Value
	}
	if u.Education.Set {
		r.Education = u.Education.Value
	}
	if u.Experience.Set {
		r.Experience = u.Experience.Value
	}
	if u.Projects.Set {
		r.Projects = u.Projects.Value
	}
	if u.Skills.Set {
		r.Skills = u.Skills.Value
	}
}

// Sort fields permitted on the list endpoint.
const (
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortByName      = "name"
)

// ListOptions is the structured filter set for List, compiled to the store's
// query form by each repository.
type ListOptions struct {
	SearchName   string
	Starred      *bool
	MinCreatedAt *time.Time
	MaxCreatedAt *time.Time
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}
