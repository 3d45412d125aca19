package ats

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoreOutput is the typed result extracted from the provider's JSON reply.
// It is both embedded in the stored analysis and returned to the caller.
type CoreOutput struct {
	RelevanceScore         int      `bson:"relevance_score" json:"relevance_score"`
	Skills                 []string `bson:"skills" json:"skills"`
	TotalYearsOfExperience int      `bson:"total_years_of_experience" json:"total_years_of_experience"`
	ProjectCategories      []string `bson:"project_categories" json:"project_categories"`
}

// Analysis records one provider invocation's result together with the job
// context that produced it and the source resume's identifier.
type Analysis struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	LLMAnalysis    CoreOutput         `bson:"llm_analysis" json:"llm_analysis"`
	JobTitle       string             `bson:"job_title" json:"job_title"`
	JobDescription string             `bson:"job_description" json:"job_description"`
	ResumeID       string             `bson:"resume_id" json:"resume_id"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// AnalyzeRequest is the analyze endpoint's payload.
type AnalyzeRequest struct {
	ResumeID       string `json:"resume_id" binding:"required"`
	JobTitle       string `json:"job_title" binding:"required"`
	JobDescription string `json:"job_description" binding:"required"`
}

// ContextUpdate replaces an analysis's job title and description.
type ContextUpdate struct {
	JobTitle       string `json:"job_title" binding:"required"`
	JobDescription string `json:"job_description" binding:"required"`
}

// HistoryOptions filters the analysis history listing.
type HistoryOptions struct {
	ResumeID string
	JobTitle string
	Skip     int
	Limit    int
}
