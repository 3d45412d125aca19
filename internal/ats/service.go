package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"applywise-backend/internal/llm"
	"applywise-backend/internal/resumes"
)

// ResumeSource loads resumes for analysis. resumes.Repo satisfies it.
type ResumeSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (resumes.Resume, error)
}

// Service contains the analysis call chain and history operations.
type Service struct {
	Repo    Repo
	Resumes ResumeSource
	LLM     llm.Client
}

// Analyze runs the single linear analysis chain: load the resume, render the
// prompt, call the provider, parse and validate its JSON, persist the result
// and return the LLM-derived subset. Nothing is persisted before the final
// step; there is no retry or caching.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (CoreOutput, error) {
	if s.LLM == nil {
		return CoreOutput{}, ErrNoProvider
	}

	resumeID, err := primitive.ObjectIDFromHex(req.ResumeID)
	if err != nil {
		return CoreOutput{}, fmt.Errorf("%w: %s", resumes.ErrInvalidID, req.ResumeID)
	}
	resume, err := s.Resumes.GetByID(ctx, resumeID)
	if err != nil {
		return CoreOutput{}, err
	}

	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return CoreOutput{}, fmt.Errorf("serialize resume: %w", err)
	}

	raw, err := s.LLM.Complete(ctx, BuildPrompt(string(resumeJSON), req.JobDescription))
	if err != nil {
		return CoreOutput{}, err
	}

	output, err := parseCoreOutput(raw)
	if err != nil {
		return CoreOutput{}, err
	}

	analysis := Analysis{
		ID:             primitive.NewObjectID(),
		LLMAnalysis:    output,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		ResumeID:       req.ResumeID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, analysis); err != nil {
		return CoreOutput{}, err
	}
	return output, nil
}

// History lists stored analyses, optionally filtered by resume ID and job
// title, with skip/limit pagination.
func (s *Service) History(ctx context.Context, opts HistoryOptions) ([]Analysis, error) {
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	return s.Repo.List(ctx, opts)
}

// UpdateContext replaces an analysis's job title and description. The
// LLM-derived fields are immutable.
func (s *Service) UpdateContext(ctx context.Context, id string, u ContextUpdate) (Analysis, error) {
	oid, err := parseID(id)
	if err != nil {
		return Analysis{}, err
	}
	return s.Repo.UpdateContext(ctx, oid, u.JobTitle, u.JobDescription)
}

// Delete removes an analysis by its hex ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.Repo.Delete(ctx, oid)
}

type corePayload struct {
	RelevanceScore         *int      `json:"relevance_score"`
	Skills                 *[]string `json:"skills"`
	TotalYearsOfExperience *int      `json:"total_years_of_experience"`
	ProjectCategories      *[]string `json:"project_categories"`
}

// parseCoreOutput parses the provider's reply. Text that is not JSON at all
// is an upstream failure carrying the raw reply; JSON missing or mistyping a
// field is a validation failure.
func parseCoreOutput(raw string) (CoreOutput, error) {
	var payload corePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return CoreOutput{}, fmt.Errorf("%w: field %q has wrong type", ErrValidation, typeErr.Field)
		}
		return CoreOutput{}, fmt.Errorf("%w: %s", ErrInvalidResponse, raw)
	}

	switch {
	case payload.RelevanceScore == nil:
		return CoreOutput{}, fmt.Errorf("%w: missing relevance_score", ErrValidation)
	case payload.Skills == nil:
		return CoreOutput{}, fmt.Errorf("%w: missing skills", ErrValidation)
	case payload.TotalYearsOfExperience == nil:
		return CoreOutput{}, fmt.Errorf("%w: missing total_years_of_experience", ErrValidation)
	case payload.ProjectCategories == nil:
		return CoreOutput{}, fmt.Errorf("%w: missing project_categories", ErrValidation)
	}

	return CoreOutput{
		RelevanceScore:         *payload.RelevanceScore,
		Skills:                 *payload.Skills,
		TotalYearsOfExperience: *payload.TotalYearsOfExperience,
		ProjectCategories:      *payload.ProjectCategories,
	}, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}
	return oid, nil
}
