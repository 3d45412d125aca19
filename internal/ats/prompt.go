package ats

import "fmt"

// promptTemplate is the fixed instruction template for the analysis call.
// The placeholders are the resume's JSON dump and the job description.
const promptTemplate = `You are an AI assistant that analyzes resumes for a software engineering job application.
Given a resume and a job description, extract the following details:

1. Identify all skills mentioned in the resume.
2. Calculate the total years of experience.
3. Categorize the projects based on the domain (e.g., "Web Development", "Data Science", "Mobile", "Backend", "Frontend", "Game Development").
4. Rank the resume relevance to the job description on a scale of 0 to 100.

Resume Data:
%s

Job Description:
%s

Provide the output in valid JSON format with this structure:
{
    "relevance_score": "<percentage: int>",
    "skills": ["skill1", "skill2", ......],
    "total_years_of_experience": "<number of years: int>",
    "project_categories": ["category1", "category2", ....]
}`

// BuildPrompt interpolates the resume dump and job description into the
// analysis instruction template.
func BuildPrompt(resumeJSON, jobDescription string) string {
	return fmt.Sprintf(promptTemplate, resumeJSON, jobDescription)
}
