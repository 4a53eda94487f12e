package llm

import (
	"encoding/json"
	"fmt"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
)

const defaultTemperature = 0.3

const (
	resumeToJSONSystem = "You are a resume parser that converts resume text to structured JSON. Always ensure your output is valid JSON format."
	resumeToJSONUser   = "Convert this resume text to JSON format with sections for personal info, summary, experience, education, and skills. Return ONLY valid JSON without explanation or formatting:\n\n%s"

	processResumeSystem = "You are a resume parser that converts resume text to structured JSON."
	processResumeUser   = "Convert this resume text to JSON format with sections for personal info, summary, experience, education, and skills:\n\n%s"

	analyzeJobSystem = "You are a job analysis expert. Always respond with valid JSON containing requirements, responsibilities, and qualifications."
	analyzeJobUser   = "Convert this job posting into JSON format:\n\nTitle: %s\n\nDescription: %s"

	tailorSystem = "You are an expert at tailoring resumes to specific job requirements. Always respond with valid JSON. " +
		"Generate a well-structured resume in JSON format with the following sections: name, email, phone, github, linkedin,summary, skills, experience, education,projects,Certifications. " +
		"Formatting Requirements: Personal Information: Include name, email, phone, github, and linkedin.Summary section:Give a entire summary of the resume like roles,passion,about the user " +
		"Skills Section: Should contain categorized skills as key-value pairs, such as Languages and Technologies & Tools. " +
		"Experience Section: Should be a list of objects with company, location, title, date, and responsibilities. Each role should include a bulleted list of responsibilities and mention relevant technologies used. " +
		"Education Section: Should include institution, degree, major, date, gpa, and coursework. Coursework should be listed as a comma-separated string. " +
		"Projects Section: Each project should include name, description, and technologies. The description should be concise but informative. Technologies should be stored as a list of strings. " +
		"Certications.Ensure the JSON output follows this structure exactly without any extra formatting or missing fields This keeps everything compact while retaining all essential details."
	tailorUser = "Tailor this resume to the job requirements and return a valid JSON object:\n\nResume: %s\n\nJob Details: %s"
)

func resumeToJSONRequest(text string) llm.CompletionRequest {
	return llm.CompletionRequest{
		System:      resumeToJSONSystem,
		User:        fmt.Sprintf(resumeToJSONUser, text),
		MaxTokens:   2000,
		Temperature: defaultTemperature,
	}
}

func processResumeRequest(text string) llm.CompletionRequest {
	return llm.CompletionRequest{
		System:      processResumeSystem,
		User:        fmt.Sprintf(processResumeUser, text),
		MaxTokens:   2000,
		Temperature: defaultTemperature,
	}
}

func analyzeJobRequest(title, description string) llm.CompletionRequest {
	return llm.CompletionRequest{
		System:      analyzeJobSystem,
		User:        fmt.Sprintf(analyzeJobUser, title, description),
		MaxTokens:   1000,
		Temperature: defaultTemperature,
	}
}

func tailorRequest(resume, job map[string]any) (llm.CompletionRequest, error) {
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return llm.CompletionRequest{}, fmt.Errorf("failed to encode resume: %w", err)
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return llm.CompletionRequest{}, fmt.Errorf("failed to encode job: %w", err)
	}
	return llm.CompletionRequest{
		System:      tailorSystem,
		User:        fmt.Sprintf(tailorUser, resumeJSON, jobJSON),
		MaxTokens:   2000,
		Temperature: defaultTemperature,
	}, nil
}
