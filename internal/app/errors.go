package app

import (
	"errors"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/apperr"
)

const (
	msgResumeNotFound     = "Resume not found or does not belong to the specified user"
	msgUnsupportedUpload  = "Unsupported file format. Please upload a PDF or DOCX file."
	msgUnsupportedProcess = "Only PDF and DOCX files are supported"
	msgFileNotInStorage   = "Resume file not found in storage"
	msgNoLocalContent     = "Resume file not found in storage and no local content available"
	msgCouldNotRetrieve   = "Could not retrieve resume file from storage"
	msgInvalidAdminKey    = "Invalid admin key"
)

// internalError wraps err as a 500 whose message is prefix followed by the cause
func internalError(prefix string, err error) error {
	return apperr.Wrap(err, apperr.ErrInternal, prefix+err.Error())
}

// lookupError maps a repository lookup failure to 404 or 500
func lookupError(prefix string, err error) error {
	if errors.Is(err, resumes.ErrNotFound) {
		return apperr.Wrap(err, apperr.ErrNotFound, msgResumeNotFound)
	}
	return internalError(prefix, err)
}
