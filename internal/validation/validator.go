package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/JNHNG0205/ai-content-workflow/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateDraft validates writer-editable content fields
func ValidateDraft(in models.DraftInput) []models.ValidationError {
	var errors []models.ValidationError

	// Validate title
	if strings.TrimSpace(in.Title) == "" {
		errors = append(errors, models.ValidationError{Field: "title", Message: "title is required"})
	} else if n := utf8.RuneCountInString(in.Title); n > models.MaxTitleLength {
		errors = append(errors, tooLong("title", models.MaxTitleLength, n))
	}

	// Validate body
	if strings.TrimSpace(in.Body) == "" {
		errors = append(errors, models.ValidationError{Field: "body", Message: "body is required"})
	} else if n := utf8.RuneCountInString(in.Body); n > models.MaxBodyLength {
		errors = append(errors, tooLong("body", models.MaxBodyLength, n))
	}

	return errors
}

// ValidateComment validates an optional rejection comment
func ValidateComment(comment string) []models.ValidationError {
	if n := utf8.RuneCountInString(comment); n > models.MaxCommentLength {
		return []models.ValidationError{tooLong("comment", models.MaxCommentLength, n)}
	}
	return nil
}

// ValidatePrompt validates a text generation prompt
func ValidatePrompt(prompt string) []models.ValidationError {
	if strings.TrimSpace(prompt) == "" {
		return []models.ValidationError{{Field: "prompt", Message: "prompt is required"}}
	}
	if n := utf8.RuneCountInString(prompt); n > models.MaxPromptLength {
		return []models.ValidationError{tooLong("prompt", models.MaxPromptLength, n)}
	}
	return nil
}

// ValidateRefine validates the text to refine and its optional instruction
func ValidateRefine(content, instruction string) []models.ValidationError {
	var errors []models.ValidationError

	if strings.TrimSpace(content) == "" {
		errors = append(errors, models.ValidationError{Field: "content", Message: "content is required"})
	} else if n := utf8.RuneCountInString(content); n > models.MaxBodyLength {
		errors = append(errors, tooLong("content", models.MaxBodyLength, n))
	}

	if n := utf8.RuneCountInString(instruction); n > models.MaxInstructionLength {
		errors = append(errors, tooLong("instruction", models.MaxInstructionLength, n))
	}

	return errors
}

// ValidateRegistration validates a new account request. An empty role is
// allowed and means WRITER.
func ValidateRegistration(req models.RegisterRequest) []models.ValidationError {
	errors := ValidateCredentials(req.Email, req.Password)

	if req.Password != "" && utf8.RuneCountInString(req.Password) < models.MinPasswordLength {
		errors = append(errors, models.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", models.MinPasswordLength),
		})
	}

	// Validate role
	if req.Role != "" && !models.SelfServiceRoles[req.Role] {
		errors = append(errors, models.ValidationError{
			Field:   "role",
			Message: "invalid role, must be one of: WRITER, REVIEWER",
			Value:   req.Role,
		})
	}

	return errors
}

// ValidateCredentials validates the email and password presence for login
func ValidateCredentials(email, password string) []models.ValidationError {
	var errors []models.ValidationError

	// Validate email
	if strings.TrimSpace(email) == "" {
		errors = append(errors, models.ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(strings.TrimSpace(email)) {
		errors = append(errors, models.ValidationError{Field: "email", Message: "invalid email format", Value: email})
	}

	if password == "" {
		errors = append(errors, models.ValidationError{Field: "password", Message: "password is required"})
	}

	return errors
}

func tooLong(field string, max, got int) models.ValidationError {
	return models.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s must be at most %d characters", field, max),
		Value:   got,
	}
}
