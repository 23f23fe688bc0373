package validation

import (
	"strings"
	"testing"

	"github.com/JNHNG0205/ai-content-workflow/internal/models"
)

func fields(errs []models.ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func checkErrors(t *testing.T, errs []models.ValidationError, wantErrors int, wantFields []string) {
	t.Helper()
	if len(errs) != wantErrors {
		t.Errorf("Expected %d errors, got %d: %v", wantErrors, len(errs), errs)
		return
	}
	got := fields(errs)
	for i, f := range wantFields {
		if got[i] != f {
			t.Errorf("Expected error on field %q, got %q", f, got[i])
		}
	}
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name       string
		input      models.DraftInput
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid draft",
			input:      models.DraftInput{Title: "Launch day", Body: "We shipped it."},
			wantErrors: 0,
		},
		{
			name:       "missing title",
			input:      models.DraftInput{Body: "We shipped it."},
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "whitespace only body",
			input:      models.DraftInput{Title: "Launch day", Body: "   \n\t"},
			wantErrors: 1,
			wantFields: []string{"body"},
		},
		{
			name:       "both missing",
			input:      models.DraftInput{},
			wantErrors: 2,
			wantFields: []string{"title", "body"},
		},
		{
			name:       "title too long",
			input:      models.DraftInput{Title: strings.Repeat("a", models.MaxTitleLength+1), Body: "ok"},
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "title at limit counts runes",
			input:      models.DraftInput{Title: strings.Repeat("é", models.MaxTitleLength), Body: "ok"},
			wantErrors: 0,
		},
		{
			name:       "body too long",
			input:      models.DraftInput{Title: "t", Body: strings.Repeat("b", models.MaxBodyLength+1)},
			wantErrors: 1,
			wantFields: []string{"body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErrors(t, ValidateDraft(tt.input), tt.wantErrors, tt.wantFields)
		})
	}
}

func TestValidateComment(t *testing.T) {
	if errs := ValidateComment(""); len(errs) != 0 {
		t.Errorf("Empty comment should be valid, got %v", errs)
	}
	if errs := ValidateComment("Please cite sources."); len(errs) != 0 {
		t.Errorf("Short comment should be valid, got %v", errs)
	}
	checkErrors(t, ValidateComment(strings.Repeat("c", models.MaxCommentLength+1)), 1, []string{"comment"})
}

func TestValidatePrompt(t *testing.T) {
	checkErrors(t, ValidatePrompt("Write about our new coffee blend"), 0, nil)
	checkErrors(t, ValidatePrompt(""), 1, []string{"prompt"})
	checkErrors(t, ValidatePrompt("  "), 1, []string{"prompt"})
	checkErrors(t, ValidatePrompt(strings.Repeat("p", models.MaxPromptLength+1)), 1, []string{"prompt"})
}

func TestValidateRefine(t *testing.T) {
	checkErrors(t, ValidateRefine("Some post text", ""), 0, nil)
	checkErrors(t, ValidateRefine("Some post text", "make it punchier"), 0, nil)
	checkErrors(t, ValidateRefine("", "make it punchier"), 1, []string{"content"})
	checkErrors(t, ValidateRefine("text", strings.Repeat("i", models.MaxInstructionLength+1)), 1, []string{"instruction"})
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name       string
		req        models.RegisterRequest
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid writer default role",
			req:        models.RegisterRequest{Email: "writer@example.com", Password: "longenough"},
			wantErrors: 0,
		},
		{
			name:       "valid reviewer",
			req:        models.RegisterRequest{Email: "rev@example.com", Password: "longenough", Role: models.RoleReviewer},
			wantErrors: 0,
		},
		{
			name:       "admin cannot self register",
			req:        models.RegisterRequest{Email: "a@example.com", Password: "longenough", Role: models.RoleAdmin},
			wantErrors: 1,
			wantFields: []string{"role"},
		},
		{
			name:       "unknown role",
			req:        models.RegisterRequest{Email: "a@example.com", Password: "longenough", Role: "EDITOR"},
			wantErrors: 1,
			wantFields: []string{"role"},
		},
		{
			name:       "invalid email format",
			req:        models.RegisterRequest{Email: "not-an-email", Password: "longenough"},
			wantErrors: 1,
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			req:        models.RegisterRequest{Email: "a@example.com", Password: "short"},
			wantErrors: 1,
			wantFields: []string{"password"},
		},
		{
			name:       "everything missing",
			req:        models.RegisterRequest{},
			wantErrors: 2,
			wantFields: []string{"email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErrors(t, ValidateRegistration(tt.req), tt.wantErrors, tt.wantFields)
		})
	}
}
