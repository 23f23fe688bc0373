package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JNHNG0205/ai-content-workflow/internal/apperr"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/JNHNG0205/ai-content-workflow/internal/policy"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		op   policy.Operation
		want bool
	}{
		{"writer creates draft", models.RoleWriter, policy.OpCreateDraft, true},
		{"writer submits", models.RoleWriter, policy.OpSubmitDraft, true},
		{"writer revises", models.RoleWriter, policy.OpReviseRejected, true},
		{"writer generates text", models.RoleWriter, policy.OpGenerateText, true},
		{"writer cannot approve", models.RoleWriter, policy.OpApprove, false},
		{"writer cannot claim", models.RoleWriter, policy.OpClaim, false},
		{"reviewer claims", models.RoleReviewer, policy.OpClaim, true},
		{"reviewer approves", models.RoleReviewer, policy.OpApprove, true},
		{"reviewer rejects", models.RoleReviewer, policy.OpReject, true},
		{"reviewer cannot create", models.RoleReviewer, policy.OpCreateDraft, false},
		{"reviewer cannot refine", models.RoleReviewer, policy.OpRefineText, false},
		{"admin creates", models.RoleAdmin, policy.OpCreateDraft, true},
		{"admin approves", models.RoleAdmin, policy.OpApprove, true},
		{"unknown role", models.Role("GUEST"), policy.OpListPending, false},
		{"empty role", models.Role(""), policy.OpCreateDraft, false},
		{"unknown operation", models.RoleAdmin, policy.Operation("delete"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Allowed(tt.role, tt.op))
		})
	}
}

func TestAuthorize_ReturnsForbidden(t *testing.T) {
	err := policy.Authorize(models.RoleWriter, policy.OpApprove)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	assert.NoError(t, policy.Authorize(models.RoleReviewer, policy.OpApprove))
}

func TestAdminCoversEveryOperation(t *testing.T) {
	for _, op := range policy.Operations() {
		assert.True(t, policy.Allowed(models.RoleAdmin, op), "admin should be allowed %s", op)
	}
}
