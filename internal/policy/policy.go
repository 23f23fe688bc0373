// Package policy is the role-based capability check consulted before every
// workflow and authoring operation. It only answers "may this role attempt
// this operation"; ownership and claim conditions belong to the workflow.
package policy

import (
	"fmt"

	"github.com/JNHNG0205/ai-content-workflow/internal/apperr"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
)

// Operation names an action a caller can request
type Operation string

const (
	OpCreateDraft    Operation = "create_draft"
	OpUpdateDraft    Operation = "update_draft"
	OpSubmitDraft    Operation = "submit_draft"
	OpReviseRejected Operation = "revise_rejected"
	OpListOwn        Operation = "list_own_content"
	OpReadOwn        Operation = "read_own_content"

	OpListPending  Operation = "list_pending"
	OpClaim        Operation = "claim"
	OpApprove      Operation = "approve"
	OpReject       Operation = "reject"
	OpListReviewed Operation = "list_reviewed"

	OpGenerateText Operation = "generate_text"
	OpRefineText   Operation = "refine_text"
)

// required maps each operation to the base role allowed to perform it.
// ADMIN satisfies every entry.
var required = map[Operation]models.Role{
	OpCreateDraft:    models.RoleWriter,
	OpUpdateDraft:    models.RoleWriter,
	OpSubmitDraft:    models.RoleWriter,
	OpReviseRejected: models.RoleWriter,
	OpListOwn:        models.RoleWriter,
	OpReadOwn:        models.RoleWriter,

	OpListPending:  models.RoleReviewer,
	OpClaim:        models.RoleReviewer,
	OpApprove:      models.RoleReviewer,
	OpReject:       models.RoleReviewer,
	OpListReviewed: models.RoleReviewer,

	OpGenerateText: models.RoleWriter,
	OpRefineText:   models.RoleWriter,
}

// Allowed reports whether role may perform op
func Allowed(role models.Role, op Operation) bool {
	need, ok := required[op]
	if !ok || !models.ValidRoles[role] {
		return false
	}
	return role == need || role == models.RoleAdmin
}

// Authorize returns a Forbidden error when role may not perform op
func Authorize(role models.Role, op Operation) error {
	if !Allowed(role, op) {
		return apperr.Forbidden(fmt.Sprintf("role %q may not %s", role, op))
	}
	return nil
}

// Operations lists every known operation
func Operations() []Operation {
	ops := make([]Operation, 0, len(required))
	for op := range required {
		ops = append(ops, op)
	}
	return ops
}
