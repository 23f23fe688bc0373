package models

// ValidationError represents a single field-level input problem
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Input limits shared by validation and the HTTP layer
const (
	MaxTitleLength       = 200
	MaxBodyLength        = 50000
	MaxCommentLength     = 2000
	MaxPromptLength      = 4000
	MaxInstructionLength = 1000
	MinPasswordLength    = 8
)
