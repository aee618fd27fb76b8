package formguard

import "github.com/alzentdigital/website/pkg/validator"

// MessageKind classifies the top-level message of a View.
type MessageKind string

const (
	MessageNone    MessageKind = ""
	MessageInfo    MessageKind = "info"
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Outcome names how a submission ended.
type Outcome string

const (
	OutcomeNone             Outcome = ""
	OutcomeBotDetected      Outcome = "bot_detected"
	OutcomeRateLimited      Outcome = "rate_limited"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeSent             Outcome = "sent"
	OutcomeNetworkError     Outcome = "network_error"
	OutcomeRejected         Outcome = "rejected"
	OutcomeServerError      Outcome = "server_error"
)

// SubmitView is the desired state of the submit control.
type SubmitView struct {
	Disabled bool   `json:"disabled"`
	Label    string `json:"label"`
}

// View is what the form should display after a guard operation. It carries
// either field errors or a top-level message, never both.
type View struct {
	State       State                  `json:"state"`
	Outcome     Outcome                `json:"outcome,omitempty"`
	FieldErrors []validator.FieldError `json:"fieldErrors,omitempty"`
	Message     string                 `json:"message,omitempty"`
	MessageKind MessageKind            `json:"messageKind,omitempty"`
	Submit      SubmitView             `json:"submit"`
	Reset       bool                   `json:"reset,omitempty"`
	CloseModal  bool                   `json:"closeModal,omitempty"`
	Silent      bool                   `json:"silent,omitempty"`
	RetryAfter  int                    `json:"retryAfter,omitempty"`
	Attempts    int                    `json:"attempts,omitempty"`
}

// FieldView is the inline feedback for one field after blur.
type FieldView struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Valid    bool   `json:"valid"`
	ErrorKey string `json:"errorKey,omitempty"`
	Message  string `json:"message,omitempty"`
}
