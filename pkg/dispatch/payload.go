package dispatch

import (
	"encoding/json"
	"time"
)

// Payload is the email request handed to the dispatcher. The JSON shape is a
// contract with the dispatcher service and must not change.
type Payload struct {
	FormID      string            `json:"formId"`
	ServiceName string            `json:"serviceName"`
	EntityName  string            `json:"entityName"`
	Email       string            `json:"email"`
	Amount      *string           `json:"amount"`
	Language    string            `json:"language"`
	Timestamp   string            `json:"timestamp"`
	FormData    map[string]string `json:"formData"`
}

// HasAmount reports whether an amount was supplied.
func (p Payload) HasAmount() bool {
	return p.Amount != nil && *p.Amount != ""
}

// Time parses Timestamp, returning the zero time when it is absent or malformed.
func (p Payload) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, p.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UnmarshalJSON accepts amount as a JSON string, number or null, since
// hand-written clients send it either way.
func (p *Payload) UnmarshalJSON(data []byte) error {
	type plain Payload
	aux := struct {
		*plain
		Amount json.RawMessage `json:"amount"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Amount = nil
	if len(aux.Amount) == 0 || string(aux.Amount) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.Amount, &s); err == nil {
		p.Amount = &s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(aux.Amount, &n); err != nil {
		return err
	}
	s = n.String()
	p.Amount = &s
	return nil
}

// Response is the dispatcher's JSON reply.
type Response struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message,omitempty"`
	Error            string   `json:"error,omitempty"`
	Errors           []string `json:"errors,omitempty"`
	NotificationSent bool     `json:"notificationSent,omitempty"`
	ConfirmationSent bool     `json:"confirmationSent,omitempty"`
}
