package data

import (
	"strings"
	"unicode/utf8"

	"github.com/steven0413/BiblioteEmail/internal/validator"
)

// MinBodyLength is the minimum number of characters a request body must
// contain after trimming. Anything shorter is rejected before the oracle
// is ever consulted.
const MinBodyLength = 10

// OperationKind enumerates the operations the assistant can perform.
type OperationKind string

const (
	OpReserveBook       OperationKind = "RESERVE_BOOK"
	OpRenewReservation  OperationKind = "RENEW_RESERVATION"
	OpCancelReservation OperationKind = "CANCEL_RESERVATION"
	OpAddBook           OperationKind = "ADD_BOOK"
	OpRemoveBook        OperationKind = "REMOVE_BOOK"
	OpListBooks         OperationKind = "LIST_BOOKS"
	OpError             OperationKind = "ERROR"
)

// IntentRequest is an inbound natural-language request. It lives for the
// duration of a single pipeline run and is discarded once the response
// has been produced.
type IntentRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	From    string `json:"from"`
}

// Normalize trims all fields and lowercases the sender address.
func (r IntentRequest) Normalize() IntentRequest {
	return IntentRequest{
		Subject: strings.TrimSpace(r.Subject),
		Body:    strings.TrimSpace(r.Body),
		From:    strings.ToLower(strings.TrimSpace(r.From)),
	}
}

func ValidateIntentRequest(v *validator.Validator, request IntentRequest) {
	v.Check(request.Subject != "", "subject", "must be provided")
	v.Check(request.Body != "", "body", "must be provided")
	v.Check(utf8.RuneCountInString(request.Body) >= MinBodyLength, "body", "must be at least 10 characters long")
	v.Check(request.From != "", "from", "must be provided")
	v.Check(validator.Matches(request.From, validator.EmailRX), "from", "must be a valid email address")
}

// StructuredOperation is the triple recovered from an oracle reply. An
// empty Query signals that no executable operation could be resolved.
type StructuredOperation struct {
	Query       string        `json:"sql"`
	Kind        OperationKind `json:"operation_type"`
	Explanation string        `json:"explanation"`
}

// OperationResult is the outcome of one pipeline run.
type OperationResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// BatchError records why a single message in a batch failed.
type BatchError struct {
	From  string `json:"email"`
	Error string `json:"error"`
}

// BatchResult aggregates the outcome of processing all pending messages.
type BatchResult struct {
	Processed int          `json:"processed_count"`
	Errors    []BatchError `json:"errors"`
}

// SystemStatus reports the reachability of each external collaborator.
// Overall follows the oracle: mail and storage problems are common and
// usually transient, so they do not gate availability unless the status
// check is configured strict.
type SystemStatus struct {
	Database     bool `json:"database"`
	EmailService bool `json:"email_service"`
	Oracle       bool `json:"oracle"`
	Overall      bool `json:"overall"`
}
