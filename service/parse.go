package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/steven0413/BiblioteEmail/data"
)

// rawExcerptLimit bounds how much of an unparseable reply is echoed back
// in the explanation for diagnosability.
const rawExcerptLimit = 120

// parseOracleReply turns the oracle's free-text reply into a structured
// operation. It never fails. A single candidate payload is located (a
// json-tagged fence, then any fence, then the first balanced brace span)
// and decoded; once a payload decodes with all three required fields the
// recovery heuristics are never consulted. Otherwise the raw text is
// mined for a query and an operation kind, falling back to a safe
// read-only listing of available books.
func parseOracleReply(reply string) data.StructuredOperation {
	if candidate := extractCandidate(reply); candidate != "" {
		if operation, ok := decodePayload(candidate); ok {
			return operation
		}
	}
	return recoverOperation(reply)
}

func extractCandidate(reply string) string {
	if block := extractFencedBlock(reply, "```json"); block != "" {
		return block
	}
	if block := extractFencedBlock(reply, "```"); block != "" {
		return block
	}
	return extractBraceSpan(reply)
}

// extractFencedBlock returns the contents of the first code fence opened
// by marker. The opening line is skipped so any language tag after the
// backticks is ignored.
func extractFencedBlock(s, marker string) string {
	start := strings.Index(s, marker)
	if start == -1 {
		return ""
	}
	rest := s[start+len(marker):]
	nl := strings.Index(rest, "\n")
	if nl == -1 {
		return ""
	}
	rest = rest[nl+1:]
	end := strings.Index(rest, "```")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

// extractBraceSpan returns the first balanced brace-delimited span in s.
func extractBraceSpan(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// decodePayload decodes a candidate payload, requiring all three fields
// to be present. A null sql field decodes to an empty query, which the
// pipeline treats as "could not resolve".
func decodePayload(candidate string) (data.StructuredOperation, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return data.StructuredOperation{}, false
	}
	for _, key := range []string{"sql", "operation_type", "explanation"} {
		if _, ok := fields[key]; !ok {
			return data.StructuredOperation{}, false
		}
	}
	var payload struct {
		SQL         *string `json:"sql"`
		Kind        string  `json:"operation_type"`
		Explanation string  `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return data.StructuredOperation{}, false
	}
	operation := data.StructuredOperation{
		Kind:        data.OperationKind(strings.ToUpper(strings.TrimSpace(payload.Kind))),
		Explanation: payload.Explanation,
	}
	if payload.SQL != nil {
		operation.Query = strings.TrimSpace(*payload.SQL)
	}
	return operation, true
}

var queryRX = regexp.MustCompile(`(?is)\b(select|insert|update|delete)\b[^;]*`)

// recoverOperation is the best-effort path for replies that carry no
// decodable payload. Query recovery and kind classification run
// independently on the raw text.
func recoverOperation(reply string) data.StructuredOperation {
	kind := classifyKind(reply)
	query := strings.TrimSpace(queryRX.FindString(reply))
	if query == "" {
		return data.StructuredOperation{
			Query:       defaultListQuery,
			Kind:        kind,
			Explanation: "No se pudo interpretar la respuesta del modelo: " + excerpt(reply),
		}
	}
	return data.StructuredOperation{
		Query:       query,
		Kind:        kind,
		Explanation: "Operación recuperada del texto de la respuesta",
	}
}

// classifyKind keyword-matches the raw reply against a bilingual
// vocabulary. No match means a harmless listing.
func classifyKind(text string) data.OperationKind {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "reservar", "reserve"):
		return data.OpReserveBook
	case containsAny(lower, "renovar", "renew"):
		return data.OpRenewReservation
	case containsAny(lower, "cancelar", "cancel"):
		return data.OpCancelReservation
	case containsAny(lower, "agregar", "add"):
		return data.OpAddBook
	case containsAny(lower, "eliminar", "remove"):
		return data.OpRemoveBook
	default:
		return data.OpListBooks
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= rawExcerptLimit {
		return s
	}
	return string(runes[:rawExcerptLimit]) + "…"
}
