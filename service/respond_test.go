package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/steven0413/BiblioteEmail/data"
)

func TestFormatResponseUsesOracleReply(t *testing.T) {
	oracle := &stubOracle{replies: []string{"  ¡Hola! Tu reserva quedó lista.  "}}
	s := newTestService(t, oracle, &stubRepo{}, &stubPostman{}, &stubMailbox{})

	got := s.formatResponse(context.Background(), map[string]interface{}{"rows_affected": 1}, data.OpReserveBook, "quiero reservar 1984")
	if got != "¡Hola! Tu reserva quedó lista." {
		t.Errorf("unexpected response %q", got)
	}
	if oracle.calls != 1 {
		t.Errorf("expected one oracle call; got %d", oracle.calls)
	}
	// The result and the original request both travel in the prompt.
	if !strings.Contains(oracle.prompts[0], "rows_affected") || !strings.Contains(oracle.prompts[0], "quiero reservar 1984") {
		t.Errorf("prompt missing context: %q", oracle.prompts[0])
	}
}

func TestFormatResponseFallsBackOnOracleError(t *testing.T) {
	oracle := &stubOracle{err: errors.New("timeout")}
	s := newTestService(t, oracle, &stubRepo{}, &stubPostman{}, &stubMailbox{})

	got := s.formatResponse(context.Background(), map[string]interface{}{"rows_affected": 0}, data.OpRenewReservation, "renovar mi préstamo")
	if got == "" {
		t.Fatal("response must never be empty")
	}
	if !strings.Contains(got, "renovar mi préstamo") {
		t.Errorf("fallback should echo the request; got %q", got)
	}
	if !strings.Contains(got, "rows_affected") {
		t.Errorf("fallback should carry the raw result; got %q", got)
	}
}

func TestFormatResponseFallsBackOnEmptyReply(t *testing.T) {
	oracle := &stubOracle{replies: []string{"   \n  "}}
	s := newTestService(t, oracle, &stubRepo{}, &stubPostman{}, &stubMailbox{})

	got := s.formatResponse(context.Background(), nil, data.OpListBooks, "mostrar libros")
	if got == "" {
		t.Fatal("response must never be empty")
	}
}

func TestRepairEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase accents", "La reserva se realizÃ³ con Ã©xito", "La reserva se realizó con éxito"},
		{"enye", "maÃ±ana", "mañana"},
		{"inverted punctuation", "Â¡Hola! Â¿QuÃ© tal?", "¡Hola! ¿Qué tal?"},
		{"clean text untouched", "¡Hola! Tu reserva quedó lista.", "¡Hola! Tu reserva quedó lista."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repairEncoding(tt.input); got != tt.expected {
				t.Errorf("repairEncoding(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFallbackResponseNeverEmpty(t *testing.T) {
	cases := []interface{}{
		nil,
		map[string]interface{}{"rows_affected": int64(1)},
		[]map[string]interface{}{},
		map[string]interface{}{"error": "boom"},
	}
	for _, result := range cases {
		if got := fallbackResponse("hola", result); strings.TrimSpace(got) == "" {
			t.Errorf("empty fallback for result %v", result)
		}
	}
}
