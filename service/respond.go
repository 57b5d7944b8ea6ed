package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/steven0413/BiblioteEmail/data"
)

// responseSystemPrompt shapes the tone of user-facing replies. The worked
// examples cover the cases users hit most.
const responseSystemPrompt = `Eres el asistente de una biblioteca. Convierte resultados de operaciones en respuestas cálidas y específicas en español. Responde solo con el texto del mensaje, sin JSON ni formato adicional.

Ejemplos:

Operación: RESERVE_BOOK, resultado: {"rows_affected": 1}
Respuesta: ¡Hola! Recibí tu solicitud para reservar un libro. La reserva se realizó exitosamente. El libro estará disponible para ti durante 14 días.

Operación: RESERVE_BOOK, resultado: {"rows_affected": 0}
Respuesta: ¡Hola! Recibí tu solicitud para reservar. No pude completar la reserva. El libro podría no estar disponible o ya tienes una reserva activa.

Operación: LIST_BOOKS, resultado: [{"title": "1984", "author": "George Orwell", "available": true}]
Respuesta: ¡Hola! Estos son los libros disponibles: "1984" de George Orwell. ¿Quieres reservar alguno?

Operación: RENEW_RESERVATION, resultado: {"rows_affected": 0}
Respuesta: ¡Hola! No encontré una reserva activa a tu nombre, así que no pude renovarla. ¿Quieres hacer una reserva nueva?

Operación: RESERVE_BOOK, resultado: {"error": "connection refused"}
Respuesta: ¡Hola! Recibí tu solicitud, pero ocurrió un problema técnico al procesarla. Por favor inténtalo de nuevo más tarde.`

// formatResponse turns an execution result into the user-facing message.
// The oracle writes the reply; if it fails for any reason a deterministic
// template takes over, so this never returns an empty string.
func (s *service) formatResponse(ctx context.Context, result interface{}, kind data.OperationKind, request string) string {
	encoded, err := json.Marshal(result)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", result))
	}
	user := fmt.Sprintf("SOLICITUD: %q\nOPERACIÓN: %s\nRESULTADO: %s\n\nRedacta la respuesta para el usuario.", request, kind, encoded)
	reply, err := s.oracle.Complete(ctx, responseSystemPrompt, user)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			s.logger.PrintWarning("response formatting fell back to template", map[string]string{"error": err.Error()})
		}
		return fallbackResponse(request, result)
	}
	return repairEncoding(strings.TrimSpace(reply))
}

// mojibake repairs UTF-8 text that went through a Latin-1 round trip,
// which some providers produce for accented Spanish characters.
var mojibake = strings.NewReplacer(
	"Ã¡", "á",
	"Ã©", "é",
	"Ã­", "í",
	"Ã³", "ó",
	"Ãº", "ú",
	"Ã±", "ñ",
	"Ã¼", "ü",
	"Ã", "Á",
	"Ã", "É",
	"Ã", "Í",
	"Ã", "Ó",
	"Ã", "Ú",
	"Ã", "Ñ",
	"Â¡", "¡",
	"Â¿", "¿",
)

func repairEncoding(s string) string {
	return mojibake.Replace(s)
}

// fallbackResponse echoes the original request and the raw result. It is
// the guaranteed-delivery path and must never produce an empty message.
func fallbackResponse(request string, result interface{}) string {
	if result == nil {
		return fmt.Sprintf("¡Hola! Procesé tu solicitud: %q.", request)
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("¡Hola! Procesé tu solicitud: %q.", request)
	}
	return fmt.Sprintf("¡Hola! Procesé tu solicitud: %q. El resultado fue: %s", request, encoded)
}
