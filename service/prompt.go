package service

import "fmt"

// defaultListQuery is the safe read-only fallback executed when no query
// can be recovered from an oracle reply.
const defaultListQuery = `SELECT id, title, author, isbn, available FROM books WHERE available = TRUE ORDER BY title`

// intentSystemPrompt instructs the oracle to translate a natural-language
// request into a single JSON object with exactly three fields. The output
// shape is a contract enforced by instruction text only, which is why the
// reply parser has to be defensive about it.
const intentSystemPrompt = `Eres un asistente de biblioteca que convierte solicitudes en español o inglés a SQL para PostgreSQL. Responde SOLO con un objeto JSON con exactamente tres campos: "sql", "operation_type" y "explanation".

Tablas:
  books (id, title, author, isbn, created_at, available)
  reservations (id, book_id, user_email, reserved_at, renewed_at, expires_at, active)

Tipos de operación: RESERVE_BOOK, RENEW_RESERVATION, CANCEL_RESERVATION, ADD_BOOK, REMOVE_BOOK, LIST_BOOKS.

Ejemplos:

{"sql": "INSERT INTO reservations (book_id, user_email, reserved_at, expires_at) SELECT id, 'usuario@email.com', NOW(), NOW() + INTERVAL '14 days' FROM books WHERE title = '1984' AND author = 'George Orwell' AND available = TRUE", "operation_type": "RESERVE_BOOK", "explanation": "Usuario quiere reservar '1984' de George Orwell"}

{"sql": "SELECT id, title, author, isbn, available FROM books WHERE available = TRUE ORDER BY title", "operation_type": "LIST_BOOKS", "explanation": "Usuario quiere ver los libros disponibles"}

{"sql": "UPDATE reservations SET active = FALSE WHERE user_email = 'usuario@email.com' AND active = TRUE", "operation_type": "CANCEL_RESERVATION", "explanation": "Usuario quiere cancelar su reserva activa"}

Si la solicitud no se puede resolver con estas tablas, usa "sql": null y explica el motivo.

Responde ÚNICAMENTE con JSON válido, sin texto adicional.`

// buildIntentPrompt embeds the requester and the request into the
// per-call prompt together with the reasoning scaffold the oracle is
// asked to follow. The five steps are instruction text for the oracle,
// not control flow in this system.
func buildIntentPrompt(request, email string) string {
	return fmt.Sprintf(`USER_EMAIL: %s
USER_REQUEST: %q

Sigue este proceso paso a paso:

PASO 1 - Identificar la intención del usuario
PASO 2 - Extraer libro, autor y detalles
PASO 3 - Determinar la operación (reservar, renovar, etc.)
PASO 4 - Construir el SQL con validaciones
PASO 5 - Verificar que sea seguro

Aplica estos pasos a la solicitud.`, email, request)
}
