package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/steven0413/BiblioteEmail/data"
	"github.com/steven0413/BiblioteEmail/data/dto"
	"github.com/steven0413/BiblioteEmail/internal/validator"
)

// SubmitIntent runs the full pipeline for one request: validate, resolve
// the intent through the oracle, execute the resolved query, write the
// natural-language reply and attempt delivery. Validation failures and
// unresolved intents are terminal; execution errors travel inside the
// result; a failed delivery only clears the response_sent flag.
func (s *service) SubmitIntent(ctx context.Context, requestBody dto.SubmitIntentRequestBody) data.OperationResult {
	request := data.IntentRequest{
		Subject: requestBody.Subject,
		Body:    requestBody.Body,
		From:    requestBody.From,
	}.Normalize()
	v := validator.New()
	if data.ValidateIntentRequest(v, request); !v.Valid() {
		s.logger.PrintWarning(ErrFailedValidation.Error(), map[string]string{"from": request.From})
		return data.OperationResult{Success: false, Message: validationMessage(v)}
	}

	reply, err := s.oracle.Complete(ctx, intentSystemPrompt, buildIntentPrompt(request.Body, request.From))
	var operation data.StructuredOperation
	if err != nil {
		s.logger.PrintError(fmt.Errorf("%w: %v", ErrOracleUnavailable, err), map[string]string{"from": request.From})
		operation = data.StructuredOperation{
			Kind:        data.OpError,
			Explanation: "Error procesando solicitud: " + err.Error(),
		}
	} else {
		operation = parseOracleReply(reply)
	}
	if operation.Query == "" {
		s.logger.PrintWarning(ErrIntentUnresolved.Error(), map[string]string{"from": request.From})
		message := operation.Explanation
		if message == "" {
			message = "No se pudo entender la solicitud"
		}
		return data.OperationResult{Success: false, Message: message}
	}

	result := s.executeQuery(ctx, operation.Query)
	response := s.formatResponse(ctx, result, operation.Kind, request.Body)

	sent := false
	if err := s.postman.Send(request.From, "Re: "+request.Subject, response); err != nil {
		s.logger.PrintWarning("reply delivery failed", map[string]string{"to": request.From, "error": err.Error()})
	} else {
		sent = true
	}

	return data.OperationResult{
		Success: true,
		Message: "Solicitud procesada exitosamente",
		Data: map[string]interface{}{
			"operation":     operation.Kind,
			"response_sent": sent,
			"sql_generated": operation.Query,
			"user_response": response,
		},
	}
}

// ProcessPending pulls every unread message from the mailbox and runs
// each through SubmitIntent, strictly sequentially. The throttle spaces
// messages to respect provider rate limits; already-seen Message-IDs are
// skipped in case a previous run could not mark them seen.
func (s *service) ProcessPending(ctx context.Context) data.BatchResult {
	var batch data.BatchResult
	messages, err := s.mailbox.FetchUnread()
	if err != nil {
		s.logger.PrintError(err, nil)
		batch.Errors = append(batch.Errors, data.BatchError{Error: err.Error()})
		return batch
	}
	s.logger.PrintInfo("fetched unread messages", map[string]string{"count": strconv.Itoa(len(messages))})
	for _, message := range messages {
		if message.MessageID != "" && s.seen.Get(message.MessageID) != nil {
			continue
		}
		if err := s.throttle.Wait(ctx); err != nil {
			batch.Errors = append(batch.Errors, data.BatchError{From: message.From, Error: err.Error()})
			break
		}
		subject := message.Subject
		if strings.TrimSpace(subject) == "" {
			subject = "Sin asunto"
		}
		result := s.SubmitIntent(ctx, dto.SubmitIntentRequestBody{
			Subject: subject,
			Body:    message.Body,
			From:    message.From,
		})
		if result.Success {
			batch.Processed++
		} else {
			batch.Errors = append(batch.Errors, data.BatchError{From: message.From, Error: result.Message})
		}
		if message.MessageID != "" {
			s.seen.Set(message.MessageID, time.Now(), ttlcache.DefaultTTL)
		}
	}
	s.logger.PrintInfo("batch processing complete", map[string]string{
		"processed": strconv.Itoa(batch.Processed),
		"errors":    strconv.Itoa(len(batch.Errors)),
	})
	return batch
}

// ProcessPendingInBackground kicks off ProcessPending on a background
// goroutine so the caller can return immediately. The goroutine is
// tracked by the app waitgroup and drained on shutdown.
func (s *service) ProcessPendingInBackground() {
	s.background(func() {
		s.ProcessPending(context.Background())
	})
}
