package service

import (
	"context"

	"github.com/steven0413/BiblioteEmail/data"
)

// SystemStatus probes each collaborator. Database and mailbox problems
// are usually transient and users can still be answered over the API, so
// by default those failures are reported but do not count against the
// overall status; only the oracle gates it. Setting status.strict in the
// configuration makes every collaborator mandatory.
func (s *service) SystemStatus(ctx context.Context) data.SystemStatus {
	status := data.SystemStatus{Database: true, EmailService: true}
	if err := s.repo.Ping(ctx); err != nil {
		s.logger.PrintWarning("database check failed", map[string]string{"error": err.Error()})
		if s.config.Status.Strict {
			status.Database = false
		}
	}
	if err := s.mailbox.Check(); err != nil {
		s.logger.PrintWarning("mailbox check failed", map[string]string{"error": err.Error()})
		if s.config.Status.Strict {
			status.EmailService = false
		}
	}
	if _, err := s.oracle.Complete(ctx, "Eres un servicio de verificación.", "Responde únicamente con OK."); err != nil {
		s.logger.PrintError(err, nil)
	} else {
		status.Oracle = true
	}
	status.Overall = status.Oracle && status.Database && status.EmailService
	return status
}
