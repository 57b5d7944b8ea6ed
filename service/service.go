package service

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/steven0413/BiblioteEmail/clients"
	"github.com/steven0413/BiblioteEmail/config"
	"github.com/steven0413/BiblioteEmail/data"
	"github.com/steven0413/BiblioteEmail/data/dto"
	"github.com/steven0413/BiblioteEmail/internal/jsonlog"
	"github.com/steven0413/BiblioteEmail/repository"
	"golang.org/x/time/rate"
)

// Postman delivers reply emails. internal/mailer satisfies this.
type Postman interface {
	Send(recipient, subject, body string) error
}

// MailboxReader pulls unread messages from an inbox. clients.Mailbox
// satisfies this.
type MailboxReader interface {
	FetchUnread() ([]clients.InboundMessage, error)
	Check() error
}

type Service interface {
	intents
	status
}

type intents interface {
	SubmitIntent(ctx context.Context, requestBody dto.SubmitIntentRequestBody) data.OperationResult
	ProcessPending(ctx context.Context) data.BatchResult
	ProcessPendingInBackground()
}

type status interface {
	SystemStatus(ctx context.Context) data.SystemStatus
}

// service defines the service layer. All collaborators are constructed
// once at process start and shared across requests; the pipeline itself
// keeps no per-request mutable state.
type service struct {
	config   config.Config
	wg       *sync.WaitGroup
	logger   *jsonlog.Logger
	repo     repository.Repository
	oracle   clients.Oracle
	postman  Postman
	mailbox  MailboxReader
	seen     *ttlcache.Cache[string, time.Time]
	throttle *rate.Limiter
}

// New creates a new instance of Service. The throttle spaces sequential
// batch messages to respect the mail and oracle providers' rate limits.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository, oracle clients.Oracle, postman Postman, mailbox MailboxReader, seen *ttlcache.Cache[string, time.Time]) *service {
	return &service{
		config:   cfg,
		wg:       wg,
		logger:   logger,
		repo:     repo,
		oracle:   oracle,
		postman:  postman,
		mailbox:  mailbox,
		seen:     seen,
		throttle: rate.NewLimiter(rate.Every(cfg.Batch.Throttle), 1),
	}
}
