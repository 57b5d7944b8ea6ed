package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/steven0413/BiblioteEmail/clients"
	"github.com/steven0413/BiblioteEmail/config"
	"github.com/steven0413/BiblioteEmail/internal/jsonlog"
)

// stubOracle replays canned completions in call order. The last reply is
// repeated once the script runs out.
type stubOracle struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (o *stubOracle) Complete(ctx context.Context, system, user string) (string, error) {
	o.calls++
	o.prompts = append(o.prompts, user)
	if o.err != nil {
		return "", o.err
	}
	if len(o.replies) == 0 {
		return "", nil
	}
	i := o.calls - 1
	if i >= len(o.replies) {
		i = len(o.replies) - 1
	}
	return o.replies[i], nil
}

type stubRepo struct {
	rows          []map[string]interface{}
	selectErr     error
	affected      int64
	mutationErr   error
	pingErr       error
	selectCalls   int
	mutationCalls int
	queries       []string
}

func (r *stubRepo) RunSelect(ctx context.Context, query string) ([]map[string]interface{}, error) {
	r.selectCalls++
	r.queries = append(r.queries, query)
	if r.selectErr != nil {
		return nil, r.selectErr
	}
	return r.rows, nil
}

func (r *stubRepo) RunMutation(ctx context.Context, query string) (int64, error) {
	r.mutationCalls++
	r.queries = append(r.queries, query)
	if r.mutationErr != nil {
		return 0, r.mutationErr
	}
	return r.affected, nil
}

func (r *stubRepo) InitSchema(ctx context.Context) error { return nil }

func (r *stubRepo) Ping(ctx context.Context) error { return r.pingErr }

type stubPostman struct {
	err        error
	recipients []string
	subjects   []string
	bodies     []string
}

func (p *stubPostman) Send(recipient, subject, body string) error {
	p.recipients = append(p.recipients, recipient)
	p.subjects = append(p.subjects, subject)
	p.bodies = append(p.bodies, body)
	return p.err
}

type stubMailbox struct {
	messages []clients.InboundMessage
	err      error
}

func (m *stubMailbox) FetchUnread() ([]clients.InboundMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

func (m *stubMailbox) Check() error { return m.err }

func newTestService(t *testing.T, oracle *stubOracle, repo *stubRepo, postman *stubPostman, mailbox *stubMailbox) *service {
	t.Helper()
	var cfg config.Config
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	seen := ttlcache.New(ttlcache.WithTTL[string, time.Time](time.Hour))
	t.Cleanup(func() {
		wg.Wait()
		seen.DeleteAll()
	})
	return New(cfg, &wg, logger, repo, oracle, postman, mailbox, seen)
}
