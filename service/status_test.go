package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/steven0413/BiblioteEmail/config"
	"github.com/steven0413/BiblioteEmail/internal/jsonlog"
)

func TestSystemStatusAllHealthy(t *testing.T) {
	oracle := &stubOracle{replies: []string{"OK"}}
	s := newTestService(t, oracle, &stubRepo{}, &stubPostman{}, &stubMailbox{})

	status := s.SystemStatus(context.Background())

	if !status.Database || !status.EmailService || !status.Oracle || !status.Overall {
		t.Errorf("expected everything healthy; got %+v", status)
	}
}

func TestSystemStatusOracleGatesOverall(t *testing.T) {
	oracle := &stubOracle{err: errors.New("timeout")}
	s := newTestService(t, oracle, &stubRepo{}, &stubPostman{}, &stubMailbox{})

	status := s.SystemStatus(context.Background())

	if status.Oracle {
		t.Error("expected the oracle check to fail")
	}
	if status.Overall {
		t.Error("an unreachable oracle must fail the overall status")
	}
}

func TestSystemStatusToleratesTransientFailures(t *testing.T) {
	oracle := &stubOracle{replies: []string{"OK"}}
	repo := &stubRepo{pingErr: errors.New("connection refused")}
	mailbox := &stubMailbox{err: errors.New("imap: login failed")}
	s := newTestService(t, oracle, repo, &stubPostman{}, mailbox)

	status := s.SystemStatus(context.Background())

	// Storage and mailbox failures are reported but tolerated by default.
	if !status.Database || !status.EmailService {
		t.Errorf("expected tolerated failures; got %+v", status)
	}
	if !status.Overall {
		t.Error("overall should stay healthy while the oracle responds")
	}
}

func TestSystemStatusStrictMode(t *testing.T) {
	oracle := &stubOracle{replies: []string{"OK"}}
	repo := &stubRepo{pingErr: errors.New("connection refused")}

	var cfg config.Config
	cfg.Status.Strict = true
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	seen := ttlcache.New(ttlcache.WithTTL[string, time.Time](time.Hour))
	defer seen.DeleteAll()
	s := New(cfg, &wg, logger, repo, oracle, &stubPostman{}, &stubMailbox{}, seen)

	status := s.SystemStatus(context.Background())

	if status.Database {
		t.Error("strict mode must surface the storage failure")
	}
	if status.Overall {
		t.Error("strict mode must fail overall on any collaborator failure")
	}
}
