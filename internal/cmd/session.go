package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/config"
	"github.com/gravitrone/coursedesk/internal/logging"
)

// session is an authenticated client with its resolved config and logger.
type session struct {
	cfg    *config.Config
	client *api.Client
	logger *zap.Logger
}

// openSession resolves config from file, .env and environment and opens the
// log file.
func openSession() (*session, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, fmt.Errorf("not logged in: %w", err)
	}
	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:    cfg,
		client: api.NewClient(cfg.BaseURL, cfg.Token, cfg.Timeout).WithLogger(logger),
		logger: logger,
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}
