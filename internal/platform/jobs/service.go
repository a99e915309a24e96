package jobs

import (
	"context"
	"log/slog"
	"time"

	"hrms/internal/domain/contracts"
	"hrms/internal/domain/pending"
	"hrms/internal/platform/config"
)

// Service owns the background sweeps: purging reviewed update requests
// past their retention window and sending contract-expiry notices.
type Service struct {
	Cfg       config.Config
	Pending   *pending.Service
	Contracts *contracts.Service
}

func New(cfg config.Config, pendingSvc *pending.Service, contractSvc *contracts.Service) *Service {
	return &Service{Cfg: cfg, Pending: pendingSvc, Contracts: contractSvc}
}

func (s *Service) Start(ctx context.Context) {
	if s.Cfg.RetentionInterval > 0 {
		go s.scheduleRetention(ctx, s.Cfg.RetentionInterval)
	}
	if s.Cfg.ContractCheckInterval > 0 {
		go s.scheduleContractNotices(ctx, s.Cfg.ContractCheckInterval)
	}
}

func (s *Service) scheduleRetention(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.Pending.Cleanup(ctx, s.Cfg.PendingUpdateRetention)
			if err != nil {
				slog.Warn("pending-update retention sweep failed", "err", err)
				continue
			}
			slog.Info("pending-update retention sweep done", "deleted", deleted)
		}
	}
}

func (s *Service) scheduleContractNotices(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			notified, err := s.Contracts.NotifyExpiring(ctx, s.Cfg.ContractNoticeWindow)
			if err != nil {
				slog.Warn("contract notice sweep failed", "err", err)
				continue
			}
			if notified > 0 {
				slog.Info("contract notices sent", "count", notified)
			}
		}
	}
}
