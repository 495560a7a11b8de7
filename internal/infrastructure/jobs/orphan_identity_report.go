package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"partner-onboarding.backend/internal/domain/entities"
	"partner-onboarding.backend/pkg/logger"
)

const (
	// DefaultOrphanReportInterval applies when no interval is configured
	DefaultOrphanReportInterval = 10 * time.Minute
	orphanReportPageSize        = 200
)

type identityLister interface {
	ListByRole(ctx context.Context, role entities.IdentityRole, limit, offset int) ([]*entities.IdentityUser, error)
}

type registeredUIDLookup interface {
	RegisteredUIDs(ctx context.Context, uids []string) (map[string]bool, error)
}

type orphanGauge interface {
	SetOrphanedIdentities(n int)
}

// OrphanIdentityReportJob reports partner identity users that no account is
// bound to. These come from registrations whose compensating delete failed.
// It only logs; reconciliation is manual.
type OrphanIdentityReportJob struct {
	identities identityLister
	accounts   registeredUIDLookup
	gauge      orphanGauge
	interval   time.Duration
	stop       chan struct{}
}

func NewOrphanIdentityReportJob(identities identityLister, accounts registeredUIDLookup, gauge orphanGauge, interval time.Duration) *OrphanIdentityReportJob {
	if interval <= 0 {
		interval = DefaultOrphanReportInterval
	}
	return &OrphanIdentityReportJob{
		identities: identities,
		accounts:   accounts,
		gauge:      gauge,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

func (j *OrphanIdentityReportJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting orphan identity report job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Orphan identity report job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Orphan identity report job stopped")
			return
		case <-ticker.C:
			j.report(ctx)
		}
	}
}

func (j *OrphanIdentityReportJob) Stop() {
	close(j.stop)
}

// report returns the orphaned uids it found, or nil when a lookup failed
func (j *OrphanIdentityReportJob) report(ctx context.Context) []string {
	var orphans []string
	for offset := 0; ; offset += orphanReportPageSize {
		users, err := j.identities.ListByRole(ctx, entities.IdentityRolePartner, orphanReportPageSize, offset)
		if err != nil {
			logger.Error(ctx, "Error listing partner identities", zap.Error(err))
			return nil
		}
		if len(users) == 0 {
			break
		}

		uids := make([]string, 0, len(users))
		for _, u := range users {
			uids = append(uids, u.UID)
		}
		bound, err := j.accounts.RegisteredUIDs(ctx, uids)
		if err != nil {
			logger.Error(ctx, "Error checking registered accounts", zap.Error(err))
			return nil
		}

		for _, u := range users {
			if bound[u.UID] {
				continue
			}
			orphans = append(orphans, u.UID)
			logger.Alert(ctx, "manual_reconciliation", "Identity user has no partner account",
				zap.String("uid", u.UID),
				zap.String("email", u.Email),
				zap.Time("created_at", u.CreatedAt),
			)
		}

		if len(users) < orphanReportPageSize {
			break
		}
	}

	if j.gauge != nil {
		j.gauge.SetOrphanedIdentities(len(orphans))
	}
	if len(orphans) > 0 {
		logger.Warn(ctx, "Orphaned identity users found", zap.Int("count", len(orphans)))
	}
	return orphans
}
