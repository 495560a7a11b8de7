package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"partner-onboarding.backend/internal/domain/entities"
)

type identityListerStub struct {
	users    []*entities.IdentityUser
	err      error
	calls    int
	lastRole entities.IdentityRole
}

func (s *identityListerStub) ListByRole(_ context.Context, role entities.IdentityRole, limit, offset int) ([]*entities.IdentityUser, error) {
	s.calls++
	s.lastRole = role
	if s.err != nil {
		return nil, s.err
	}
	if offset >= len(s.users) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.users) {
		end = len(s.users)
	}
	return s.users[offset:end], nil
}

type registeredUIDStub struct {
	bound map[string]bool
	err   error
	calls int
}

func (s *registeredUIDStub) RegisteredUIDs(_ context.Context, uids []string) (map[string]bool, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]bool{}
	for _, uid := range uids {
		if s.bound[uid] {
			out[uid] = true
		}
	}
	return out, nil
}

type gaugeStub struct {
	value int
	set   bool
}

func (g *gaugeStub) SetOrphanedIdentities(n int) {
	g.value = n
	g.set = true
}

func TestReport_FindsOrphans(t *testing.T) {
	identities := &identityListerStub{users: []*entities.IdentityUser{{UID: "u1"}, {UID: "u2"}, {UID: "u3"}}}
	accounts := &registeredUIDStub{bound: map[string]bool{"u1": true, "u3": true}}
	gauge := &gaugeStub{}
	job := NewOrphanIdentityReportJob(identities, accounts, gauge, time.Minute)

	orphans := job.report(context.Background())
	require.Equal(t, []string{"u2"}, orphans)
	require.Equal(t, entities.IdentityRolePartner, identities.lastRole)
	require.True(t, gauge.set)
	require.Equal(t, 1, gauge.value)
}

func TestReport_PagesThroughUsers(t *testing.T) {
	users := make([]*entities.IdentityUser, 0, orphanReportPageSize+1)
	for i := 0; i < orphanReportPageSize+1; i++ {
		users = append(users, &entities.IdentityUser{UID: fmt.Sprintf("u%d", i)})
	}
	identities := &identityListerStub{users: users}
	accounts := &registeredUIDStub{bound: map[string]bool{}}
	gauge := &gaugeStub{}
	job := NewOrphanIdentityReportJob(identities, accounts, gauge, time.Minute)

	orphans := job.report(context.Background())
	require.Len(t, orphans, orphanReportPageSize+1)
	require.Equal(t, 2, identities.calls)
	require.Equal(t, 2, accounts.calls)
	require.Equal(t, orphanReportPageSize+1, gauge.value)
}

func TestReport_NoUsers(t *testing.T) {
	identities := &identityListerStub{}
	accounts := &registeredUIDStub{}
	gauge := &gaugeStub{}
	job := NewOrphanIdentityReportJob(identities, accounts, gauge, time.Minute)

	require.Empty(t, job.report(context.Background()))
	require.Equal(t, 0, accounts.calls)
	require.True(t, gauge.set)
	require.Equal(t, 0, gauge.value)
}

func TestReport_ListError(t *testing.T) {
	identities := &identityListerStub{err: errors.New("db down")}
	accounts := &registeredUIDStub{}
	gauge := &gaugeStub{}
	job := NewOrphanIdentityReportJob(identities, accounts, gauge, time.Minute)

	require.Nil(t, job.report(context.Background()))
	require.Equal(t, 0, accounts.calls)
	require.False(t, gauge.set)
}

func TestReport_LookupError(t *testing.T) {
	identities := &identityListerStub{users: []*entities.IdentityUser{{UID: "u1"}}}
	accounts := &registeredUIDStub{err: errors.New("db down")}
	job := NewOrphanIdentityReportJob(identities, accounts, nil, time.Minute)

	require.Nil(t, job.report(context.Background()))
}

func TestNewOrphanIdentityReportJob_DefaultInterval(t *testing.T) {
	job := NewOrphanIdentityReportJob(&identityListerStub{}, &registeredUIDStub{}, nil, 0)
	require.Equal(t, DefaultOrphanReportInterval, job.interval)
}

func TestStartStop_StopsByContext(t *testing.T) {
	job := NewOrphanIdentityReportJob(&identityListerStub{}, &registeredUIDStub{}, nil, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	job := NewOrphanIdentityReportJob(&identityListerStub{}, &registeredUIDStub{}, nil, time.Millisecond)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
