package jobs

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"
	"ads-inventory-ws/internal/testutil"
	"ads-inventory-ws/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpiredSessions(context.Context) (int64, error) {
	p.calls.Add(1)
	return 0, p.err
}

func TestPurgeSessionsDeletesExpiredRows(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	user := &model.User{Username: "ravi", Role: model.RoleStaff, IsActive: true}
	require.NoError(t, user.SetPassword("secret1"))
	require.NoError(t, userRepo.Create(ctx, user))

	now := time.Now().UTC()
	require.NoError(t, sessionRepo.Create(ctx, &model.Session{UserID: user.ID, ExpiresAt: now.Add(-time.Hour)}))
	live := &model.Session{UserID: user.ID, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, sessionRepo.Create(ctx, live))

	auth := service.NewAuthService(userRepo, sessionRepo, "test-secret", 24*time.Hour, nil, nil)
	var buf bytes.Buffer
	log := logger.New(logger.Options{ServiceName: "test", Output: &buf})

	assert.Equal(t, int64(1), PurgeSessions(ctx, auth, log))
	assert.Contains(t, buf.String(), "expired sessions purged")

	_, err := sessionRepo.FindByID(ctx, live.ID)
	assert.NoError(t, err)
}

func TestPurgeSessionsLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{ServiceName: "test", Output: &buf})

	n := PurgeSessions(context.Background(), &countingPurger{err: errors.New("db down")}, log)
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), "session purge failed")
	assert.Contains(t, buf.String(), "db down")
}

func TestSchedulerRunsPurge(t *testing.T) {
	purger := &countingPurger{}
	s := NewScheduler(logger.Nop())
	require.NoError(t, s.AddSessionPurge("@every 1s", purger))
	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return purger.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestAddSessionPurgeRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(logger.Nop())
	assert.Error(t, s.AddSessionPurge("every now and then", &countingPurger{}))
}
