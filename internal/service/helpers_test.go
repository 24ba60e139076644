package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"Community_Portal/internal/pkg"
	"Community_Portal/internal/repository/mysql"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := mysql.Open(sqlite.Open(":memory:"), mysql.PoolConfig{MaxOpenConns: 1}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	fail   bool
}

func (p *recordingPublisher) Send(_ context.Context, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.events = append(p.events, key+" "+string(value))
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type recordingMailer struct {
	mu   sync.Mutex
	to   []string
	body []string
}

func (m *recordingMailer) Send(_ context.Context, to, _, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	m.body = append(m.body, htmlBody)
	return nil
}

func appError(t *testing.T, err error) *pkg.AppError {
	t.Helper()
	var appErr *pkg.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr
}

func body(s string) *strings.Reader {
	return strings.NewReader(s)
}
