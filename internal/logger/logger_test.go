package logger_test

import (
	"bytes"
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/Lutefd/frankfurter-service/internal/logger"
	"github.com/Lutefd/frankfurter-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) SaveLog(ctx context.Context, log model.Log) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
func (m *MockLogRepository) CreatePartition(ctx context.Context, time time.Time) error {
	args := m.Called(ctx, time)
	return args.Error(0)
}
func (m *MockLogRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestLogger_Info(t *testing.T) {
	mockRepo := new(MockLogRepository)
	mockRepo.On("SaveLog", mock.Anything, mock.AnythingOfType("model.Log")).Return(nil)
	mockRepo.On("Close").Return(nil)
	logger.InitLogger(mockRepo)

	logger.Info("Test info message")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, logger.Shutdown(ctx))

	mockRepo.AssertCalled(t, "SaveLog", mock.Anything, mock.MatchedBy(func(log model.Log) bool {
		return log.Level == model.LogLevelInfo && log.Message == "Test info message" && log.Source == logger.Source
	}))
}

func TestLogger_Error(t *testing.T) {
	mockRepo := new(MockLogRepository)
	mockRepo.On("SaveLog", mock.Anything, mock.AnythingOfType("model.Log")).Return(nil)
	mockRepo.On("Close").Return(nil)
	logger.InitLogger(mockRepo)

	logger.Errorf("fetch failed for %s", "EUR")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, logger.Shutdown(ctx))

	mockRepo.AssertCalled(t, "SaveLog", mock.Anything, mock.MatchedBy(func(log model.Log) bool {
		return log.Level == model.LogLevelError && log.Message == "fetch failed for EUR"
	}))
}

func TestLogger_Shutdown(t *testing.T) {
	mockRepo := new(MockLogRepository)
	logger.InitLogger(mockRepo)

	mockRepo.On("SaveLog", mock.Anything, mock.AnythingOfType("model.Log")).Return(nil)
	mockRepo.On("Close").Return(nil)

	logger.Info("Test shutdown message")

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := logger.Shutdown(ctx)
	assert.NoError(t, err)

	mockRepo.AssertCalled(t, "Close")
}

func TestLogger_WithoutRepository(t *testing.T) {
	var buf bytes.Buffer
	oldInfoLogger := logger.InfoLogger
	logger.InfoLogger = log.New(&buf, "", 0)
	defer func() { logger.InfoLogger = oldInfoLogger }()

	logger.Infof("fetched %d rates", 3)

	assert.Contains(t, buf.String(), "fetched 3 rates")
	assert.NoError(t, logger.Shutdown(context.Background()))
}

// blockingLogRepository holds SaveLog until release is closed and records the
// order in which the sink is used.
type blockingLogRepository struct {
	started chan struct{}
	release chan struct{}
	mu      sync.Mutex
	events  []string
}

func newBlockingLogRepository() *blockingLogRepository {
	return &blockingLogRepository{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (r *blockingLogRepository) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *blockingLogRepository) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *blockingLogRepository) SaveLog(ctx context.Context, log model.Log) error {
	r.started <- struct{}{}
	<-r.release
	r.record("save")
	return nil
}

func (r *blockingLogRepository) CreatePartition(ctx context.Context, month time.Time) error {
	return nil
}

func (r *blockingLogRepository) Close() error {
	r.record("close")
	return nil
}

func TestLogger_ShutdownWaitsForInFlightSave(t *testing.T) {
	repo := newBlockingLogRepository()
	logger.InitLogger(repo)

	logger.Info("last entry")
	<-repo.started

	shutdownErr := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		shutdownErr <- logger.Shutdown(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, repo.recorded(), "repository closed while a save was in flight")

	close(repo.release)

	assert.NoError(t, <-shutdownErr)
	assert.Equal(t, []string{"save", "close"}, repo.recorded())
}

func TestLogger_ShutdownTimeout(t *testing.T) {
	repo := newBlockingLogRepository()
	logger.InitLogger(repo)

	logger.Info("stuck entry")
	<-repo.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, logger.Shutdown(ctx), context.DeadlineExceeded)
	assert.NotContains(t, repo.recorded(), "close")

	close(repo.release)
}
