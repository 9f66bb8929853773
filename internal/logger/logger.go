package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Lutefd/frankfurter-service/internal/model"
	"github.com/Lutefd/frankfurter-service/internal/repository"
	"github.com/google/uuid"
)

var (
	InfoLogger          *log.Logger
	ErrorLogger         *log.Logger
	logChan          chan model.Log
	logDone          chan struct{}
	logRepo          repository.LogRepository
	mu               sync.RWMutex
	loggerBufferSize = 1000
	Source           = "frankfurter-service"
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// InitLogger installs repo as the persistent sink. Until it is called, log
// lines only go to stdout and stderr.
func InitLogger(repo repository.LogRepository) {
	ch := make(chan model.Log, loggerBufferSize)
	done := make(chan struct{})

	mu.Lock()
	logRepo = repo
	logChan = ch
	logDone = done
	mu.Unlock()

	go processLogs(repo, ch, done)
}

// processLogs closes done once the last queued entry has been saved.
func processLogs(repo repository.LogRepository, ch <-chan model.Log, done chan<- struct{}) {
	defer close(done)
	for logEntry := range ch {
		if err := repo.SaveLog(context.Background(), logEntry); err != nil {
			ErrorLogger.Printf("failed to save log: %v", err)
		}
	}
}

func logAsync(level model.LogLevel, message string) {
	mu.RLock()
	ch := logChan
	if ch != nil {
		logEntry := model.Log{
			ID:        uuid.New(),
			Level:     level,
			Message:   message,
			Timestamp: time.Now(),
			Source:    Source,
		}

		select {
		case ch <- logEntry:
		default:
			ErrorLogger.Printf("log channel full. Dropping log: %v", logEntry)
		}
	}
	mu.RUnlock()

	if level == model.LogLevelInfo {
		InfoLogger.Output(3, message)
	} else {
		ErrorLogger.Output(3, message)
	}
}

func Info(v ...interface{}) {
	logAsync(model.LogLevelInfo, fmt.Sprint(v...))
}

func Infof(format string, v ...interface{}) {
	logAsync(model.LogLevelInfo, fmt.Sprintf(format, v...))
}

func Error(v ...interface{}) {
	logAsync(model.LogLevelError, fmt.Sprint(v...))
}

func Errorf(format string, v ...interface{}) {
	logAsync(model.LogLevelError, fmt.Sprintf(format, v...))
}

// Shutdown stops accepting persistent entries, waits until every queued entry
// has been saved and closes the repository.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	ch, done, repo := logChan, logDone, logRepo
	logChan, logDone, logRepo = nil, nil, nil
	mu.Unlock()

	if ch == nil {
		return nil
	}
	close(ch)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return repo.Close()
	}
}
