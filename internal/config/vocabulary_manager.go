package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/strokesense/orchestrator/internal/symptoms"
)

// VocabularyManager watches a vocabulary override file and atomically swaps
// the active vocabulary when it changes. Readers always see a complete,
// immutable snapshot; a broken override file keeps the previous snapshot.
type VocabularyManager struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	mu      sync.RWMutex
	current *symptoms.Vocabulary
	started bool
	stopCh  chan struct{}
}

// NewVocabularyManager loads the initial vocabulary. With an empty path the
// manager serves the built-in defaults and never watches anything.
func NewVocabularyManager(path string, logger *zap.Logger) (*VocabularyManager, error) {
	m := &VocabularyManager{
		path:    path,
		logger:  logger,
		current: symptoms.DefaultVocabulary(),
		stopCh:  make(chan struct{}),
	}
	if path == "" {
		return m, nil
	}

	vocab, err := symptoms.LoadVocabulary(path)
	if err != nil {
		return nil, fmt.Errorf("load initial vocabulary: %w", err)
	}
	m.current = vocab

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create vocabulary watcher: %w", err)
	}
	m.watcher = watcher
	return m, nil
}

// Current returns the active vocabulary snapshot.
func (m *VocabularyManager) Current() *symptoms.Vocabulary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Start begins watching the override file for changes. No-op when no file is
// configured.
func (m *VocabularyManager) Start(ctx context.Context) error {
	if m.watcher == nil {
		return nil
	}
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()

	// Watch the directory: editors replace files on save, which drops
	// file-level watches.
	if err := m.watcher.Add(filepath.Dir(m.path)); err != nil {
		return fmt.Errorf("watch vocabulary directory: %w", err)
	}

	go m.watchLoop(ctx)
	m.logger.Info("Vocabulary manager started", zap.String("path", m.path))
	return nil
}

func (m *VocabularyManager) watchLoop(ctx context.Context) {
	// Debounce bursts of write events from editors and atomic renames.
	var reloadTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(200*time.Millisecond, m.reload)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("Vocabulary watcher error", zap.Error(err))
		}
	}
}

func (m *VocabularyManager) reload() {
	vocab, err := symptoms.LoadVocabulary(m.path)
	if err != nil {
		m.logger.Warn("Vocabulary reload failed, keeping previous snapshot",
			zap.String("path", m.path),
			zap.Error(err),
		)
		return
	}

	m.mu.Lock()
	m.current = vocab
	m.mu.Unlock()

	m.logger.Info("Vocabulary reloaded",
		zap.String("path", m.path),
		zap.Int("face_phrases", len(vocab.Face)),
		zap.Int("arm_phrases", len(vocab.Arm)),
		zap.Int("speech_phrases", len(vocab.Speech)),
		zap.Int("other_phrases", len(vocab.Other)),
	)
}

// Stop stops the watcher.
func (m *VocabularyManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return nil
	}
	m.started = false
	close(m.stopCh)
	return m.watcher.Close()
}
