package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/strokesense/orchestrator/internal/symptoms"
)

func writeVocab(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVocabularyManagerDefaultsWithoutPath(t *testing.T) {
	m, err := NewVocabularyManager("", zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, m.Start(context.Background()))
	assert.Equal(t, symptoms.DefaultVocabulary(), m.Current())
	require.NoError(t, m.Stop())
}

func TestVocabularyManagerInitialLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	writeVocab(t, path, "face:\n  - cheek sagging\n")

	m, err := NewVocabularyManager(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Stop() })

	vocab := m.Current()
	assert.Equal(t, []string{"cheek sagging"}, vocab.Face)
	// Categories the override leaves out keep the defaults.
	assert.Equal(t, symptoms.DefaultVocabulary().Arm, vocab.Arm)
}

func TestVocabularyManagerMissingFile(t *testing.T) {
	_, err := NewVocabularyManager(filepath.Join(t.TempDir(), "nope.yaml"), zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestVocabularyManagerHotReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	writeVocab(t, path, "face:\n  - cheek sagging\n")

	m, err := NewVocabularyManager(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))
	t.Cleanup(func() { _ = m.Stop() })

	writeVocab(t, path, "face:\n  - cheek sagging\n  - lopsided grin\n")

	require.Eventually(t, func() bool {
		return len(m.Current().Face) == 2
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, []string{"cheek sagging", "lopsided grin"}, m.Current().Face)
}

func TestVocabularyManagerKeepsSnapshotOnBadReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	writeVocab(t, path, "face:\n  - cheek sagging\n")

	m, err := NewVocabularyManager(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))
	t.Cleanup(func() { _ = m.Stop() })

	before := m.Current()
	writeVocab(t, path, "face: [broken")

	// The broken file is rejected; the previous snapshot stays active.
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, before, m.Current())
}
