package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clickexp/clickexp/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingParser counts calls to the wrapped parser
type countingParser struct {
	inner Parser
	calls int
}

func (p *countingParser) Parse(path string, limit int) ([]*SearchSession, error) {
	p.calls++
	return p.inner.Parse(path, limit)
}

func TestNewCacheManager(t *testing.T) {
	cm := NewCacheManager("/test/cache")
	if cm.GetCacheDir() != "/test/cache" {
		t.Errorf("GetCacheDir() = %q, want %q", cm.GetCacheDir(), "/test/cache")
	}
	if got, want := cm.GetIndexPath(), filepath.Join("/test/cache", "sessions.yaml"); got != want {
		t.Errorf("GetIndexPath() = %q, want %q", got, want)
	}
	if got, want := cm.GetDataPath("abc"), filepath.Join("/test/cache", "sessions_abc.msgpack"); got != want {
		t.Errorf("GetDataPath() = %q, want %q", got, want)
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("train.tsv", 10), CacheKey("train.tsv", 10))
	assert.NotEqual(t, CacheKey("train.tsv", 10), CacheKey("train.tsv", 0))
	assert.NotEqual(t, CacheKey("a.tsv", 0), CacheKey("b.tsv", 0))
	assert.Len(t, CacheKey("train.tsv", 0), 16)
}

func TestCacheManager_SaveAndLoadSessions(t *testing.T) {
	tmpDir := testutil.CreateTempDir(t)
	logPath := testutil.WriteSampleLog(t, tmpDir)
	cm := NewCacheManager(filepath.Join(tmpDir, "cache"))

	valid, err := cm.IsCacheValid(logPath, 0)
	require.NoError(t, err)
	assert.False(t, valid, "empty cache must not be valid")

	sessions, err := ParseYandexLog(logPath, 0)
	require.NoError(t, err)
	require.NoError(t, cm.SaveSessions(logPath, 0, sessions))

	valid, err = cm.IsCacheValid(logPath, 0)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, _ = cm.IsCacheValid(logPath, 5)
	assert.False(t, valid, "other limits are cached separately")

	loaded, err := cm.LoadSessions(logPath, 0)
	require.NoError(t, err)
	assert.Equal(t, sessions, loaded)

	index, err := cm.LoadIndex()
	require.NoError(t, err)
	assert.Equal(t, cacheVersion, index.Version)
	require.Len(t, index.Entries, 1)
	assert.Equal(t, 8, index.Entries[0].SessionCount)

	// saving again replaces the entry
	require.NoError(t, cm.SaveSessions(logPath, 0, sessions[:2]))
	index, err = cm.LoadIndex()
	require.NoError(t, err)
	require.Len(t, index.Entries, 1)
	assert.Equal(t, 2, index.Entries[0].SessionCount)
}

func TestCacheManager_InvalidatedByModification(t *testing.T) {
	tmpDir := testutil.CreateTempDir(t)
	logPath := testutil.WriteSampleLog(t, tmpDir)
	cm := NewCacheManager(filepath.Join(tmpDir, "cache"))

	require.NoError(t, cm.SaveSessions(logPath, 0, nil))

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(logPath, later, later))

	valid, err := cm.IsCacheValid(logPath, 0)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestCacheManager_ClearCache(t *testing.T) {
	tmpDir := testutil.CreateTempDir(t)
	logPath := testutil.WriteSampleLog(t, tmpDir)
	cm := NewCacheManager(filepath.Join(tmpDir, "cache"))

	// clearing an empty cache is fine
	require.NoError(t, cm.ClearCache())

	require.NoError(t, cm.SaveSessions(logPath, 0, nil))
	require.NoError(t, cm.ClearCache())

	assert.False(t, FileExists(cm.GetIndexPath()))
	assert.False(t, FileExists(cm.GetDataPath(CacheKey(logPath, 0))))
}

func TestCacheManager_LoadSessionsMissing(t *testing.T) {
	cm := NewCacheManager(testutil.CreateTempDir(t))

	_, err := cm.LoadSessions("train.tsv", 0)
	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "read", storageErr.Op)
}

func TestCachingParser(t *testing.T) {
	tmpDir := testutil.CreateTempDir(t)
	logPath := testutil.WriteSampleLog(t, tmpDir)
	inner := &countingParser{inner: NewYandexParser()}
	parser := NewCachingParser(inner, NewCacheManager(filepath.Join(tmpDir, "cache")))

	first, err := parser.Parse(logPath, 0)
	require.NoError(t, err)
	second, err := parser.Parse(logPath, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "second parse is served from the cache")
	assert.Equal(t, first, second)

	_, err = parser.Parse(logPath, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachingParser_PropagatesParseErrors(t *testing.T) {
	parser := NewCachingParser(NewYandexParser(), NewCacheManager(testutil.CreateTempDir(t)))

	_, err := parser.Parse("/nonexistent/train.tsv", 0)
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestCachingParser_UnwritableCache(t *testing.T) {
	tmpDir := testutil.CreateTempDir(t)
	logPath := testutil.WriteSampleLog(t, tmpDir)
	// the cache dir is a file, so every save fails
	blocker := testutil.WriteFile(t, tmpDir, "blocker", "x")
	parser := NewCachingParser(NewYandexParser(), NewCacheManager(blocker))

	sessions, err := parser.Parse(logPath, 0)
	require.NoError(t, err)
	assert.Len(t, sessions, 8)
}
