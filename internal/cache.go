package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

const cacheVersion = "1.0"

// CacheManager keeps parsed session logs on disk so that a multi-model run
// parses each log only once
type CacheManager struct {
	cacheDir string
}

// CacheEntry describes one cached parse result
type CacheEntry struct {
	Key          string    `yaml:"key"`
	LogFile      string    `yaml:"log_file"`
	LogModTime   time.Time `yaml:"log_mod_time"`
	SessionLimit int       `yaml:"session_limit"`
	SessionCount int       `yaml:"session_count"`
	DataFile     string    `yaml:"data_file"`
	CreatedAt    time.Time `yaml:"created_at"`
}

// CacheIndex is the YAML index of all cached logs
type CacheIndex struct {
	Version string       `yaml:"version"`
	Entries []CacheEntry `yaml:"entries"`
}

// NewCacheManager creates a new cache manager
func NewCacheManager(cacheDir string) *CacheManager {
	return &CacheManager{
		cacheDir: cacheDir,
	}
}

// EnsureCacheDir ensures the cache directory exists
func (cm *CacheManager) EnsureCacheDir() error {
	_, err := EnsureDir(cm.cacheDir)
	return err
}

// GetCacheDir returns the cache directory path
func (cm *CacheManager) GetCacheDir() string {
	return cm.cacheDir
}

// GetIndexPath returns the path to the cache index YAML file
func (cm *CacheManager) GetIndexPath() string {
	return filepath.Join(cm.cacheDir, "sessions.yaml")
}

// GetDataPath returns the path to the msgpack file of a cache key
func (cm *CacheManager) GetDataPath(key string) string {
	return filepath.Join(cm.cacheDir, fmt.Sprintf("sessions_%s.msgpack", key))
}

// CacheKey derives the cache key of a (log file, limit) pair
func CacheKey(logFile string, limit int) string {
	abs, err := filepath.Abs(logFile)
	if err != nil {
		abs = logFile
	}
	h := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d", abs, limit)))
	return hex.EncodeToString(h[:8])
}

// LoadIndex loads the cache index
func (cm *CacheManager) LoadIndex() (*CacheIndex, error) {
	data, err := os.ReadFile(cm.GetIndexPath())
	if err != nil {
		return nil, err
	}

	var index CacheIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}

	return &index, nil
}

// SaveIndex saves the cache index
func (cm *CacheManager) SaveIndex(index *CacheIndex) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	return os.WriteFile(cm.GetIndexPath(), data, 0644)
}

func (cm *CacheManager) findEntry(key string) (*CacheEntry, error) {
	index, err := cm.LoadIndex()
	if err != nil {
		return nil, err
	}
	for i := range index.Entries {
		if index.Entries[i].Key == key {
			return &index.Entries[i], nil
		}
	}
	return nil, nil
}

// IsCacheValid checks whether sessions of logFile parsed with limit are
// cached and the log has not been modified since
func (cm *CacheManager) IsCacheValid(logFile string, limit int) (bool, error) {
	if _, err := os.Stat(cm.GetIndexPath()); os.IsNotExist(err) {
		return false, nil
	}

	entry, err := cm.findEntry(CacheKey(logFile, limit))
	if err != nil || entry == nil {
		return false, nil
	}

	logInfo, err := os.Stat(logFile)
	if err != nil {
		return false, nil
	}
	if !entry.LogModTime.Equal(logInfo.ModTime()) {
		return false, nil
	}

	if _, err := os.Stat(cm.GetDataPath(entry.Key)); err != nil {
		return false, nil
	}

	return true, nil
}

// LoadSessions loads cached sessions of logFile parsed with limit
func (cm *CacheManager) LoadSessions(logFile string, limit int) ([]*SearchSession, error) {
	path := cm.GetDataPath(CacheKey(logFile, limit))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}

	var sessions []*SearchSession
	if err := msgpack.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}

	return sessions, nil
}

// SaveSessions stores sessions of logFile parsed with limit and updates the index
func (cm *CacheManager) SaveSessions(logFile string, limit int, sessions []*SearchSession) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	logInfo, err := os.Stat(logFile)
	if err != nil {
		return err
	}

	key := CacheKey(logFile, limit)
	data, err := msgpack.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	if err := os.WriteFile(cm.GetDataPath(key), data, 0644); err != nil {
		return &StorageError{Path: cm.GetDataPath(key), Op: "write", Err: err}
	}

	index, err := cm.LoadIndex()
	if err != nil || index == nil || index.Version != cacheVersion {
		index = &CacheIndex{Version: cacheVersion}
	}

	entry := CacheEntry{
		Key:          key,
		LogFile:      logFile,
		LogModTime:   logInfo.ModTime(),
		SessionLimit: limit,
		SessionCount: len(sessions),
		DataFile:     filepath.Base(cm.GetDataPath(key)),
		CreatedAt:    time.Now(),
	}

	found := false
	for i := range index.Entries {
		if index.Entries[i].Key == key {
			index.Entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		index.Entries = append(index.Entries, entry)
	}

	return cm.SaveIndex(index)
}

// ClearCache clears the cache
func (cm *CacheManager) ClearCache() error {
	index, err := cm.LoadIndex()
	if err == nil {
		for _, entry := range index.Entries {
			_ = os.Remove(cm.GetDataPath(entry.Key))
		}
	}

	if err := os.Remove(cm.GetIndexPath()); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// CachingParser serves sessions from a CacheManager and falls back to the
// wrapped Parser on a miss. Cache failures never fail a parse.
type CachingParser struct {
	parser Parser
	cache  *CacheManager
}

// NewCachingParser wraps parser with cache
func NewCachingParser(parser Parser, cache *CacheManager) *CachingParser {
	return &CachingParser{parser: parser, cache: cache}
}

// Parse implements Parser
func (cp *CachingParser) Parse(path string, limit int) ([]*SearchSession, error) {
	if valid, _ := cp.cache.IsCacheValid(path, limit); valid {
		sessions, err := cp.cache.LoadSessions(path, limit)
		if err == nil {
			LogDebug("Loaded %d session(s) of %s from cache", len(sessions), path)
			return sessions, nil
		}
		LogWarn("Failed to load cache: %v, parsing...", err)
	}

	sessions, err := cp.parser.Parse(path, limit)
	if err != nil {
		return nil, err
	}

	if err := cp.cache.SaveSessions(path, limit, sessions); err != nil {
		LogWarn("Failed to save cache: %v", err)
	}
	return sessions, nil
}
