package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// TextCache stores extracted text by blob identity.
type TextCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, text string) error
}

// BlobKey identifies a blob by content hash and declared format.
func BlobKey(content []byte, format models.DocumentFormat) string {
	sum := sha256.Sum256(content)
	return string(format) + ":" + hex.EncodeToString(sum[:])
}

type cachedExtractor struct {
	next  TextExtractor
	cache TextCache
}

// NewCachedExtractor skips re-extraction of a blob that was already seen.
// Failures are not cached and cache errors never fail an extraction.
func NewCachedExtractor(next TextExtractor, cache TextCache) TextExtractor {
	return &cachedExtractor{next: next, cache: cache}
}

func (c *cachedExtractor) Extract(ctx context.Context, content []byte, format models.DocumentFormat) (string, error) {
	if len(content) == 0 {
		return c.next.Extract(ctx, content, format)
	}

	key := BlobKey(content, format)
	text, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.WithError(err).Warn("⚠️ Text cache lookup failed")
	} else if ok {
		log.WithField("key", key).Debug("Text cache hit")
		return text, nil
	}

	text, err = c.next.Extract(ctx, content, format)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, text); err != nil {
		log.WithError(err).Warn("⚠️ Text cache store failed")
	}
	return text, nil
}

type memoryEntry struct {
	text      string
	expiresAt time.Time
}

type memoryTextCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryTextCache keeps up to maxEntries texts in process memory. When full,
// the entry closest to expiry is evicted.
func NewMemoryTextCache(ttl time.Duration, maxEntries int) TextCache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &memoryTextCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *memoryTextCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if m.ttl > 0 && !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return "", false, nil
	}
	return entry.text, true, nil
}

func (m *memoryTextCache) Set(_ context.Context, key, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evictOldest()
	}
	m.entries[key] = memoryEntry{text: text, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *memoryTextCache) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, entry := range m.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = key, entry.expiresAt
		}
	}
	delete(m.entries, oldestKey)
}

// ValkeyTextCache shares extracted text between API instances.
type ValkeyTextCache struct {
	client valkey.Client
	ttl    time.Duration
	prefix string
}

func NewValkeyTextCache(ctx context.Context, address, password string, ttl time.Duration) (*ValkeyTextCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping Valkey: %w", err)
	}

	return &ValkeyTextCache{client: client, ttl: ttl, prefix: "resume-reviewer:text:"}, nil
}

func (v *ValkeyTextCache) Close() {
	v.client.Close()
}

func (v *ValkeyTextCache) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := v.client.B().Get().Key(v.prefix + key).Build()
	text, err := v.client.Do(ctx, cmd).ToString()
	if valkey.IsValkeyNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("unable to read cached text: %w", err)
	}
	return text, true, nil
}

func (v *ValkeyTextCache) Set(ctx context.Context, key, text string) error {
	seconds := int64(v.ttl / time.Second)

	var cmd valkey.Completed
	if seconds > 0 {
		cmd = v.client.B().Set().Key(v.prefix + key).Value(text).ExSeconds(seconds).Build()
	} else {
		cmd = v.client.B().Set().Key(v.prefix + key).Value(text).Build()
	}

	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("unable to cache text: %w", err)
	}
	return nil
}
