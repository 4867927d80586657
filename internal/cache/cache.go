// Package cache implements the checksum-guarded persisted cache of
// per-module tagging results. A hashicorp/golang-lru front keeps
// recently-touched records warm in process; an optional minio-go remote
// backend lets the cache document live in an S3-compatible bucket instead
// of local disk.
package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/minio/minio-go/v7"

	"github.com/metrodecomp/metrodecomp/internal/graph"
	"github.com/metrodecomp/metrodecomp/internal/module"
)

// ChecksumMismatchError reports a cache whose stored checksum doesn't
// match the bundle currently being processed; the cache is simply
// discarded.
type ChecksumMismatchError struct {
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("cache checksum mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// CachedModule is one module's persisted tagging result.
type CachedModule struct {
	ModuleID      int      `json:"moduleId"`
	OriginalCode  string   `json:"originalCode"`
	Tags          []string `json:"tags"`
	IsNpmModule   bool     `json:"isNpmModule"`
	NpmModuleName string   `json:"npmModuleName"`
	Ignored       bool     `json:"ignored"`
}

// Document is the persisted cache format, `{ checksum, inputChecksum?,
// modules }`, stored at `<out>/<entry-or-null>.cache`.
type Document struct {
	Checksum      string         `json:"checksum"`
	InputChecksum string         `json:"inputChecksum,omitempty"`
	Modules       []CachedModule `json:"modules"`
}

// Checksum computes the collision-resistant digest of the full bundle
// text that guards every cache load.
func Checksum(bundleText string) string {
	sum := sha256.Sum256([]byte(bundleText))
	return hex.EncodeToString(sum[:])
}

// Store is the cache's in-process front (an LRU of recently-loaded
// documents keyed by cache key) sitting in front of a persistence backend.
type Store struct {
	hot     *lru.Cache[string, *Document]
	backend Backend
}

// Backend abstracts where the serialized cache document is read from and
// written to: local disk by default, or an S3-compatible remote bucket
// swapped in by --cacheBucket.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// NewStore builds a Store with an in-process LRU of the given size
// fronting backend.
func NewStore(backend Backend, lruSize int) (*Store, error) {
	if lruSize <= 0 {
		lruSize = 8
	}
	hot, err := lru.New[string, *Document](lruSize)
	if err != nil {
		return nil, err
	}
	return &Store{hot: hot, backend: backend}, nil
}

// Load reads the cache document for key, validating it against
// bundleChecksum. On digest mismatch it returns a *ChecksumMismatchError
// and the caller proceeds as if no cache were present.
func (s *Store) Load(ctx context.Context, key string, bundleChecksum string) (*Document, error) {
	if doc, ok := s.hot.Get(key); ok {
		if doc.Checksum != bundleChecksum {
			return nil, &ChecksumMismatchError{Expected: bundleChecksum, Actual: doc.Checksum}
		}
		return doc, nil
	}

	data, err := s.backend.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Checksum != bundleChecksum {
		return nil, &ChecksumMismatchError{Expected: bundleChecksum, Actual: doc.Checksum}
	}
	s.hot.Add(key, &doc)
	return &doc, nil
}

// BuildDocument snapshots g's per-module tagging fields into a Document,
// ready for Save.
func BuildDocument(g *graph.Graph, bundleChecksum string) *Document {
	doc := &Document{Checksum: bundleChecksum}
	for _, m := range g.All() {
		tags := make([]string, 0, len(m.Tags))
		for t := range m.Tags {
			tags = append(tags, t)
		}
		doc.Modules = append(doc.Modules, CachedModule{
			ModuleID:      m.ID,
			OriginalCode:  m.OriginalCode,
			Tags:          tags,
			IsNpmModule:   m.IsNpmModule,
			NpmModuleName: m.NpmModuleName,
			Ignored:       m.Ignored,
		})
	}
	return doc
}

// SaveDocument persists an already-built Document.
func (s *Store) SaveDocument(ctx context.Context, key string, doc *Document) error {
	return s.saveDocument(ctx, key, doc)
}

func (s *Store) saveDocument(ctx context.Context, key string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	s.hot.Add(key, doc)
	return s.backend.Save(ctx, key, data)
}

// ApplyAggressive applies a cached module's tagging flags onto g, and —
// when the cached record says the module was ignored and not an NPM
// module — registers it with a stub factory so dependency resolution
// still works without re-parsing its (possibly large) body.
func ApplyAggressive(g *graph.Graph, cached CachedModule) {
	m, ok := g.Get(cached.ModuleID)
	if !ok {
		m = stubModule(cached)
		g.Adopt(m)
	}
	m.IsNpmModule = cached.IsNpmModule
	m.NpmModuleName = cached.NpmModuleName
	for _, t := range cached.Tags {
		m.Tag(t, nil)
	}
	if cached.Ignored {
		m.Ignore("aggressive cache: cached as ignored")
	}
}

func stubModule(cached CachedModule) *module.Module {
	m := &module.Module{
		ID:            cached.ModuleID,
		OriginalCode:  cached.OriginalCode,
		Tags:          map[string]bool{},
		TagParameters: map[string]interface{}{},
	}
	return m
}

// LocalBackend persists the cache document as a single file on disk.
type LocalBackend struct {
	Dir string
}

func (b *LocalBackend) Load(_ context.Context, key string) ([]byte, error) {
	return os.ReadFile(b.path(key))
}

func (b *LocalBackend) Save(_ context.Context, key string, data []byte) error {
	return os.WriteFile(b.path(key), data, 0o644)
}

func (b *LocalBackend) path(key string) string {
	return b.Dir + "/" + key + ".cache"
}

// RemoteBackend persists the cache document as a single object in an
// S3-compatible bucket, for teams that want decompilation caches shared
// across CI runners rather than local to one machine (--cacheBucket).
type RemoteBackend struct {
	Client *minio.Client
	Bucket string
}

func (b *RemoteBackend) Load(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.Client.GetObject(ctx, b.Bucket, b.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func (b *RemoteBackend) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.Client.PutObject(ctx, b.Bucket, b.objectName(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (b *RemoteBackend) objectName(key string) string {
	return key + ".cache"
}
