package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metrodecomp/metrodecomp/internal/graph"
	"github.com/metrodecomp/metrodecomp/internal/module"
)

func TestChecksumIsDeterministicAndContentSensitive(t *testing.T) {
	a := Checksum("var a = 1;")
	b := Checksum("var a = 1;")
	c := Checksum("var a = 2;")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestLocalBackendRoundTripsThroughStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(&LocalBackend{Dir: dir}, 8)
	require.NoError(t, err)

	checksum := Checksum("var a = 1;")
	doc := &Document{Checksum: checksum, Modules: []CachedModule{
		{ModuleID: 1, OriginalCode: "x", Tags: []string{"react-component"}},
	}}
	require.NoError(t, store.SaveDocument(context.Background(), "entry-1", doc))

	// A fresh Store forces a backend read instead of serving from the LRU.
	reloaded, err := NewStore(&LocalBackend{Dir: dir}, 8)
	require.NoError(t, err)
	loaded, err := reloaded.Load(context.Background(), "entry-1", checksum)
	require.NoError(t, err)
	assert.Equal(t, checksum, loaded.Checksum)
	require.Len(t, loaded.Modules, 1)
	assert.Equal(t, 1, loaded.Modules[0].ModuleID)
	assert.Equal(t, []string{"react-component"}, loaded.Modules[0].Tags)
}

func TestLoadReturnsChecksumMismatchError(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(&LocalBackend{Dir: dir}, 8)
	require.NoError(t, err)

	doc := &Document{Checksum: "old-checksum"}
	require.NoError(t, store.SaveDocument(context.Background(), "entry-1", doc))

	fresh, err := NewStore(&LocalBackend{Dir: dir}, 8)
	require.NoError(t, err)
	_, err = fresh.Load(context.Background(), "entry-1", "new-checksum")
	require.Error(t, err)
	var mismatch *ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "new-checksum", mismatch.Expected)
	assert.Equal(t, "old-checksum", mismatch.Actual)
}

func TestLoadServesFromHotCacheWithoutBackendRead(t *testing.T) {
	store, err := NewStore(&LocalBackend{Dir: t.TempDir()}, 8)
	require.NoError(t, err)
	checksum := Checksum("x")
	doc := &Document{Checksum: checksum}
	require.NoError(t, store.SaveDocument(context.Background(), "k", doc))

	loaded, err := store.Load(context.Background(), "k", checksum)
	require.NoError(t, err)
	assert.Same(t, doc, loaded)
}

func TestBuildDocumentSnapshotsModuleTaggingFields(t *testing.T) {
	g := &graph.Graph{}
	m := &module.Module{
		ID:            3,
		OriginalCode:  "source text",
		Tags:          map[string]bool{"react-component": true},
		TagParameters: map[string]interface{}{},
		IsNpmModule:   true,
		NpmModuleName: "left-pad",
		Ignored:       true,
	}
	g.Adopt(m)

	doc := BuildDocument(g, "checksum-value")
	assert.Equal(t, "checksum-value", doc.Checksum)
	require.Len(t, doc.Modules, 1)
	cm := doc.Modules[0]
	assert.Equal(t, 3, cm.ModuleID)
	assert.Equal(t, "source text", cm.OriginalCode)
	assert.Equal(t, []string{"react-component"}, cm.Tags)
	assert.True(t, cm.IsNpmModule)
	assert.Equal(t, "left-pad", cm.NpmModuleName)
	assert.True(t, cm.Ignored)
}

func TestApplyAggressiveUpdatesExistingModule(t *testing.T) {
	g := &graph.Graph{}
	m := &module.Module{ID: 5, Tags: map[string]bool{}, TagParameters: map[string]interface{}{}}
	g.Adopt(m)

	ApplyAggressive(g, CachedModule{ModuleID: 5, IsNpmModule: true, NpmModuleName: "lodash", Ignored: true, Tags: []string{"structural:lodash.isEqual"}})

	got, _ := g.Get(5)
	assert.True(t, got.IsNpmModule)
	assert.Equal(t, "lodash", got.NpmModuleName)
	assert.True(t, got.Ignored)
	assert.True(t, got.Tags["structural:lodash.isEqual"])
}

func TestApplyAggressiveAdoptsStubForMissingModule(t *testing.T) {
	g := &graph.Graph{}
	ApplyAggressive(g, CachedModule{ModuleID: 7, OriginalCode: "stub source", Ignored: true})

	got, ok := g.Get(7)
	require.True(t, ok)
	assert.Equal(t, "stub source", got.OriginalCode)
	assert.True(t, got.Ignored)
}

func TestLocalBackendLoadMissingFileReturnsError(t *testing.T) {
	b := &LocalBackend{Dir: t.TempDir()}
	_, err := b.Load(context.Background(), "nonexistent")
	require.Error(t, err)
}
