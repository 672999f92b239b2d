package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCombination() (Dataset, Algorithm) {
	ds := Dataset{Name: "test-ds", Version: "1"}
	alg := Algorithm{Name: "test-alg", Version: "2"}

	return ds, alg
}

func testEntry(ds Dataset, alg Algorithm) *cacheEntry {
	return &cacheEntry{
		Result: Result{
			Dataset:          ds.Name,
			Algorithm:        alg.Name,
			AlgorithmVersion: alg.Version,
			DatasetVersion:   ds.Version,
			SystemVersion:    SystemVersion,
			CompressionRatio: 3.5,
			OriginalSize:     1000,
			CompressedSize:   285,
		},
		DatasetDigest: "00000000deadbeef",
	}
}

func TestCacheStoreAndLoad(t *testing.T) {
	dir := t.TempDir()
	ds, alg := testCombination()
	entry := testEntry(ds, alg)

	require.NoError(t, storeCachedEntry(dir, ds, alg, entry, []byte{1, 2, 3}))

	raw, err := os.ReadFile(filepath.Join(dir, ds.Name, alg.Name, compressedFileName))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, raw)

	got, ok := loadCached(dir, ds, alg)
	require.True(t, ok)
	require.Equal(t, entry.Result, *got)
}

func TestCacheMissOnVersionChange(t *testing.T) {
	dir := t.TempDir()
	ds, alg := testCombination()
	require.NoError(t, storeCachedEntry(dir, ds, alg, testEntry(ds, alg), nil))

	t.Run("algorithm version bump", func(t *testing.T) {
		bumped := alg
		bumped.Version = "3"
		_, ok := loadCached(dir, ds, bumped)
		require.False(t, ok)
	})

	t.Run("dataset version bump", func(t *testing.T) {
		bumped := ds
		bumped.Version = "2"
		_, ok := loadCached(dir, bumped, alg)
		require.False(t, ok)
	})
}

func TestCacheMissOnCorruptMetadata(t *testing.T) {
	dir := t.TempDir()
	ds, alg := testCombination()

	path := cachePath(dir, ds, alg)
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, metadataFileName), []byte("{broken"), 0o644))

	_, ok := loadCached(dir, ds, alg)
	require.False(t, ok)
}

func TestCacheDisabled(t *testing.T) {
	ds, alg := testCombination()

	require.NoError(t, storeCachedEntry("", ds, alg, testEntry(ds, alg), nil))
	_, ok := loadCached("", ds, alg)
	require.False(t, ok)
}
