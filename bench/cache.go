package bench

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Cache layout: cacheDir/<dataset>/<algorithm>/metadata.json holds the
// cacheEntry; compressed.dat next to it holds the container bytes.
const (
	metadataFileName   = "metadata.json"
	compressedFileName = "compressed.dat"
)

// cacheEntry is the on-disk cached result for one combination.
type cacheEntry struct {
	Result        Result `json:"result"`
	DatasetDigest string `json:"dataset_digest,omitempty"`
}

func cachePath(cacheDir string, ds Dataset, alg Algorithm) string {
	return filepath.Join(cacheDir, ds.Name, alg.Name)
}

// loadCached returns the locally cached result for the combination, if one
// exists and its versions still match the registries.
func loadCached(cacheDir string, ds Dataset, alg Algorithm) (*Result, bool) {
	if cacheDir == "" {
		return nil, false
	}

	raw, err := os.ReadFile(filepath.Join(cachePath(cacheDir, ds, alg), metadataFileName))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	if !entryCurrent(&entry, ds, alg) {
		return nil, false
	}

	return &entry.Result, true
}

// entryCurrent checks a cached result's versions against the registries.
func entryCurrent(entry *cacheEntry, ds Dataset, alg Algorithm) bool {
	return entry.Result.AlgorithmVersion == alg.Version &&
		entry.Result.DatasetVersion == ds.Version &&
		entry.Result.SystemVersion == SystemVersion
}

// storeCachedEntry writes the metadata and, when provided, the compressed
// container to the local cache. A disabled cache is a no-op.
func storeCachedEntry(cacheDir string, ds Dataset, alg Algorithm, entry *cacheEntry, compressed []byte) error {
	if cacheDir == "" {
		return nil
	}

	dir := cachePath(cacheDir, ds, alg)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFileName), raw, 0o644); err != nil {
		return err
	}

	if compressed != nil {
		if err := os.WriteFile(filepath.Join(dir, compressedFileName), compressed, 0o644); err != nil {
			return err
		}
	}

	return nil
}
