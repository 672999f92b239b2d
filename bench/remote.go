package bench

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

// RemoteStore shares cached benchmark results between machines through a
// simple HTTP blob store: metadata is GET/PUT at a path derived from the
// combination and the versions involved, so stale entries are simply never
// requested.
type RemoteStore struct {
	// BaseURL is the root of the blob store, e.g. "https://store.example.com".
	BaseURL string

	// UserID and APIKey authenticate uploads. Downloads are anonymous.
	UserID string
	APIKey string

	// Client overrides the HTTP client; nil uses a 30-second-timeout default.
	Client *http.Client
}

func (r *RemoteStore) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}

	return &http.Client{Timeout: 30 * time.Second}
}

// uploadEnabled reports whether the store has upload credentials.
func (r *RemoteStore) uploadEnabled() bool {
	return r.APIKey != ""
}

// entryURL derives the blob path for one combination. The versions are part
// of the path, so a version bump naturally misses the old entry.
func (r *RemoteStore) entryURL(ds Dataset, alg Algorithm) string {
	key := fmt.Sprintf("%s_%s_%s", alg.Version, ds.Version, SystemVersion)

	return fmt.Sprintf("%s/numbench/%s/%s/%s/%s",
		r.BaseURL, url.PathEscape(ds.Name), url.PathEscape(alg.Name), key, metadataFileName)
}

// download fetches the cached entry for the combination, returning ok=false
// on any miss or transport failure. Remote lookups are best-effort; a miss
// just means the benchmark runs locally.
func (r *RemoteStore) download(ds Dataset, alg Algorithm) (*cacheEntry, bool) {
	resp, err := r.client().Get(r.entryURL(ds, alg))
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
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

	return &entry, true
}

// upload publishes a cached entry to the store.
func (r *RemoteStore) upload(ds Dataset, alg Algorithm, entry *cacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, r.entryURL(ds, alg), bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", r.UserID)
	req.Header.Set("X-Api-Key", r.APIKey)

	resp, err := r.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote store returned status %s", resp.Status)
	}

	return nil
}
