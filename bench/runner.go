package bench

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/arloliu/numbench/endian"
	"github.com/arloliu/numbench/numeric"
)

// SystemVersion invalidates every cached result when the harness's
// measurement methodology changes.
const SystemVersion = "v1"

// defaultMinTotalTime is the per-operation trial budget: trials repeat
// until their cumulative duration reaches it.
const defaultMinTotalTime = time.Second

// Config controls a benchmark run.
type Config struct {
	// CacheDir holds cached results; empty disables caching.
	CacheDir string

	// Output receives progress reporting; nil runs silently.
	Output io.Writer

	// Datasets and Algorithms filter the registries by name; empty means all.
	Datasets   []string
	Algorithms []string

	// MinTotalTime overrides the per-operation trial budget.
	MinTotalTime time.Duration

	// Remote optionally shares cached results over HTTP.
	Remote *RemoteStore
}

// Result is one measured dataset/algorithm combination.
type Result struct {
	Dataset          string  `json:"dataset"`
	Algorithm        string  `json:"algorithm"`
	AlgorithmVersion string  `json:"algorithm_version"`
	DatasetVersion   string  `json:"dataset_version"`
	SystemVersion    string  `json:"system_version"`
	CompressionRatio float64 `json:"compression_ratio"`
	EncodeTime       float64 `json:"encode_time"`
	DecodeTime       float64 `json:"decode_time"`
	EncodeMBPerSec   float64 `json:"encode_mb_per_sec"`
	DecodeMBPerSec   float64 `json:"decode_mb_per_sec"`
	OriginalSize     int     `json:"original_size"`
	CompressedSize   int     `json:"compressed_size"`
	ArrayLength      int     `json:"array_length"`
	ArrayDtype       string  `json:"array_dtype"`
	Timestamp        int64   `json:"timestamp"`
}

// AlgorithmInfo describes one registered algorithm in a report.
type AlgorithmInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Tags        []string `json:"tags"`
}

// DatasetInfo describes one registered dataset in a report.
type DatasetInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Tags        []string `json:"tags"`
	Dtype       string   `json:"dtype"`
}

// Report is the outcome of one benchmark run.
type Report struct {
	RunID         string          `json:"run_id"`
	SystemVersion string          `json:"system_version"`
	Results       []Result        `json:"results"`
	Algorithms    []AlgorithmInfo `json:"algorithms"`
	Datasets      []DatasetInfo   `json:"datasets"`
}

// Run benchmarks every compatible algorithm/dataset combination and returns
// the collected results.
//
// Combinations failing verification or caching are reported in the
// aggregated error; the run continues past individual failures, and the
// returned report holds everything that succeeded.
func Run(cfg Config) (*Report, error) {
	if cfg.MinTotalTime <= 0 {
		cfg.MinTotalTime = defaultMinTotalTime
	}

	datasets := filterDatasets(Datasets(), cfg.Datasets)
	algorithms := filterAlgorithms(Algorithms(), cfg.Algorithms)

	report := &Report{
		RunID:         uuid.NewString(),
		SystemVersion: SystemVersion,
	}
	for _, alg := range algorithms {
		report.Algorithms = append(report.Algorithms, AlgorithmInfo{
			Name: alg.Name, Description: alg.Description, Version: alg.Version, Tags: alg.Tags,
		})
	}
	for _, ds := range datasets {
		report.Datasets = append(report.Datasets, DatasetInfo{
			Name: ds.Name, Description: ds.Description, Version: ds.Version,
			Tags: ds.Tags, Dtype: ds.Dtype.String(),
		})
	}

	logf(cfg.Output, "=== Starting benchmark run %s ===\n", report.RunID)

	var errs *multierror.Error
	for _, ds := range datasets {
		logf(cfg.Output, "\n*** Dataset: %s (tags: %v) ***\n", ds.Name, ds.Tags)

		// Built lazily: a fully cached dataset never materializes.
		var data *numeric.Array

		for _, alg := range algorithms {
			if !Compatible(alg, ds) {
				logf(cfg.Output, "skipping %s: incompatible with dataset tags\n", alg.Name)
				continue
			}

			result, err := runOne(&cfg, ds, alg, &data)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s on %s: %w", alg.Name, ds.Name, err))
				logf(cfg.Output, "FAILED %s: %v\n", alg.Name, err)
				continue
			}
			report.Results = append(report.Results, *result)
		}
	}

	logf(cfg.Output, "\n=== Benchmark run complete: %d results ===\n", len(report.Results))

	return report, errs.ErrorOrNil()
}

// runOne measures a single combination, consulting the local and remote
// caches first. data is the lazily built dataset array, shared across
// algorithms.
func runOne(cfg *Config, ds Dataset, alg Algorithm, data **numeric.Array) (*Result, error) {
	if cached, ok := loadCached(cfg.CacheDir, ds, alg); ok {
		logf(cfg.Output, "%s: using cached result\n", alg.Name)
		return cached, nil
	}

	if cfg.Remote != nil {
		if entry, ok := cfg.Remote.download(ds, alg); ok {
			logf(cfg.Output, "%s: using remote cached result\n", alg.Name)
			if err := storeCachedEntry(cfg.CacheDir, ds, alg, entry, nil); err != nil {
				logf(cfg.Output, "warning: failed to cache remote result: %v\n", err)
			}

			return &entry.Result, nil
		}
	}

	if *data == nil {
		arr := ds.Create()
		*data = &arr
		logf(cfg.Output, "created dataset: n=%d dtype=%s (%d bytes)\n",
			arr.Len(), arr.Dtype(), arr.ByteLen())
	}
	arr := **data

	logf(cfg.Output, "benchmarking %s (tags: %v)\n", alg.Name, alg.Tags)

	encodeTime, encodeRate, err := timedTrials(cfg.MinTotalTime, arr.ByteLen(), func() error {
		_, err := alg.Encode(arr)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	encoded, err := alg.Encode(arr)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	decodeTime, decodeRate, err := timedTrials(cfg.MinTotalTime, arr.ByteLen(), func() error {
		_, err := alg.Decode(encoded, arr.Dtype())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	decoded, err := alg.Decode(encoded, arr.Dtype())
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if !arr.Equal(decoded) {
		return nil, fmt.Errorf("verification failed: decoded array differs from input")
	}

	result := &Result{
		Dataset:          ds.Name,
		Algorithm:        alg.Name,
		AlgorithmVersion: alg.Version,
		DatasetVersion:   ds.Version,
		SystemVersion:    SystemVersion,
		CompressionRatio: float64(arr.ByteLen()) / float64(len(encoded)),
		EncodeTime:       encodeTime.Seconds(),
		DecodeTime:       decodeTime.Seconds(),
		EncodeMBPerSec:   encodeRate,
		DecodeMBPerSec:   decodeRate,
		OriginalSize:     arr.ByteLen(),
		CompressedSize:   len(encoded),
		ArrayLength:      arr.Len(),
		ArrayDtype:       arr.Dtype().String(),
		Timestamp:        time.Now().Unix(),
	}

	logf(cfg.Output, "  ratio %.2fx, encode %.2f MB/s, decode %.2f MB/s\n",
		result.CompressionRatio, result.EncodeMBPerSec, result.DecodeMBPerSec)

	digest := fmt.Sprintf("%016x", xxhash.Sum64(arr.Bytes(endian.GetLittleEndianEngine())))
	entry := &cacheEntry{Result: *result, DatasetDigest: digest}
	if err := storeCachedEntry(cfg.CacheDir, ds, alg, entry, encoded); err != nil {
		return nil, fmt.Errorf("cache store: %w", err)
	}

	if cfg.Remote != nil && cfg.Remote.uploadEnabled() {
		if err := cfg.Remote.upload(ds, alg, entry); err != nil {
			logf(cfg.Output, "warning: remote upload failed: %v\n", err)
		}
	}

	return result, nil
}

// timedTrials repeats op until the cumulative duration reaches budget and
// returns the median trial time plus throughput in MB/s for size bytes.
func timedTrials(budget time.Duration, size int, op func() error) (time.Duration, float64, error) {
	var times []time.Duration
	var total time.Duration

	for total < budget {
		start := time.Now()
		if err := op(); err != nil {
			return 0, 0, err
		}
		elapsed := time.Since(start)
		times = append(times, elapsed)
		total += elapsed
	}

	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	med := times[len(times)/2]
	if len(times)%2 == 0 {
		med = (times[len(times)/2-1] + times[len(times)/2]) / 2
	}

	sizeMB := float64(size) / (1024 * 1024)
	rate := 0.0
	if med > 0 {
		rate = sizeMB / med.Seconds()
	}

	return med, rate, nil
}

func filterDatasets(all []Dataset, names []string) []Dataset {
	if len(names) == 0 {
		return all
	}
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	out := all[:0:0]
	for _, ds := range all {
		if keep[ds.Name] {
			out = append(out, ds)
		}
	}

	return out
}

func filterAlgorithms(all []Algorithm, names []string) []Algorithm {
	if len(names) == 0 {
		return all
	}
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	out := all[:0:0]
	for _, alg := range all {
		if keep[alg.Name] {
			out = append(out, alg)
		}
	}

	return out
}

func logf(w io.Writer, format string, args ...any) {
	if w != nil {
		fmt.Fprintf(w, format, args...)
	}
}
