// Package bench is the benchmark harness: it runs every compatible
// algorithm/dataset combination, measures encode and decode throughput,
// verifies bit-exact reconstruction and caches results.
//
// Datasets are synthetic, seeded and versioned; algorithms are named
// encoder configurations over the container format plus their versions.
// Tag-based compatibility keeps transforms away from data they cannot
// help with: algorithms tagged with delta or predictive transforms only
// run against datasets tagged "continuous".
//
// Results are cached under cacheDir/<dataset>/<algorithm>/ as a
// metadata.json plus the compressed container, and invalidated whenever
// the algorithm, dataset or harness version changes. An optional remote
// store shares cached results between machines over HTTP.
package bench
