// Package pnlyzer provides the engine behind the `pnla` command-line tool:
// it merges chunked transaction-history CSV files into a single logical
// dataset and computes a statistical performance report over it.
//
// The core functionalities include:
//   - Chunk Discovery: Locating chunk files by naming convention
//     (chunk_1.csv, chunk_2.csv, ...) and ordering them numerically, or
//     accepting an explicit, ordered file list.
//   - Streaming Ingestion: Reading each chunk row by row against a fixed
//     header contract, validating rows into Records, and tallying rejected
//     rows per chunk so data quality is never silently lost.
//   - Aggregation: Folding every accepted Record into a single Accumulator
//     in one forward pass, with constant work per record for totals,
//     win/loss counts, and per-day, per-hour, per-month and per-type
//     buckets.
//   - Reporting: Deriving a read-only Report (summary statistics,
//     percentiles, time analysis, revenue breakdown per type, per-chunk
//     contribution) from the finalized Accumulator.
//   - Export: Serializing the Report to a deterministic JSON document.
//
// The pipeline is single-threaded and single-pass: inputs of several
// million rows are processed within memory bounded by the number of
// accepted rows (exact percentile mode) or by a fixed sample size
// (approximate mode).
package pnlyzer
