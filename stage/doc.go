// Package stage is the optional staged-apply persistence layer: a
// search/replace run's edits are recorded as a Stage row before being
// committed, so `sgrep apply <stage-id>` can commit a previously-planned
// batch of edits without recomputing it. Store.Revert only marks an Apply
// as reverted; no CLI command restores files.
//
// Persistence is via gorm + gorm.io/driver/sqlite, optionally pointed at a
// remote libsql DSN instead of a local file.
package stage
