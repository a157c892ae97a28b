// Package ingestion reads feed items and prepares them for scoring.
//
// A FeedClient fetches and parses RSS/Atom feeds; each entry becomes a
// core.Item through ItemFromFeed, and entries missing a title, link or
// description are dropped before they can reach scoring. A Filter keeps
// the items that opt in through their categories or keywords and then
// shuffles the survivors so channel order does not bias what comes next.
//
// The Pipeline runs feed fetches and article downloads on a worker pool
// that may be shared with scoring. Article pages are reduced to plain
// text by a Cleaner with per-channel extraction rules. Failures on a
// single item are recorded on the item as a *core.PipelineError and
// never abort the batch.
package ingestion
