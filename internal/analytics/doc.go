// Package analytics derives reporting aggregates from imported sales
// records: the by-amount/by-quantity product merge, fixed time-band
// bucketing of hourly transactions, daily and weekday aggregates, and
// the descriptive statistics (best/worst/most-consistent buckets,
// month-over-month growth, top-N rankings) behind the analytics views.
//
// Everything here is a pure function over its inputs; the one mutable
// structure is the merge accumulator, scoped to a single MergeProducts
// call.
package analytics
