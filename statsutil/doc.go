// Package statsutil provides small, allocation-conscious statistics and
// bookkeeping helpers shared by the rest of the module: running summary
// statistics, percentile/CDF extraction, an LRU cache, a fixed-size
// circular buffer, and threshold/timeout-based change enforcement.
package statsutil
