// Package readiness waits for platform-owned resources to finish asynchronous
// processing.
//
// A Poller repeatedly invokes an injected FetchFunc until the resource reports
// a terminal status (ready, errored, skipped) or the wall-clock deadline is
// reached. The first fetch happens immediately, so a resource that is already
// terminal costs no sleep. The deadline is measured from the first fetch, which
// means slow fetches consume the remaining budget.
//
// Asset, rendition, and upload polling share the algorithm and differ only in
// their Settings.
package readiness
