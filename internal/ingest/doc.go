// Package ingest turns one user-supplied input into a created remote asset.
//
// The pipeline runs in a fixed order:
//
//  1. SelectSource picks exactly one ingestion mode (remote URL, local files,
//     or JSON manifest) from the command-line inputs.
//  2. ResolveFiles expands glob patterns into a deduplicated file list, or
//     LoadManifest reads the manifest; URL mode needs neither.
//  3. The builders translate overrides and the source into request bodies.
//  4. Only then is an authenticated client obtained and the platform called.
//     Local files go through the Orchestrator, which creates one upload target
//     per file and streams the bytes sequentially, aborting the whole batch on
//     the first failure.
//  5. With Wait set, the readiness package polls until processing finishes.
//
// Everything before step 4 is local, so misuse is diagnosed without spending
// API quota. Upload batches that fail part-way leave earlier upload targets on
// the platform; nothing is rolled back.
package ingest
