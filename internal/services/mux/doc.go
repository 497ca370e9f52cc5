// Package mux wraps the remote media platform's video API.
//
// The Client issues authenticated JSON requests for asset creation (from a URL
// or a raw manifest object), direct-upload targets, asset and upload lookups,
// and static rendition creation. Responses arrive in a {"data": ...} envelope;
// structured failures decode into *APIError so callers can surface the
// platform's messages verbatim.
//
// The client never retries. Retry policy, if any, belongs to the caller.
package mux
