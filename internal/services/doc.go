// Package services implements HTTP clients for the movie tracker backend.
//
// Two layers are provided:
//
//   - [APIService] : a raw adapter over the backend's REST surface. It performs one
//     exchange per call against a fixed base URL, parses JSON bodies when present,
//     and reports only the transport outcome; HTTP status interpretation is the
//     caller's responsibility.
//   - [LibraryService] : a typed client implementing [Service]. It maps each backend
//     endpoint to a domain operation returning structs from internal/models, and
//     translates backend error payloads into sentinel-wrapped errors from
//     internal/shared.
//
// Neither layer retries, imposes timeouts, or caches; cancellation flows through
// the caller's context.
package services
