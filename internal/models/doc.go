// Package models defines domain entities and persistence interfaces for the movie suggestor client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs mirroring the backend's JSON surface
//   - [Candidate] : A search match not yet committed to the collection
//   - [CollectionEntry] : A committed movie in the user's collection
//   - [Recommendation] : A scored suggestion with match confidence and rationale
//   - [MovieDetail] : The full per-movie record fetched on demand
//   - [ImportResult] : Outcome of a CSV upload including per-row errors
//
// 2. Persistent Entities: Local history rows with full lifecycle management
//   - [WatchRecord] : A movie the client committed, journaled locally
//   - [ImportRun] : A CSV import the client performed
//
// Persistent entities implement the Model interface providing ID generation, timestamps,
// validation, and soft delete support. The Repository[T] interface defines standard CRUD
// operations for database access.
package models
