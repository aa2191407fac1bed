// Package core holds the course catalog: the Course value, the mapping from
// parsed rows to courses, the two title sorts, lookup by course id, and the
// Catalog that owns the loaded state.
//
// This package has no UI dependencies. The terminal menu and the HTTP API
// both drive the same [Catalog].
//
// # Loading
//
// [Catalog.Load] parses a delimited file with the csv package and maps each
// row to a [Course] through a [Mapping]. A load either replaces the whole
// course sequence or fails and leaves the previous one in place. Each
// successful pass gets a fresh load ID that is attached to its log entries
// and to the optional database snapshot.
//
// # Sorting
//
// [SelectionSort] and [QuickSort] both order courses by Title in place.
// Neither is stable. QuickSort partitions Hoare-style around the title of
// the middle element.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]:
//
//   - FILE001-FILE002: Unreadable or empty catalog files
//   - CSV001-CSV003: Malformed rows and bad row or column addressing
//   - CAT001-CAT003: Catalog state errors (unknown course, nothing loaded)
//   - DB004: Snapshot database unavailable
package core
