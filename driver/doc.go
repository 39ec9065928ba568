// Package driver defines the narrow contract between the entity registry and
// a concrete storage backend.
//
// A Driver answers attribute queries and performs the primitive mutations the
// registry needs (create, delete, list, move, copy, hide). Drivers operate on
// canonical, absolute, forward-slash paths and never see relative input; the
// registry resolves and canonicalizes paths before calling into a driver.
//
// # Implementations
//
// Two implementations ship with this module:
//
//   - driver/billy: local disk (osfs) and in-memory (memfs) backends built on
//     go-billy.
//   - driver/minio: an S3-compatible backend built on minio-go, where
//     directories are modeled as key prefixes.
//
// Every implementation is expected to pass the conformance suite in
// driver/drivertest.
//
// # Errors
//
// Drivers report missing entities through Attributes.Exists rather than an
// error. Mutations fail with the sentinels below (compare with errors.Is), and
// the registry wraps any driver error with an OPERATION_FAILED code.
package driver
