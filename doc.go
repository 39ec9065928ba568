// Package entity provides a path-addressed, reference-counted object model
// over a filesystem.
//
// Every file or directory is represented by at most one in-process entity
// while it is referenced. Callers obtain entities from a Registry, which
// canonicalizes paths, deduplicates concurrent lookups, and shares one entity
// between every holder of the same path. Each entity caches the attribute
// flags observed at its last query or mutation and serializes its own
// state changes behind a lock.
//
// Basic usage:
//
//	d, _ := billy.NewMemory()
//	reg := entity.NewRegistry(d)
//
//	f, err := reg.File("/data/report.txt")
//	if err != nil {
//	    return err
//	}
//	defer f.Release()
//
//	if !f.Exists() {
//	    if err := f.Create(entity.Readable | entity.Writable); err != nil {
//	        return err
//	    }
//	}
//
// # Handles and Lifetime
//
// Registry lookups return handles. A handle is one reference to the shared
// entity; Retain produces another and Release drops one. When the last handle
// is released the registry forgets the entity. If the entity was created as a
// temporary (see Registry.CreateTemporary) it is destroyed on disk first.
//
// # Kinds
//
// An entity is a file or a directory, fixed when the registry first resolves
// the path. File and Directory wrap a Handle and add the operations only
// meaningful for that kind. Requesting an existing path as the other kind
// fails with TYPE_MISMATCH.
//
// # Errors
//
// All failures are platform errors from the errors package. Use
// errors.GetCode or errors.HasCode to inspect them:
//
//	if errors.HasCode(err, errors.CodeNotFound) { ... }
//
// Driver failures are reported as OPERATION_FAILED and keep the
// classification of their cause, so transient object-store failures remain
// retryable.
package entity
