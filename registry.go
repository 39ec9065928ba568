package entity

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jmgilman/go/fs/entity/driver"
	platformerrors "github.com/jmgilman/go/fs/entity/errors"
	"github.com/jmgilman/go/fs/entity/internal/pathutil"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxPathLength is the longest canonical path a registry accepts
// unless configured otherwise.
const DefaultMaxPathLength = 4096

// Registry maps canonical paths to shared entities. It is the only way to
// obtain an entity and guarantees at most one live entity per path.
//
// A Registry is safe for concurrent use. Its map lock is never held across a
// driver call.
type Registry struct {
	driver        driver.Driver
	logger        *zap.Logger
	maxPathLength int

	mu      sync.Mutex
	entries map[string]*entry
	loads   singleflight.Group
}

// entry counts the live handles of one entity.
type entry struct {
	e    *entity
	refs int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for resolution, eviction and cleanup
// events. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxPathLength limits the length of canonical paths. Longer paths fail
// with INVALID_INPUT. Values below 1 are ignored.
func WithMaxPathLength(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxPathLength = n
		}
	}
}

// NewRegistry creates a registry backed by d.
func NewRegistry(d driver.Driver, opts ...Option) *Registry {
	r := &Registry{
		driver:        d,
		logger:        zap.NewNop(),
		maxPathLength: DefaultMaxPathLength,
		entries:       make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Driver returns the driver backing the registry.
func (r *Registry) Driver() driver.Driver {
	return r.driver
}

// Len returns the number of entities currently referenced.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Get returns a handle to the entity at path, resolving it on first use.
// Relative paths are resolved against the driver's current directory.
//
// Concurrent calls for the same path share a single attribute query and
// receive handles to the same entity. Get fails with TYPE_MISMATCH if the
// path is already registered, or present on disk, as the other kind.
func (r *Registry) Get(path string, kind Kind) (*Handle, error) {
	p, err := r.resolve(opGet, path, kind)
	if err != nil {
		return nil, err
	}
	return r.acquire(opGet, p, kind, nil)
}

// File returns a handle to the file at path.
func (r *Registry) File(path string) (*File, error) {
	h, err := r.Get(path, KindFile)
	if err != nil {
		return nil, err
	}
	return &File{Handle: h}, nil
}

// Directory returns a handle to the directory at path.
func (r *Registry) Directory(path string) (*Directory, error) {
	h, err := r.Get(path, KindDirectory)
	if err != nil {
		return nil, err
	}
	return &Directory{Handle: h}, nil
}

// Lookup returns a handle to whatever exists at path, taking the kind from
// the registry or, for unregistered paths, from the driver. It fails with
// NOT_FOUND when nothing exists there.
func (r *Registry) Lookup(path string) (*Handle, error) {
	p, err := r.resolve(opGet, path, KindFile)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	ent, ok := r.entries[pathutil.Key(p)]
	r.mu.Unlock()
	if ok {
		return r.acquire(opGet, ent.e.path, ent.e.kind, nil)
	}

	attrs, err := r.driver.QueryAttributes(p)
	if err != nil {
		return nil, driverError(err, opGet, p)
	}
	if !attrs.Exists {
		return nil, notFound(opGet, p)
	}

	kind := kindOf(attrs)
	return r.acquire(opGet, pathutil.Canonicalize(p, kind.isDir()), kind, &attrs)
}

// CreateTemporary creates name inside the driver's temp root and returns a
// handle to it. The entity is created readable, writable and temporary: it
// is destroyed when its last handle is released.
//
// It fails with ALREADY_EXISTS if name is taken.
func (r *Registry) CreateTemporary(name string, kind Kind) (*Handle, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, invalidInput(opTemp, name, "temporary name must be a single path segment")
	}

	root, err := r.driver.TempRoot()
	if err != nil {
		return nil, driverError(err, opTemp, name)
	}

	h, err := r.Get(pathutil.Join(root, name), kind)
	if err != nil {
		return nil, err
	}

	if err := h.e.create(Readable | Writable | Temporary); err != nil {
		_ = h.Release()
		return nil, err
	}
	return h, nil
}

// CreateTemporaryUnique is CreateTemporary with a random name beginning with
// prefix.
func (r *Registry) CreateTemporaryUnique(prefix string, kind Kind) (*Handle, error) {
	return r.CreateTemporary(prefix+uuid.NewString(), kind)
}

// TempDirectory returns a handle to the driver's temp root.
func (r *Registry) TempDirectory() (*Directory, error) {
	root, err := r.driver.TempRoot()
	if err != nil {
		return nil, driverError(err, opGet, "")
	}
	return r.Directory(root)
}

// CurrentDirectory returns a handle to the driver's working directory.
func (r *Registry) CurrentDirectory() (*Directory, error) {
	wd, err := r.driver.CurrentDirectory()
	if err != nil {
		return nil, driverError(err, opGet, "")
	}
	return r.Directory(wd)
}

// resolve turns raw into a canonical absolute path of the given kind.
func (r *Registry) resolve(op, raw string, kind Kind) (string, error) {
	if raw == "" {
		return "", invalidInput(op, raw, "path is empty")
	}

	if !pathutil.IsAbs(raw) {
		wd, err := r.driver.CurrentDirectory()
		if err != nil {
			return "", driverError(err, op, raw)
		}
		raw = pathutil.Join(wd, raw)
	}

	p := pathutil.Canonicalize(raw, kind.isDir())
	if len(p) > r.maxPathLength {
		return "", invalidInput(op, p, fmt.Sprintf("path exceeds %d characters", r.maxPathLength))
	}
	return p, nil
}

// acquire returns a new handle for the canonical path p, loading the entity
// if it is not registered. attrs, when given, replaces the attribute query.
func (r *Registry) acquire(op, p string, kind Kind, attrs *driver.Attributes) (*Handle, error) {
	key := pathutil.Key(p)

	for {
		r.mu.Lock()
		if ent, ok := r.entries[key]; ok {
			if ent.e.kind != kind {
				r.mu.Unlock()
				return nil, typeMismatch(op, p, kind, ent.e.kind)
			}
			ent.refs++
			r.mu.Unlock()

			if attrs != nil {
				ent.e.observe(*attrs)
			}
			return newHandle(ent.e), nil
		}
		r.mu.Unlock()

		// Loaders insert the entity without a reference; every caller,
		// including the loader, then takes its own on the next pass.
		_, err, _ := r.loads.Do(key+"|"+kind.String(), func() (interface{}, error) {
			return nil, r.load(op, key, p, kind, attrs)
		})
		if err != nil {
			return nil, err
		}
		attrs = nil
	}
}

func (r *Registry) load(op, key, p string, kind Kind, attrs *driver.Attributes) error {
	r.mu.Lock()
	_, ok := r.entries[key]
	r.mu.Unlock()
	if ok {
		return nil
	}

	var observed driver.Attributes
	if attrs != nil {
		observed = *attrs
	} else {
		var err error
		observed, err = r.driver.QueryAttributes(p)
		if err != nil {
			return driverError(err, op, p)
		}
	}

	if observed.Exists && kindOf(observed) != kind {
		return typeMismatch(op, p, kind, kindOf(observed))
	}

	e := newEntity(r, p, kind, flagsOf(observed))

	r.mu.Lock()
	if _, ok := r.entries[key]; !ok {
		r.entries[key] = &entry{e: e}
	}
	r.mu.Unlock()

	r.logger.Debug("entity resolved",
		zap.String("path", p),
		zap.Stringer("kind", kind),
		zap.Bool("exists", observed.Exists),
	)
	return nil
}

// retain adds a reference to e. An evicted entity is registered again if
// its path is free.
func (r *Registry) retain(e *entity) *Handle {
	key := pathutil.Key(e.path)

	r.mu.Lock()
	defer r.mu.Unlock()

	ent, ok := r.entries[key]
	switch {
	case ok && ent.e == e:
		ent.refs++
	case !ok:
		r.entries[key] = &entry{e: e, refs: 1}
	}
	return newHandle(e)
}

// release drops one reference to e. Dropping the last one destroys a
// temporary entity and evicts the entry.
func (r *Registry) release(e *entity) error {
	key := pathutil.Key(e.path)

	r.mu.Lock()
	ent, ok := r.entries[key]
	if !ok || ent.e != e {
		r.mu.Unlock()
		return nil
	}
	ent.refs--
	if ent.refs > 0 {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	err := r.cleanup(e)

	r.mu.Lock()
	evicted := false
	if cur, ok := r.entries[key]; ok && cur == ent && ent.refs <= 0 {
		delete(r.entries, key)
		evicted = true
	}
	r.mu.Unlock()

	if evicted {
		r.logger.Debug("entity evicted", zap.String("path", e.path))
	}
	return err
}

// cleanup destroys e if it is an existing temporary. Failures, including
// panics inside the driver, are logged and returned.
func (r *Registry) cleanup(e *entity) (err error) {
	if !e.loadFlags().Has(Temporary | Exists) {
		return nil
	}

	defer func() {
		if p := recover(); p != nil {
			err = newError(platformerrors.CodeInternal, opCleanup, e.path, fmt.Sprintf("temporary cleanup panicked: %v", p))
		}
		if err != nil {
			r.logger.Error("temporary cleanup failed",
				zap.String("path", e.path),
				platformerrors.Field(err),
			)
		}
	}()

	return e.destroy()
}
