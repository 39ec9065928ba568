package entity

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/jmgilman/go/fs/entity/driver"
	platformerrors "github.com/jmgilman/go/fs/entity/errors"
	"github.com/jmgilman/go/fs/entity/internal/pathutil"
)

// entity is the shared state behind every handle to one canonical path.
// path and kind never change; flags is guarded by mu.
type entity struct {
	path string
	kind Kind
	reg  *Registry

	mu    sync.Mutex
	flags Flags
}

func newEntity(reg *Registry, path string, kind Kind, flags Flags) *entity {
	return &entity{
		path:  path,
		kind:  kind,
		reg:   reg,
		flags: flags,
	}
}

func (e *entity) drv() driver.Driver {
	return e.reg.driver
}

func (e *entity) loadFlags() Flags {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flags
}

// observe replaces cached flags with a fresh driver observation. The
// Temporary bit is owned by the registry and survives.
func (e *entity) observe(attrs driver.Attributes) {
	if attrs.Exists && kindOf(attrs) != e.kind {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.flags = flagsOf(attrs) | e.flags&Temporary
}

func (e *entity) create(flags Flags) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.flags.Has(Exists) {
		return alreadyExists(opCreate, e.path)
	}

	var err error
	switch e.kind {
	case KindFile:
		err = e.drv().CreateFile(e.path, createOptions(flags))
	case KindDirectory:
		err = e.drv().CreateDirectory(e.path, createOptions(flags))
	}
	if err != nil {
		return driverError(err, opCreate, e.path)
	}

	e.flags = flags | Exists
	return nil
}

func (e *entity) destroy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.flags.Has(Exists) {
		return notFound(opDestroy, e.path)
	}

	var err error
	switch e.kind {
	case KindFile:
		err = e.drv().DeleteFile(e.path)
	case KindDirectory:
		if err := e.destroyChildren(); err != nil {
			return err
		}
		err = e.drv().DeleteDirectory(e.path)
	}
	if err != nil {
		return driverError(err, opDestroy, e.path)
	}

	e.flags = 0
	return nil
}

// destroyChildren removes every child before the directory itself. It stops
// at the first failure; children destroyed before it stay destroyed. Errors
// from releasing the child handles are joined into the result.
func (e *entity) destroyChildren() (err error) {
	children, err := e.children()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := ReleaseAll(children); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	for _, child := range children {
		if err := child.e.destroy(); err != nil {
			return platformerrors.WrapWithContext(err, platformerrors.GetCode(err), "child destroy failed", map[string]interface{}{
				"op":    opDestroy,
				"path":  e.path,
				"child": child.e.path,
			})
		}
	}
	return nil
}

func (e *entity) setHidden(hidden bool) error {
	op := opShow
	if hidden {
		op = opHide
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.flags.Has(Exists) {
		return notFound(op, e.path)
	}
	if err := e.drv().SetHidden(e.path, hidden); err != nil {
		return driverError(err, op, e.path)
	}

	if hidden {
		e.flags |= Hidden
	} else {
		e.flags &^= Hidden
	}
	return nil
}

// relocate moves or copies the entity to dst and returns a handle for the
// destination. A move leaves this entity nonexistent.
func (e *entity) relocate(op, raw string) (*Handle, error) {
	dst, err := e.reg.resolve(op, raw, e.kind)
	if err != nil {
		return nil, err
	}

	if dst == e.path && op == opMove {
		if !e.loadFlags().Has(Exists) {
			return nil, notFound(op, e.path)
		}
		return e.reg.retain(e), nil
	}

	// Resolve the destination first so a kind conflict fails before the
	// driver touches anything.
	h, err := e.reg.acquire(op, dst, e.kind, nil)
	if err != nil {
		return nil, err
	}

	if err := e.relocateLocked(op, dst); err != nil {
		_ = h.Release()
		return nil, err
	}

	// The destination may have been cached before it existed
	if err := h.e.refresh(); err != nil {
		_ = h.Release()
		return nil, err
	}
	return h, nil
}

func (e *entity) relocateLocked(op, dst string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.flags.Has(Exists) {
		return notFound(op, e.path)
	}

	if op == opMove {
		if err := e.drv().Move(e.path, dst); err != nil {
			return driverError(err, op, e.path)
		}
		e.flags = 0
		return nil
	}

	if err := e.drv().Copy(e.path, dst); err != nil {
		return driverError(err, op, e.path)
	}
	return nil
}

func (e *entity) refresh() error {
	attrs, err := e.drv().QueryAttributes(e.path)
	if err != nil {
		return driverError(err, opRefresh, e.path)
	}
	if attrs.Exists && kindOf(attrs) != e.kind {
		return typeMismatch(opRefresh, e.path, e.kind, kindOf(attrs))
	}

	e.observe(attrs)
	return nil
}

func (e *entity) size() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.flags.Has(Exists) {
		return 0, notFound(opSize, e.path)
	}

	attrs, err := e.drv().QueryAttributes(e.path)
	if err != nil {
		return 0, driverError(err, opSize, e.path)
	}
	if !attrs.Exists {
		e.flags &= Temporary
		return 0, notFound(opSize, e.path)
	}
	return attrs.Size, nil
}

// children lists the directory and resolves a handle per child. Callers
// must release the returned handles.
func (e *entity) children() ([]*Handle, error) {
	names, err := e.drv().ListDirectory(e.path)
	if err != nil {
		return nil, driverError(err, opChildren, e.path)
	}
	slices.Sort(names)

	handles := make([]*Handle, 0, len(names))
	for _, name := range names {
		name = strings.TrimSuffix(name, pathutil.Separator)
		if name == "" || name == "." || name == ".." {
			continue
		}

		p := pathutil.Join(e.path, name)
		attrs, err := e.drv().QueryAttributes(p)
		if err != nil {
			_ = ReleaseAll(handles)
			return nil, driverError(err, opChildren, p)
		}
		if !attrs.Exists {
			// Removed between listing and query
			continue
		}

		kind := kindOf(attrs)
		h, err := e.reg.acquire(opChildren, pathutil.Canonicalize(p, kind.isDir()), kind, &attrs)
		if err != nil {
			_ = ReleaseAll(handles)
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}
