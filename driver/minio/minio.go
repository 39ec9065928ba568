package minio

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmgilman/go/fs/entity/driver"
	"github.com/jmgilman/go/fs/entity/internal/pathutil"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTempPrefix      = "tmp"
	defaultCopyConcurrency = 10
)

// Driver implements driver.Driver for MinIO/S3-compatible storage.
type Driver struct {
	client          *minio.Client
	bucket          string
	prefix          string // Optional prefix for all keys
	tempRoot        string // Canonical temp directory
	copyConcurrency int    // Max concurrent copies for directory moves
}

var _ driver.Driver = (*Driver)(nil)

// New creates a MinIO-backed driver.
// Returns error if configuration is invalid or the client cannot be built.
// No request is made until the driver is used.
func New(cfg Config) (*Driver, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	tempPrefix := normalizePrefix(cfg.TempPrefix)
	if tempPrefix == "" {
		tempPrefix = defaultTempPrefix
	}

	concurrency := cfg.MaxCopyConcurrency
	if concurrency == 0 {
		concurrency = defaultCopyConcurrency
	}

	return &Driver{
		client:          client,
		bucket:          cfg.Bucket,
		prefix:          normalizePrefix(cfg.Prefix),
		tempRoot:        pathutil.Canonicalize("/"+tempPrefix, true),
		copyConcurrency: concurrency,
	}, nil
}

// Client returns the underlying MinIO client.
func (d *Driver) Client() *minio.Client {
	return d.client
}

// Type returns driver.TypeRemote.
func (d *Driver) Type() driver.Type {
	return driver.TypeRemote
}

// CurrentDirectory returns "/". Object stores have no working directory.
func (d *Driver) CurrentDirectory() (string, error) {
	return "/", nil
}

// TempRoot returns the temp directory, creating its marker on first use.
func (d *Driver) TempRoot() (string, error) {
	attrs, err := d.QueryAttributes(d.tempRoot)
	if err != nil {
		return "", err
	}
	if !attrs.Exists {
		err := d.putMarker(d.tempRoot, driver.CreateOptions{Readable: true, Writable: true})
		if err != nil {
			return "", pathError("mkdir", d.tempRoot, err)
		}
	}
	return d.tempRoot, nil
}

// QueryAttributes returns the state of p. A file and a directory can share a
// location on an object store; the spelling of p decides which is checked
// first.
func (d *Driver) QueryAttributes(p string) (driver.Attributes, error) {
	if pathutil.IsRoot(p) {
		return driver.Attributes{Exists: true, IsDir: true, Readable: true, Writable: true}, nil
	}

	ctx := context.Background()
	if strings.HasSuffix(p, "/") {
		attrs, err := d.dirAttributes(ctx, p)
		if err != nil || attrs.Exists {
			return attrs, err
		}
		return d.fileAttributes(ctx, p)
	}

	attrs, err := d.fileAttributes(ctx, p)
	if err != nil || attrs.Exists {
		return attrs, err
	}
	return d.dirAttributes(ctx, p)
}

func (d *Driver) fileAttributes(ctx context.Context, p string) (driver.Attributes, error) {
	info, err := d.client.StatObject(ctx, d.bucket, d.fileKey(p), minio.StatObjectOptions{})
	if err != nil {
		if isNotExist(err) {
			return driver.Attributes{}, nil
		}
		return driver.Attributes{}, pathError("stat", p, translate(err))
	}

	attrs := attributesFromMeta(p, info.UserMetadata)
	attrs.Size = info.Size
	return attrs, nil
}

func (d *Driver) dirAttributes(ctx context.Context, p string) (driver.Attributes, error) {
	key := d.dirKey(p)

	info, err := d.client.StatObject(ctx, d.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		attrs := attributesFromMeta(p, info.UserMetadata)
		attrs.IsDir = true
		return attrs, nil
	}
	if !isNotExist(err) {
		return driver.Attributes{}, pathError("stat", p, translate(err))
	}

	// No marker; the directory may still exist implicitly
	found, err := d.hasObjects(ctx, key)
	if err != nil || !found {
		return driver.Attributes{}, pathError("stat", p, err)
	}
	return driver.Attributes{
		Exists:   true,
		IsDir:    true,
		Readable: true,
		Writable: true,
		Hidden:   dotName(p),
	}, nil
}

func attributesFromMeta(p string, meta map[string]string) driver.Attributes {
	attrs := driver.Attributes{Exists: true, Readable: true, Writable: true}
	if access, ok := metaValue(meta, metaAccess); ok {
		attrs.Readable = strings.Contains(access, "r")
		attrs.Writable = strings.Contains(access, "w")
	}
	hidden, _ := metaValue(meta, metaHidden)
	attrs.Hidden = dotName(p) || hidden == "true"
	return attrs
}

func (d *Driver) hasObjects(ctx context.Context, prefix string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for object := range d.client.ListObjects(ctx, d.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
		MaxKeys:   1,
	}) {
		if object.Err != nil {
			return false, translate(object.Err)
		}
		return true, nil
	}
	return false, nil
}

// CreateFile uploads an empty object with access metadata.
func (d *Driver) CreateFile(p string, opts driver.CreateOptions) error {
	if err := d.checkCreate(p); err != nil {
		return err
	}
	return pathError("create", p, d.put(d.fileKey(p), opts))
}

// CreateDirectory uploads a directory marker.
func (d *Driver) CreateDirectory(p string, opts driver.CreateOptions) error {
	if err := d.checkCreate(p); err != nil {
		return err
	}
	return pathError("mkdir", p, d.putMarker(p, opts))
}

func (d *Driver) putMarker(p string, opts driver.CreateOptions) error {
	return d.put(d.dirKey(p), opts)
}

func (d *Driver) put(key string, opts driver.CreateOptions) error {
	meta := map[string]string{metaAccess: accessValue(opts.Readable, opts.Writable)}
	if opts.Hidden {
		meta[metaHidden] = "true"
	}

	_, err := d.client.PutObject(context.Background(), d.bucket, key, bytes.NewReader(nil), 0,
		minio.PutObjectOptions{UserMetadata: meta})
	return translate(err)
}

// DeleteFile removes a file object.
func (d *Driver) DeleteFile(p string) error {
	attrs, err := d.QueryAttributes(pathutil.Key(p))
	if err != nil {
		return err
	}
	if !attrs.Exists || attrs.IsDir {
		return pathError("remove", p, driver.ErrNotExist)
	}

	err = d.client.RemoveObject(context.Background(), d.bucket, d.fileKey(p), minio.RemoveObjectOptions{})
	return pathError("remove", p, translate(err))
}

// DeleteDirectory removes an empty directory's marker.
func (d *Driver) DeleteDirectory(p string) error {
	if pathutil.IsRoot(p) {
		return pathError("remove", p, driver.ErrPermission)
	}

	names, err := d.ListDirectory(p)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return pathError("remove", p, driver.ErrNotEmpty)
	}

	err = d.client.RemoveObject(context.Background(), d.bucket, d.dirKey(p), minio.RemoveObjectOptions{})
	return pathError("remove", p, translate(err))
}

// ListDirectory lists the immediate children of p. Directory names keep
// their trailing "/".
func (d *Driver) ListDirectory(p string) ([]string, error) {
	attrs, err := d.QueryAttributes(pathutil.Canonicalize(p, true))
	if err != nil {
		return nil, err
	}
	if !attrs.Exists || !attrs.IsDir {
		return nil, pathError("readdir", p, driver.ErrNotExist)
	}

	key := d.dirKey(p)
	var names []string
	for object := range d.client.ListObjects(context.Background(), d.bucket, minio.ListObjectsOptions{
		Prefix:    key,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, pathError("readdir", p, translate(object.Err))
		}

		// Skip the directory marker itself
		if object.Key == key {
			continue
		}

		if name := strings.TrimPrefix(object.Key, key); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Move copies src to dst and removes the originals.
func (d *Driver) Move(src, dst string) error {
	return d.relocate("rename", src, dst, true)
}

// Copy duplicates src at dst.
func (d *Driver) Copy(src, dst string) error {
	return d.relocate("copy", src, dst, false)
}

func (d *Driver) relocate(op, src, dst string, remove bool) error {
	srcAttrs, err := d.QueryAttributes(src)
	if err != nil {
		return err
	}
	if !srcAttrs.Exists {
		return pathError(op, src, driver.ErrNotExist)
	}

	dstAttrs, err := d.QueryAttributes(dst)
	if err != nil {
		return err
	}
	if dstAttrs.Exists {
		return pathError(op, dst, driver.ErrExist)
	}
	if err := d.checkParent(op, dst); err != nil {
		return err
	}

	ctx := context.Background()
	if !srcAttrs.IsDir {
		return pathError(op, src, d.copyFile(ctx, d.fileKey(src), d.fileKey(dst), remove))
	}

	copied, err := d.parallelCopy(ctx, d.dirKey(src), d.dirKey(dst))
	if err != nil {
		return pathError(op, src, translate(err))
	}
	if !remove {
		return nil
	}
	return pathError(op, src, d.removeKeys(ctx, copied))
}

// copyFile copies a single object, keeping its metadata.
func (d *Driver) copyFile(ctx context.Context, srcKey, dstKey string, remove bool) error {
	srcOpts := minio.CopySrcOptions{Bucket: d.bucket, Object: srcKey}
	dstOpts := minio.CopyDestOptions{Bucket: d.bucket, Object: dstKey}

	if _, err := d.client.CopyObject(ctx, dstOpts, srcOpts); err != nil {
		return translate(err)
	}
	if !remove {
		return nil
	}
	return translate(d.client.RemoveObject(ctx, d.bucket, srcKey, minio.RemoveObjectOptions{}))
}

// parallelCopy copies objects from old to new prefix using a worker pool.
// Returns the list of successfully copied object keys for cleanup.
func (d *Driver) parallelCopy(ctx context.Context, oldPrefix, newPrefix string) ([]string, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(d.copyConcurrency)

	var copiedMu sync.Mutex
	var copied []string

	for object := range d.client.ListObjects(egCtx, d.bucket, minio.ListObjectsOptions{
		Prefix:    oldPrefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			_ = eg.Wait()
			return copied, object.Err
		}

		objectKey := object.Key
		eg.Go(func() error {
			newKey := newPrefix + strings.TrimPrefix(objectKey, oldPrefix)

			src := minio.CopySrcOptions{Bucket: d.bucket, Object: objectKey}
			dst := minio.CopyDestOptions{Bucket: d.bucket, Object: newKey}
			if _, err := d.client.CopyObject(egCtx, dst, src); err != nil {
				return fmt.Errorf("copy object %s to %s: %w", objectKey, newKey, err)
			}

			copiedMu.Lock()
			copied = append(copied, objectKey)
			copiedMu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return copied, err
	}
	return copied, nil
}

func (d *Driver) removeKeys(ctx context.Context, keys []string) error {
	toDelete := make(chan minio.ObjectInfo, len(keys))
	go func() {
		defer close(toDelete)
		for _, key := range keys {
			toDelete <- minio.ObjectInfo{Key: key}
		}
	}()

	for err := range d.client.RemoveObjects(ctx, d.bucket, toDelete, minio.RemoveObjectsOptions{}) {
		if err.Err != nil {
			// Copy succeeded but delete failed - partial state
			return translate(err.Err)
		}
	}
	return nil
}

// SetHidden rewrites the object's metadata in place. An implicit directory
// gains a marker.
func (d *Driver) SetHidden(p string, hidden bool) error {
	attrs, err := d.QueryAttributes(p)
	if err != nil {
		return err
	}
	if !attrs.Exists {
		return pathError("chattr", p, driver.ErrNotExist)
	}
	if attrs.Hidden == hidden {
		return nil
	}
	if !hidden && dotName(p) {
		return pathError("chattr", p, driver.ErrUnsupported)
	}

	key := d.fileKey(p)
	if attrs.IsDir {
		key = d.dirKey(p)
	}

	ctx := context.Background()
	if _, err := d.client.StatObject(ctx, d.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNotExist(err) && attrs.IsDir {
			return pathError("chattr", p, d.put(key, driver.CreateOptions{
				Readable: true, Writable: true, Hidden: hidden,
			}))
		}
		return pathError("chattr", p, translate(err))
	}

	meta := map[string]string{
		metaAccess: accessValue(attrs.Readable, attrs.Writable),
	}
	if hidden {
		meta[metaHidden] = "true"
	}

	_, err = d.client.CopyObject(ctx,
		minio.CopyDestOptions{
			Bucket:          d.bucket,
			Object:          key,
			UserMetadata:    meta,
			ReplaceMetadata: true,
		},
		minio.CopySrcOptions{Bucket: d.bucket, Object: key},
	)
	return pathError("chattr", p, translate(err))
}

func (d *Driver) checkCreate(p string) error {
	if pathutil.IsRoot(p) {
		return pathError("create", p, driver.ErrExist)
	}

	attrs, err := d.QueryAttributes(p)
	if err != nil {
		return err
	}
	if attrs.Exists {
		return pathError("create", p, driver.ErrExist)
	}
	return d.checkParent("create", p)
}

// checkParent enforces POSIX parent semantics on top of implicit prefixes.
func (d *Driver) checkParent(op, p string) error {
	parent, err := pathutil.Parent(p)
	if err != nil || pathutil.IsRoot(parent) {
		return nil
	}

	attrs, err := d.QueryAttributes(parent)
	if err != nil {
		return err
	}
	if !attrs.Exists || !attrs.IsDir {
		return pathError(op, parent, driver.ErrNotExist)
	}
	return nil
}
