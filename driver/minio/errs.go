package minio

import (
	"errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/jmgilman/go/fs/entity/driver"
	platformerrors "github.com/jmgilman/go/fs/entity/errors"
	"github.com/minio/minio-go/v7"
)

// translate converts MinIO errors to driver sentinels. Transport failures
// become retryable platform errors.
func translate(err error) error {
	if err == nil {
		return nil
	}

	errResp := minio.ToErrorResponse(err)
	switch errResp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return driver.ErrNotExist
	case "AccessDenied":
		return driver.ErrPermission
	case "SlowDown", "ServiceUnavailable":
		return platformerrors.Wrap(err, platformerrors.CodeUnavailable, "object store unavailable")
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return platformerrors.Wrap(err, platformerrors.CodeTimeout, "object store request timed out")
		}
		return platformerrors.Wrap(err, platformerrors.CodeNetwork, "object store unreachable")
	}

	return fmt.Errorf("minio: %w", err)
}

// pathError wraps an error in a fs.PathError for the given operation and path.
// If the error is nil, returns nil.
func pathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}

func isNotExist(err error) bool {
	return errors.Is(translate(err), driver.ErrNotExist)
}
