package config

import (
	entity "github.com/jmgilman/go/fs/entity"
	"github.com/jmgilman/go/fs/entity/driver"
	"github.com/jmgilman/go/fs/entity/driver/billy"
	"github.com/jmgilman/go/fs/entity/driver/minio"
	platformerrors "github.com/jmgilman/go/fs/entity/errors"
)

// NewDriver builds the driver named by Driver.
func (c *Config) NewDriver() (driver.Driver, error) {
	var (
		d   driver.Driver
		err error
	)

	switch c.Driver {
	case DriverLocal:
		d, err = billy.NewLocal(c.billyOptions(true)...)
	case DriverMemory:
		d, err = billy.NewMemory(c.billyOptions(false)...)
	case DriverMinIO:
		d, err = minio.New(minio.Config{
			Endpoint:           c.MinIO.Endpoint,
			Bucket:             c.MinIO.Bucket,
			AccessKey:          c.MinIO.AccessKey,
			SecretKey:          c.MinIO.SecretKey,
			UseSSL:             c.MinIO.UseSSL,
			Prefix:             c.MinIO.Prefix,
			TempPrefix:         c.MinIO.TempPrefix,
			MaxCopyConcurrency: c.MinIO.MaxCopyConcurrency,
		})
	default:
		return nil, platformerrors.WithContext(invalid("driver", "unknown driver"), "driver", c.Driver)
	}
	if err != nil {
		return nil, platformerrors.WithContext(
			platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to create driver"), "driver", c.Driver)
	}
	return d, nil
}

func (c *Config) billyOptions(local bool) []billy.Option {
	var opts []billy.Option
	if local && c.Local.Root != "" {
		opts = append(opts, billy.WithRoot(c.Local.Root))
	}
	if c.Local.TempRoot != "" {
		opts = append(opts, billy.WithTempRoot(c.Local.TempRoot))
	}
	if c.Local.WorkDir != "" {
		opts = append(opts, billy.WithWorkDir(c.Local.WorkDir))
	}
	return opts
}

// NewRegistry validates the configuration and builds a registry with its
// driver and logger.
func (c *Config) NewRegistry() (*entity.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	d, err := c.NewDriver()
	if err != nil {
		return nil, err
	}

	logger, err := c.NewLogger()
	if err != nil {
		return nil, err
	}

	return entity.NewRegistry(d,
		entity.WithLogger(logger),
		entity.WithMaxPathLength(c.Registry.MaxPathLength),
	), nil
}
