package hostdata

import "errors"

var (
	// ErrNilSource is returned when Load receives no source.
	ErrNilSource = errors.New("hostdata: source is nil")
	// ErrHTTPDisabled is returned for URL sources when no HTTP client is configured.
	ErrHTTPDisabled = errors.New("hostdata: http support disabled")
	// ErrNoFileSystem is returned for fs sources without a configured fs.FS.
	ErrNoFileSystem = errors.New("hostdata: filesystem is not configured")
	// ErrEmptySnapshot is returned when a source yields no bytes.
	ErrEmptySnapshot = errors.New("hostdata: snapshot is empty")
	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("hostdata: duplicate record id")
)
