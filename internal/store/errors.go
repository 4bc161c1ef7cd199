package store

import "errors"

// Sentinel errors returned by the store lifecycle and data operations.
// Callers match them with errors.Is; engine failures are wrapped with
// operation context and surface as their own kind.
var (
	// ErrStoreInvalid reports that an existing file failed schema
	// validation on open. The connection is closed before it is returned.
	ErrStoreInvalid = errors.New("store failed schema validation")

	// ErrStoreOpen reports a Create or Open call on a handle that already
	// holds a connection.
	ErrStoreOpen = errors.New("store is already open")

	// ErrStoreNotOpen reports an operation on a handle with no connection.
	ErrStoreNotOpen = errors.New("store is not open")

	// ErrUnknownTable reports a table name outside the catalog.
	ErrUnknownTable = errors.New("unknown table")

	// ErrFieldCount reports an insert whose field and value lists do not
	// pair up positionally.
	ErrFieldCount = errors.New("field and value counts differ")

	// ErrImportSource reports a bulk-import path that does not exist or is
	// not a regular file.
	ErrImportSource = errors.New("import source is not a readable file")
)
