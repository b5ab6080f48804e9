package reportstore

import "errors"

// ErrInvalidDocument marks a report document that cannot be decoded at
// all. Fetches skip such rows; ingest reports them per document.
var ErrInvalidDocument = errors.New("invalid report document")
