// Package remote defines the client the sync worker pushes through. The
// core only depends on the Client interface; the S3 implementation is one
// adapter, the presentation shell may supply any other document store.
package remote

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable: the remote store could not be reached. The worker
	// leaves rows unsynced and retries on the next trigger.
	ErrUnavailable = errors.New("remote store unavailable")
	// ErrRejected: the remote store refused the document. Also retried
	// next trigger; never surfaced to gameplay.
	ErrRejected = errors.New("remote store rejected document")
	// ErrNotFound: no document under that collection/id.
	ErrNotFound = errors.New("remote document not found")
)

// Client is an idempotent remote document store keyed by collection and
// entity id. Put is an upsert of the document's full content, so retries
// and duplicate pushes are always safe.
type Client interface {
	Put(ctx context.Context, collection, id string, doc any) error
	Get(ctx context.Context, collection, id string, out any) error
}
