package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	stdnet "headless/std/net"
)

// Fetcher retrieves network resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

// Document is a loaded input. Its content is kept so callers can report on
// it, but nothing interprets it.
type Document struct {
	URI         string
	Content     []byte
	ContentType string
}

// Op is the loading step that failed.
type Op string

const (
	OpOpen Op = "open"
	OpRead Op = "read"
)

// LoadError reports which step of loading a document failed.
type LoadError struct {
	Op  Op
	URI string
	Err error
}

func (e *LoadError) Error() string { return e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads documents from the filesystem, or over the network when the
// URI is an http(s) URL and a Fetcher is configured.
type Loader struct {
	fetcher Fetcher
}

// NewLoader creates a Loader. A nil fetcher restricts loading to local files.
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load opens uri and reads it to the end.
func (l *Loader) Load(ctx context.Context, uri string) (*Document, error) {
	if stdnet.IsNetworkURL(uri) {
		return l.fetch(ctx, uri)
	}

	f, err := os.Open(uri)
	if err != nil {
		return nil, &LoadError{Op: OpOpen, URI: uri, Err: err}
	}
	defer f.Close()

	// Directories open fine on unix but fail on read, which is the right bucket.
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, &LoadError{Op: OpRead, URI: uri, Err: err}
	}
	return &Document{URI: uri, Content: content}, nil
}

func (l *Loader) fetch(ctx context.Context, uri string) (*Document, error) {
	if l.fetcher == nil {
		return nil, &LoadError{Op: OpOpen, URI: uri, Err: fmt.Errorf("cannot fetch network URI: %s", uri)}
	}
	body, contentType, err := l.fetcher.Fetch(ctx, uri)
	if err != nil {
		op := OpOpen
		var re *stdnet.ReadError
		if errors.As(err, &re) {
			op = OpRead
		}
		return nil, &LoadError{Op: op, URI: uri, Err: err}
	}
	return &Document{URI: uri, Content: body, ContentType: contentType}, nil
}
