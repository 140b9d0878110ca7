// Package blob is the text-blob persistence port. Every named resource is
// one flat text blob, readable and replaceable only as a whole.
package blob

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Read when the named blob does not exist.
var ErrNotFound = errors.New("blob: not found")

// Store is implemented by any blob backend (memory, filesystem, redis,
// gist). There is no native append primitive: Append is simulated as
// read-then-write, so a single writer per blob is assumed. Two concurrent
// appenders to the same blob can lose lines.
type Store interface {
	Read(ctx context.Context, name string) (string, error)
	Write(ctx context.Context, name, content string) error
	Append(ctx context.Context, name, chunk string) error
}

// appendViaRewrite implements Append on top of Read and Write. A missing
// blob starts empty; existing content gets a trailing newline before the
// new chunk when it lacks one.
func appendViaRewrite(ctx context.Context, s Store, name, chunk string) error {
	cur, err := s.Read(ctx, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if cur != "" && !strings.HasSuffix(cur, "\n") {
		cur += "\n"
	}
	return s.Write(ctx, name, cur+chunk)
}
