package index

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/afs/storage"
	"golang.org/x/sync/errgroup"
)

// Lister returns the bare names of the regular files directly inside dir,
// sorted lexicographically. A missing dir must yield an error wrapping
// [ErrDirectoryNotFound].
type Lister interface {
	List(ctx context.Context, dir string) ([]string, error)
}

// Storage is the subset of afs.Service used for listing.
type Storage interface {
	List(ctx context.Context, URL string, options ...storage.Option) ([]storage.Object, error)
	Exists(ctx context.Context, URL string, options ...storage.Option) (bool, error)
	Object(ctx context.Context, URL string, options ...storage.Option) (storage.Object, error)
}

// StorageLister lists directories through an afs storage service, so roots
// may be local paths or mem://, s3://, gs:// URLs.
type StorageLister struct {
	fs Storage
}

// NewLister wraps fs (typically afs.New()).
func NewLister(fs Storage) *StorageLister {
	return &StorageLister{fs: fs}
}

// List implements [Lister]. Subdirectories are skipped; a dir that exists
// but is not a directory is treated as missing.
func (l *StorageLister) List(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ok, err := l.fs.Exists(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}
	obj, err := l.fs.Object(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !obj.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	objects, err := l.fs.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, 0, len(objects))
	for _, obj := range objects {
		// afs reports the listed folder itself as the first object.
		if obj.IsDir() {
			continue
		}
		if name := obj.Name(); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// dropHidden returns names without dot-files.
func dropHidden(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !strings.HasPrefix(n, ".") {
			out = append(out, n)
		}
	}
	return out
}

// listAll lists dirs with at most limit concurrent calls. Results keep the
// order of dirs. The first error cancels the remaining listings.
// Dot-files are dropped when skipHidden is set.
func listAll(ctx context.Context, ls Lister, dirs []string, limit int, skipHidden bool) ([][]string, error) {
	out := make([][]string, len(dirs))
	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			names, err := ls.List(gCtx, dir)
			if err != nil {
				return err
			}
			if skipHidden {
				names = dropHidden(names)
			}
			out[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
