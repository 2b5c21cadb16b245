// Package csvfiles reads catalog rows from CSV files in a directory,
// one file per collection kind (business_processes.csv,
// platform_products.csv and so on).
package csvfiles

import (
	"context"
	"io/fs"

	"github.com/agentstation/capmap/internal/sources/csvrows"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/normalize"
)

// Source reads CSV files from a file system.
type Source struct {
	fsys fs.FS
}

// New creates a Source over fsys, typically os.DirFS(dataDir).
func New(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// FileName returns the file holding rows of kind k.
func FileName(k catalog.Kind) string {
	return k.FileStem() + ".csv"
}

// Name implements sources.RowSource.
func (s *Source) Name() string {
	return "csv"
}

// Rows implements sources.RowSource.
func (s *Source) Rows(ctx context.Context, k catalog.Kind) ([]normalize.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := FileName(k)
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, errors.WrapIO("open", name, err)
	}
	defer func() { _ = f.Close() }()
	return csvrows.Decode(f, name)
}
