package picker

import (
	"context"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.ImagePicker = (*Path)(nil)

// Path "picks" a file chosen up front, e.g. from a command-line flag.
// An empty path behaves like the user dismissing the chooser.
type Path struct {
	path     string
	importer *Importer
	log      *logger.Logger
}

// NewPath creates a picker for the file at path.
func NewPath(path string, importer *Importer, log *logger.Logger) *Path {
	return &Path{path: path, importer: importer, log: log}
}

// Pick imports the configured file.
func (p *Path) Pick(ctx context.Context, opts domain.PickOptions) domain.PickResult {
	if p.path == "" {
		return domain.Cancelled()
	}
	return importResult(ctx, p.importer, p.path, opts)
}

// importResult maps an import attempt onto the picker contract.
func importResult(ctx context.Context, im *Importer, path string, opts domain.PickOptions) domain.PickResult {
	if !isPhoto(path) {
		return domain.Errored("not a photo: " + path)
	}
	asset, err := im.Import(ctx, path, opts)
	if err != nil {
		return domain.Errored(err.Error())
	}
	return domain.Selected(asset)
}
