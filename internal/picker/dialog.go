package picker

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.ImagePicker = (*Dialog)(nil)

// chooseFunc shows a chooser rooted at dir and returns the selected path.
type chooseFunc func(ctx context.Context, dir string, exts []string) (string, error)

// Dialog is an interactive terminal file chooser. It blocks until the user
// picks a file or dismisses the chooser.
type Dialog struct {
	startDir string
	importer *Importer
	log      *logger.Logger
	choose   chooseFunc
}

// NewDialog creates a chooser starting in startDir ("." when empty).
func NewDialog(startDir string, importer *Importer, log *logger.Logger) *Dialog {
	if startDir == "" {
		startDir = "."
	}
	return &Dialog{
		startDir: startDir,
		importer: importer,
		log:      log,
		choose:   huhChoose,
	}
}

// Pick runs the chooser and imports the chosen photo.
func (d *Dialog) Pick(ctx context.Context, opts domain.PickOptions) domain.PickResult {
	if opts.MediaType != domain.MediaPhoto {
		return domain.Errored(ErrUnsupportedMedia.Error() + ": " + string(opts.MediaType))
	}

	path, err := d.choose(ctx, d.startDir, PhotoExtensions)
	switch {
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled):
		return domain.Cancelled()
	case err != nil:
		return domain.Errored(err.Error())
	case path == "":
		return domain.Cancelled()
	}

	d.log.Debug("chooser returned %s", path)
	return importResult(ctx, d.importer, path, opts)
}

func huhChoose(ctx context.Context, dir string, exts []string) (string, error) {
	var path string
	fp := huh.NewFilePicker().
		Title("Recipe photo").
		Description("Pick an image, esc to skip").
		CurrentDirectory(dir).
		AllowedTypes(exts).
		FileAllowed(true).
		DirAllowed(false).
		ShowHidden(false).
		Picking(true).
		Height(12).
		Value(&path)

	form := huh.NewForm(huh.NewGroup(fp)).WithTheme(huh.ThemeBase())
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return path, nil
}
