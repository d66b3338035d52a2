package main

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/cookbook/internal/config"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/recipe"
	"github.com/hammamikhairi/cookbook/internal/storage"
)

// errReported marks failures already shown to the user.
var errReported = errors.New("reported")

// app holds what every command needs once the root pre-run has resolved
// configuration and opened the store.
type app struct {
	v          *viper.Viper
	configFile string
	verbose    bool
	quiet      bool

	cfg      *config.Config
	log      *logger.Logger
	closeLog func() error
	store    *storage.Handle
	repo     *recipe.CustomRepository
	catalog  *recipe.Catalog
	out      io.Writer
}

// newRootCmd builds the command tree. The returned app must be torn down
// after Execute, whatever the outcome.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{v: config.New(), out: os.Stdout}

	root := &cobra.Command{
		Use:           "cookbook",
		Short:         "cookbook - browse recipes and add your own",
		Long:          `A terminal recipe book. Seafood classics are bundled; recipes you add are kept in a local store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), a)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./cookbook.yaml or ~/.config/cookbook/cookbook.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose/debug logging")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "disable all logging")
	flags.String("log-file", "", `file to write logs to (use "stderr" to log to console)`)
	flags.String("store", "", "store backend: sqlite, file or memory")
	flags.String("store-path", "", "database file (sqlite) or directory (file)")
	flags.String("media-dir", "", "directory imported photos are copied into")

	for key, flag := range map[string]string{
		config.KeyLogFile:     "log-file",
		config.KeyStoreDriver: "store",
		config.KeyStorePath:   "store-path",
		config.KeyMediaDir:    "media-dir",
	} {
		// Lookup cannot fail for flags registered above.
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newBrowseCmd(a),
	)
	return root, a
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v, config.Options{ConfigFile: a.configFile})
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.verbose {
		level = logger.LevelVerbose
	}
	if a.quiet {
		level = logger.LevelOff
	}

	// Logs go to a file by default so the terminal surfaces stay clean.
	logOut, closeLog, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (falling back to stderr)\n", err)
		logOut, closeLog = os.Stderr, func() error { return nil }
	}
	a.closeLog = closeLog

	// Third-party packages that use the standard logger write to the same place.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	a.log = logger.New(level, logOut)
	if cfg.File != "" {
		a.log.Debug("config: %s", cfg.File)
	}

	a.store, err = storage.Open(cfg.Store.Driver, cfg.Store.Path, a.log.Named("storage"))
	if err != nil {
		return err
	}

	seed, err := recipe.NewSeedSource(a.log.Named("seed"))
	if err != nil {
		return err
	}
	a.repo = recipe.NewCustomRepository(a.store.Store, a.log.Named("recipes"))
	a.catalog = recipe.NewCatalog(seed, a.repo, a.log.Named("catalog"))
	return nil
}

// teardown releases the store and the log file. Safe to call when setup
// never ran or failed half way.
func (a *app) teardown() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
		a.closeLog = nil
	}
	return errors.Join(errs...)
}
