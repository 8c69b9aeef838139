package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/docsgen-cli/internal/config"
	"github.com/KaramelBytes/docsgen-cli/internal/logging"
	"github.com/KaramelBytes/docsgen-cli/internal/site"
	"github.com/KaramelBytes/docsgen-cli/internal/theme"
	"github.com/KaramelBytes/docsgen-cli/internal/utils"
)

var (
	cfgFile    string
	debug      bool
	watchMode  bool
	themeName  string
	rootDir    string
	listThemes bool
)

var rootCmd = &cobra.Command{
	Use:   "docsgen",
	Short: "docsgen: build a single-page documentation site from markdown",
	Long: `docsgen collects README.md and the markdown files of the docs folder,
groups them by category and writes one self-contained HTML page with a
themeable sidebar. Use --watch to regenerate the page whenever a file changes.`,
	Example: `  docsgen
  docsgen --theme dark
  docsgen --watch
  docsgen --root ./my-project --config docsgen.yaml`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "watch README.md and the docs folder and regenerate on change")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "theme to use for this run (overrides config)")
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is <root>/docsgen.yaml|json|toml)")
	rootCmd.Flags().StringVar(&rootDir, "root", "", "project root (default: nearest parent with a root marker)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.Flags().BoolVar(&listThemes, "list-themes", false, "print the available themes and exit")
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	boot, err := logging.New("docsgen", logging.Options{Level: levelFor(""), Format: "console"})
	if err != nil {
		return err
	}

	root, err := resolveRoot()
	if err != nil {
		return err
	}
	cfg, err := cfgpkg.Load(root, cfgFile, boot)
	if err != nil {
		return err
	}
	overrides := cfgpkg.Overrides{LogLevel: levelFor(cfg.LogLevel())}
	if cmd.Flags().Changed("theme") {
		overrides.Theme = themeName
	}
	cfg = cfg.WithOverrides(overrides)

	log, err := logging.New("docsgen", logging.Options{Level: cfg.LogLevel(), Format: cfg.LogFormat()})
	if err != nil {
		boot.Warn("invalid log format, using console", "format", cfg.LogFormat(), "error", err)
		if log, err = logging.New("docsgen", logging.Options{Level: cfg.LogLevel(), Format: "console"}); err != nil {
			return err
		}
	}
	if src := cfg.Source(); src != "" {
		log.Debug("config loaded", "file", src)
	}
	log.Debug("resolved configuration",
		"root", cfg.Root(),
		"docsDir", cfg.DocsDir(),
		"outputFile", cfg.OutputFile(),
		"theme", cfg.Theme(),
		"exclude", cfg.ExcludeFiles(),
	)

	if listThemes {
		return printThemes(out, cfg)
	}

	gen, err := site.NewGenerator(cfg, site.WithLogger(log))
	if err != nil {
		return err
	}

	if !watchMode {
		res, err := gen.Generate()
		if err != nil {
			return err
		}
		printSummary(out, cfg, res)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := site.NewWatcher(gen, log)
	if err != nil {
		return err
	}
	w.OnGenerate = func(res site.Result, err error) {
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "✗ Error:", err)
			return
		}
		printSummary(out, cfg, res)
	}
	fmt.Fprintln(out, "🔍 Watching for changes (Ctrl+C to stop)...")
	return w.Run(ctx)
}

func resolveRoot() (string, error) {
	if rootDir != "" {
		if !utils.DirExists(rootDir) {
			return "", goerrors.Wrap(fmt.Errorf("%s is not a directory", rootDir), goerrors.CategoryNotFound, "project root not found").
				WithTextCode("PROJECT_ROOT_NOT_FOUND")
		}
		return rootDir, nil
	}
	root, err := utils.FindProjectRoot("")
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryNotFound, "project root not found").
			WithTextCode("PROJECT_ROOT_NOT_FOUND")
	}
	return root, nil
}

// levelFor lets --debug win over the configured level.
func levelFor(configured string) string {
	if debug {
		return "debug"
	}
	if configured == "" {
		return "info"
	}
	return configured
}

func printSummary(out io.Writer, cfg cfgpkg.Config, res site.Result) {
	fmt.Fprintf(out, "✓ Documentation generated: %s\n", cfg.Rel(res.Output))
	fmt.Fprintf(out, "📁 Processed files: %d\n", res.Count)
}

func printThemes(out io.Writer, cfg cfgpkg.Config) error {
	store := theme.Embedded()
	if dir := cfg.StylesDir(); dir != "" {
		store = theme.Dir(dir)
	}
	names, err := store.Names()
	if err != nil {
		return err
	}
	for _, n := range names {
		marker := " "
		if n == cfg.Theme() {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, n)
	}
	return nil
}
