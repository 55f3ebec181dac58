package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agentic-research/locedit/internal/app"
	"github.com/agentic-research/locedit/internal/config"
	"github.com/agentic-research/locedit/internal/notify"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

var (
	configPath string
	rootPath   string
	logLevel   string

	application *app.App
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to locedit.yaml")
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Localization root (one folder per language)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")
}

var rootCmd = &cobra.Command{
	Use:           "locedit",
	Short:         "locedit: localization YAML tree editor core",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if rootPath != "" {
			cfg.Root = rootPath
		}
		if cfg.Root != "" {
			if cfg.Root, err = filepath.Abs(cfg.Root); err != nil {
				return fmt.Errorf("resolve root: %w", err)
			}
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		log, err := config.NewLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		application = app.New(cfg, osfs.New("/"), log)
		application.SetSinks(consoleNotifier(cmd.ErrOrStderr()), application.Progress)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			_ = application.Log.Sync()
		}
	},
}

// abs resolves user-supplied paths against the working directory; the
// filesystem is rooted at /.
func abs(p string) (string, error) {
	a, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return a, nil
}

// consoleNotifier prints notifications as "severity: message" lines.
func consoleNotifier(w io.Writer) notify.Notifier {
	return notify.NotifierFunc(func(message string, severity notify.Severity, _ time.Duration) {
		fmt.Fprintf(w, "%s: %s\n", severity, message)
	})
}

// requireRoot fails when neither --root nor the config names a root.
func requireRoot() error {
	if application.Config.Root == "" {
		return fmt.Errorf("no localization root: pass --root or set root in locedit.yaml")
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
