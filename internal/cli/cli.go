package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/mathlab/internal/app"
	"github.com/vk/mathlab/internal/diag"
	"github.com/vk/mathlab/internal/embed"
	"github.com/vk/mathlab/internal/session"
)

// SiteFile is the site file looked up in the content root when --config is
// not given.
const SiteFile = "mathlab.yaml"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// globalFlags are shared by every command.
type globalFlags struct {
	content    string
	configPath string
	logLevel   string
	logFormat  string
}

// config validates the shared flags and builds an app configuration.
func (g *globalFlags) config(base app.Config) (*app.Config, error) {
	logFormat := strings.ToLower(g.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, usageError("invalid log-format: must be 'text' or 'json'")
	}
	logLevel := strings.ToLower(g.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	sitePath := g.configPath
	if sitePath == "" {
		candidate := filepath.Join(g.content, SiteFile)
		if _, err := os.Stat(candidate); err == nil {
			sitePath = candidate
		}
	}

	base.ContentRoot = g.content
	base.SitePath = sitePath
	base.LogFormat = logFormat
	base.LogLevel = logLevel
	cfg, err := app.NewConfig(base)
	if err != nil {
		return nil, usageError("%s", err.Error())
	}
	return cfg, nil
}

// NewRootCmd builds the mathlab command tree. Command output and logs go
// to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "mathlab",
		Short: "Interactive mathematics classroom",
		Long: `mathlab serves a curriculum browser and a catalog of interactive
activities for high-school probability, statistics and calculus.

Content lives under the content root:
  activities/<subject>/<slug>.hcl   activity manifests
  curriculum/<subject>.hcl          curriculum trees
  mathlab.yaml                      optional site file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%s", err.Error())
	})

	pf := root.PersistentFlags()
	pf.StringVar(&g.content, "content", "content", "Content root holding activities/ and curriculum/.")
	pf.StringVar(&g.configPath, "config", "", "Site file (default <content>/"+SiteFile+" when present).")
	pf.StringVar(&g.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&g.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(
		serveCmd(g),
		checkCmd(g),
		listCmd(g),
		normalizeCmd(),
	)
	return root
}

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		port       int
		listen     string
		watch      bool
		sessionTTL time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the content and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config(app.Config{
				Port:       port,
				Listen:     listen,
				Watch:      watch,
				SessionTTL: sessionTTL,
			})
			if err != nil {
				return err
			}

			a, err := app.NewApp(cmd.OutOrStdout(), cfg, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
	f := cmd.Flags()
	f.IntVar(&port, "port", 0, fmt.Sprintf("HTTP port (default from the site file, else %d).", app.DefaultPort))
	f.StringVar(&listen, "listen", "", "Listen address host:port; overrides --port.")
	f.BoolVar(&watch, "watch", false, "Reload the content when files change.")
	f.DurationVar(&sessionTTL, "session-ttl", session.DefaultTTL, "Idle time after which a viewer's widget state is dropped.")
	return cmd
}

func checkCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and validate the content without serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config(app.Config{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			cat, site, err := app.Load(out, cfg, nil)
			if err != nil && site == nil {
				return err
			}
			if err != nil {
				problems := diag.Flatten(err)
				for _, p := range problems {
					fmt.Fprintln(out, p)
				}
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d content problem(s) found", len(problems))}
			}

			total := 0
			for _, n := range cat.Counts() {
				total += n
			}
			fmt.Fprintf(out, "ok: %d activities, %d curriculum subjects\n", total, len(cat.Curriculum.Subjects()))
			return nil
		},
	}
}

func listCmd(g *globalFlags) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list [subject]",
		Short: "Print the activities of each subject in menu order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config(app.Config{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			cat, _, err := app.Load(out, cfg, nil)
			if err != nil {
				return err
			}

			subjects := cat.Registry.Subjects()
			if len(args) == 1 {
				subjects = args
			}
			for _, s := range subjects {
				acts := cat.Registry.List(s)
				if all {
					acts = cat.Registry.All(s)
				}
				if len(args) == 1 && len(acts) == 0 {
					return &ExitError{Code: 1, Message: fmt.Sprintf("no activities in subject %q", s)}
				}
				fmt.Fprintf(out, "%s:\n", s)
				for _, a := range acts {
					fmt.Fprintf(out, "  %s\t%s\n", a.Slug, a.Meta.Title)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include hidden activities, ordered by slug.")
	return cmd
}

func normalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Print the embeddable form of a video or spreadsheet URL",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "youtube <url>",
		Short: "Print the YouTube embed URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := embed.YouTubeEmbed(args[0])
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	})

	var preview bool
	sheet := &cobra.Command{
		Use:   "sheet <url>",
		Short: "Print the CSV export URL of a Google Sheets link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if preview {
				fmt.Fprintln(cmd.OutOrStdout(), embed.SheetPreview(args[0]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), embed.SheetCSV(args[0]))
			return nil
		},
	}
	sheet.Flags().BoolVar(&preview, "preview", false, "Print the embeddable preview URL instead.")
	cmd.AddCommand(sheet)
	return cmd
}
