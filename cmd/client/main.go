// Package main is the LocalSites Pro terminal client: an interactive
// shell over the view-state controller plus one-shot API commands.
package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atinyakov/LocalSites/internal/client/api"
	"github.com/atinyakov/LocalSites/internal/client/session"
	"github.com/atinyakov/LocalSites/internal/client/storage"
	"github.com/atinyakov/LocalSites/internal/client/terminal"
	"github.com/atinyakov/LocalSites/internal/client/view"
	"github.com/atinyakov/LocalSites/internal/logger"
	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/repository"
	"github.com/atinyakov/LocalSites/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const catalogTimeout = 5 * time.Second

// globalOptions are the flags shared by every command.
type globalOptions struct {
	baseURL  string
	caFile   string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "localsites",
		Short: "LocalSites Pro terminal client",
		Version: fmt.Sprintf("%s\nBuild Date: %s",
			cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		SilenceUsage: true,
	}
	root.SetVersionTemplate("LocalSites Pro Client\nVersion: {{.Version}}\n")
	root.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:3000", "server base URL")
	root.PersistentFlags().StringVar(&opts.caFile, "ca", "", "path to CA cert for HTTPS servers")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log to stderr at this level (default: no logs)")

	root.AddCommand(newShellCmd(opts))
	root.AddCommand(newTemplatesCmd(opts))
	root.AddCommand(newHealthCmd(opts))
	root.AddCommand(newContactCmd(opts))
	return root
}

func newShellCmd(opts *globalOptions) *cobra.Command {
	var (
		statePath string
		remote    bool
	)
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Browse templates and manage your account interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zapLogger, err := newLogger(opts.logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = zapLogger.Sync() }()

			client, err := api.New(opts.baseURL, opts.caFile)
			if err != nil {
				return err
			}
			return runShell(cmd.Context(), shellConfig{
				in:        cmd.InOrStdin(),
				out:       cmd.OutOrStdout(),
				client:    client,
				statePath: statePath,
				remote:    remote,
				log:       zapLogger,
			})
		},
	}
	cmd.Flags().StringVar(&statePath, "state", storage.DefaultFile, "file keeping the session between runs")
	cmd.Flags().BoolVar(&remote, "remote", false, "log in and sign up through the server instead of in process")
	return cmd
}

type shellConfig struct {
	in        io.Reader
	out       io.Writer
	client    *api.Client
	statePath string
	remote    bool
	log       *zap.Logger
}

func runShell(ctx context.Context, cfg shellConfig) error {
	r := terminal.NewRenderer(cfg.out)

	kv := storage.NewLocalStorage(cfg.statePath)
	if err := kv.Load(); err != nil {
		cfg.log.Warn("ignoring unreadable session file", zap.Error(err))
	}

	catalog := loadCatalog(ctx, cfg.client, cfg.log)
	r.SetCatalog(catalog)

	var auth view.Authenticator = view.NewLocalAuthenticator()
	if cfg.remote {
		auth = cfg.client
	}

	ctrl := view.New(view.Options{
		Renderer:  r,
		Auth:      auth,
		Sessions:  session.NewStore(kv),
		Logger:    cfg.log,
		Templates: catalog,
	})
	defer ctrl.Close()

	r.Println("LocalSites Pro. Type 'help' for a list of commands.")
	if sess, ok := ctrl.RestoreSession(); ok {
		r.Println(fmt.Sprintf("Welcome back, %s (%s plan).", sess.Name, sess.Plan))
	}
	ctrl.SetTemplates(catalog)

	d := view.NewDispatcher()
	ctrl.RegisterHandlers(d)

	shell := &terminal.Shell{In: cfg.in, Renderer: r, Dispatcher: d}
	return shell.Run(ctx)
}

// loadCatalog fetches the catalog from the server and falls back to the
// built-in one when the server cannot be reached.
func loadCatalog(ctx context.Context, client *api.Client, log *zap.Logger) []models.Template {
	ctx, cancel := context.WithTimeout(ctx, catalogTimeout)
	defer cancel()

	templates, err := client.ListTemplates(ctx, "")
	if err != nil {
		log.Warn("using built-in catalog", zap.Error(err))
		return repository.DefaultCatalog()
	}
	return templates
}

func newTemplatesCmd(opts *globalOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List templates, optionally filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := api.New(opts.baseURL, opts.caFile)
			if err != nil {
				return err
			}
			templates, err := client.ListTemplates(cmd.Context(), category)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				fmt.Fprintln(out, "No templates found")
				return nil
			}
			for _, t := range templates {
				fmt.Fprintf(out, "#%d %s [%s] %s\n", t.ID, t.Name, t.Category, t.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "restaurant, medical, automotive, home-services or professional")
	return cmd
}

func newHealthCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := api.New(opts.baseURL, opts.caFile)
			if err != nil {
				return err
			}
			status, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", status.Status, status.Message, status.Timestamp)
			return nil
		},
	}
}

func newContactCmd(opts *globalOptions) *cobra.Command {
	var req service.ContactRequest
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := api.New(opts.baseURL, opts.caFile)
			if err != nil {
				return err
			}
			reply, err := client.Contact(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "your email")
	cmd.Flags().StringVar(&req.Message, "message", "", "your message")
	return cmd
}

// newLogger returns a no-op logger unless a level is given.
func newLogger(level string) (*zap.Logger, error) {
	log := logger.New()
	if level == "" {
		return log.Log, nil
	}
	if err := log.Init(level); err != nil {
		return nil, err
	}
	return log.Log, nil
}
