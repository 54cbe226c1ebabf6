/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/humaidq/labwise/routes"
	"github.com/humaidq/labwise/static"
	"github.com/humaidq/labwise/templates"
	"github.com/humaidq/labwise/wizard"
)

const (
	runtimeEnvVar     = "LABWISE_ENV"
	csrfSecretEnvVar  = "CSRF_SECRET"
	sessionCookieName = "labwise_session"
	sweepInterval     = time.Minute
	shutdownTimeout   = 10 * time.Second
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Value:   "8080",
			Sources: cli.EnvVars("PORT"),
			Usage:   "the web server port",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Value: false,
			Usage: "enables development mode (templates are read from disk)",
		},
		&cli.DurationFlag{
			Name:    "analysis-delay",
			Value:   wizard.DefaultAnalysisDelay,
			Sources: cli.EnvVars("LABWISE_ANALYSIS_DELAY"),
			Usage:   "how long the analysis step takes",
		},
		&cli.DurationFlag{
			Name:    "session-idle",
			Value:   30 * time.Minute,
			Sources: cli.EnvVars("LABWISE_SESSION_IDLE"),
			Usage:   "discard wizards idle for longer than this",
		},
	},
	Action: start,
}

type webConfig struct {
	Dev           bool
	Production    bool
	CSRFSecret    string
	AnalysisDelay time.Duration
	SessionIdle   time.Duration
}

func isProductionEnv(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "development", "dev":
		return false, nil
	case "production", "prod":
		return true, nil
	default:
		return false, errInvalidRuntimeEnv
	}
}

func newWebConfig(env, csrfSecret string, dev bool, analysisDelay, sessionIdle time.Duration) (webConfig, error) {
	production, err := isProductionEnv(env)
	if err != nil {
		return webConfig{}, err
	}

	if analysisDelay < 0 {
		return webConfig{}, errInvalidAnalysisDelay
	}

	if sessionIdle <= 0 {
		return webConfig{}, errInvalidSessionIdle
	}

	cfg := webConfig{
		Dev:           dev,
		Production:    production,
		CSRFSecret:    strings.TrimSpace(csrfSecret),
		AnalysisDelay: analysisDelay,
		SessionIdle:   sessionIdle,
	}

	if cfg.CSRFSecret == "" {
		if production {
			return webConfig{}, errCSRFSecretRequired
		}

		// Tokens stop validating after a restart, which is fine outside production.
		cfg.CSRFSecret = uuid.NewString()
		appLogger.Warn("using a random CSRF secret", "env_var", csrfSecretEnvVar)
	}

	return cfg, nil
}

func templateFuncs() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"join": strings.Join,
	}
}

func configureEmptyNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
	})
}

func newWebApp(cfg webConfig, registry *wizard.Registry, catalog *wizard.Catalog) (*flamego.Flame, error) {
	templateOpts := template.Options{
		FuncMaps: []htmltemplate.FuncMap{templateFuncs()},
	}

	if cfg.Dev {
		templateOpts.Directory = "templates"
	} else {
		fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
		if err != nil {
			return nil, fmt.Errorf("failed to load templates: %w", err)
		}

		templateOpts.FileSystem = fs
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
	}))
	f.Use(session.Sessioner(session.Options{
		Cookie: session.CookieOptions{
			Name:     sessionCookieName,
			HTTPOnly: true,
			Secure:   cfg.Production,
			SameSite: http.SameSiteLaxMode,
		},
	}))
	f.Use(routes.RequestLogger)
	f.Use(csrf.Csrfer(csrf.Options{
		Secret: cfg.CSRFSecret,
	}))
	f.Use(template.Templater(templateOpts))
	f.Use(routes.NoCacheHeaders())
	f.Use(routes.CSRFInjector())
	f.Use(routes.FlashInjector())
	f.Use(routes.WizardLoader(registry))
	f.Map(catalog)

	f.Get("/", routes.RequireStep(wizard.StepLanding), routes.Landing)
	f.Get("/about", routes.About)
	f.Get("/tests", routes.RequireStep(wizard.StepTestSelection), routes.TestSelection)
	f.Get("/data", routes.RequireStep(wizard.StepDataInput), routes.DataInput)
	f.Get("/attributes", routes.RequireStep(wizard.StepPersonalAttributes), routes.Attributes)
	f.Get("/analysis", routes.RequireStep(wizard.StepAnalysis), routes.Analysis)
	f.Get("/results", routes.RequireStep(wizard.StepResults), routes.Results)
	f.Get("/supplements", routes.RequireStep(wizard.StepSupplements), routes.Supplements)
	f.Get("/supplements/{id}/buy", routes.BuySupplement)

	f.Group("", func() {
		f.Post("/start", routes.Start)
		f.Post("/tests", routes.ConfirmTests)
		f.Post("/data", routes.ConfirmData)
		f.Post("/data/field", routes.EditField)
		f.Post("/attributes", routes.ConfirmAttributes)
		f.Post("/analysis/retry", routes.RetryAnalysis)
		f.Post("/results", routes.ViewSupplements)
		f.Post("/back", routes.Back)
		f.Post("/restart", routes.Restart)
	}, csrf.Validate)

	configureEmptyNotFoundHandler(f)

	return f, nil
}

func start(ctx context.Context, cmd *cli.Command) error {
	cfg, err := newWebConfig(
		os.Getenv(runtimeEnvVar),
		os.Getenv(csrfSecretEnvVar),
		cmd.Bool("dev"),
		cmd.Duration("analysis-delay"),
		cmd.Duration("session-idle"),
	)
	if err != nil {
		return err
	}

	if cfg.Dev {
		flamego.SetEnv(flamego.EnvTypeDev)
	} else {
		flamego.SetEnv(flamego.EnvTypeProd)
	}

	catalog, err := wizard.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("failed to load supplement catalog: %w", err)
	}

	registry := wizard.NewRegistry(wizard.CannedAnalyzer{Delay: cfg.AnalysisDelay})

	app, err := newWebApp(cfg, registry, catalog)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", cmd.String("port")),
		Handler:           app,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ErrorLog:          requestStdLogger,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info(
			"starting web server",
			"addr", srv.Addr,
			"production", cfg.Production,
			"dev", cfg.Dev,
			"analysis_delay", cfg.AnalysisDelay.String(),
			"session_idle", cfg.SessionIdle.String(),
			"catalog_size", catalog.Counts().All,
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		return registry.RunSweeper(gctx, sweepInterval, cfg.SessionIdle)
	})

	g.Go(func() error {
		<-gctx.Done()

		appLogger.Info("shutting down web server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down web server: %w", err)
		}

		return nil
	})

	return g.Wait()
}
