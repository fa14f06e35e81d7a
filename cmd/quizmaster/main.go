package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/urfave/cli/v2"

	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/container"
	"github.com/saulo-duarte/quizmaster/internal/database"
	"github.com/saulo-duarte/quizmaster/internal/user"
)

func main() {
	app := &cli.App{
		Name:  "quizmaster",
		Usage: "quiz management and exam-taking API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server, report workers and monthly schedule",
				Action: serve,
			},
			{
				Name:   "lambda",
				Usage:  "serve the API behind AWS Lambda and API Gateway",
				Action: serveLambda,
			},
			{
				Name:  "create-db",
				Usage: "create the schema and the first admin account",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reset", Usage: "drop every table first"},
				},
				Action: createDB,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		config.Log.WithError(err).Fatal("quizmaster exited")
	}
}

func serve(cctx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx)
	if err != nil {
		return err
	}
	if err := database.Migrate(config.DB); err != nil {
		return err
	}
	if err := c.ReportContainer.EnableSchedule(); err != nil {
		return err
	}
	c.ReportContainer.Start()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Log.WithField("port", config.App.Port).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		config.Log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Log.WithError(err).Error("http shutdown")
	}
	return c.Close(shutdownCtx)
}

func serveLambda(cctx *cli.Context) error {
	c, err := container.New(cctx.Context)
	if err != nil {
		return err
	}
	c.ReportContainer.Start()

	adapter := httpadapter.New(c.Router())
	lambda.Start(adapter.ProxyWithContext)
	return nil
}

func createDB(cctx *cli.Context) error {
	ctx := cctx.Context
	if err := container.Init(ctx); err != nil {
		return err
	}

	if cctx.Bool("reset") {
		if err := database.DropAll(config.DB); err != nil {
			return err
		}
		config.Log.Warn("all tables dropped")
	}
	if err := database.Migrate(config.DB); err != nil {
		return err
	}

	users := user.NewService(user.NewRepository(config.DB), cache.Noop{})
	password, err := users.EnsureBootstrapAdmin(ctx, user.BootstrapAdmin{
		Username: config.App.BootstrapAdminUsername,
		Email:    config.App.BootstrapAdminEmail,
		Password: config.App.BootstrapAdminPassword,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	fmt.Fprintln(cctx.App.Writer, "Database tables created.")
	if password != "" {
		fmt.Fprintf(cctx.App.Writer, "Admin %q created with password: %s\n", config.App.BootstrapAdminUsername, password)
	}
	return nil
}
