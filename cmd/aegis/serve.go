package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/aegis-go/aegis/internal/demo"
	"github.com/aegis-go/aegis/pkg/aegis"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := aegis.LoadConfig(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		return serve(cfg)
	},
}

func init() {
	addServeFlags(serveCmd.Flags())
}

func addServeFlags(fs *pflag.FlagSet) {
	fs.StringVar(&serveHost, "host", "0.0.0.0", "listen host")
	fs.IntVar(&servePort, "port", 3000, "listen port")
}

func serve(cfg aegis.AppConfig) error {
	tp := newTracerProvider(cfg)
	otel.SetTracerProvider(tp)

	app, err := aegis.New(cfg)
	if err != nil {
		return err
	}
	app.UseFilter(&demo.ValidationFilter{}, 10, "validation")
	if err := app.RegisterModule(demo.NewAppModule()); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			errCh <- app.ListenTLS(cfg.Addr(), cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- app.Listen(cfg.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigCh:
		app.Logger().Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr := app.Shutdown(ctx)
		if err := tp.Shutdown(ctx); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
		return shutdownErr
	}
}

// newTracerProvider builds the tracer provider the tracing middleware picks
// up through the global otel registry. No exporter is attached here;
// deployments install one (OTLP, stdout) by replacing this provider.
func newTracerProvider(cfg aegis.AppConfig) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "aegis"),
			attribute.String("service.version", version),
			attribute.String("deployment.environment", cfg.Environment),
		)),
	)
}
