package extd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/satori/uuid"
	"github.com/yusufsyaifudin/appkeeper/container"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"github.com/yusufsyaifudin/appkeeper/pkg/tracer"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi"
	jaegerPropagator "go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/contrib/propagators/ot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/multierr"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const shutdownTimeout = 10 * time.Second

// SetupLog sets the global logger from config and returns the system context.
// The returned closer flushes the rotated log file, if any.
func SetupLog(ctx context.Context, cfg logger.ZapConfig) (context.Context, func() error, error) {
	if ctx == nil {
		ctx = context.TODO()
	}

	zapLog, fileCloser, err := logger.NewZapLogger(cfg)
	if err != nil {
		return ctx, nil, err
	}

	// ** set global logger
	logger.SetGlobalLogger(logger.NewZap(zapLog))

	ctx = logger.Inject(ctx, logger.Tracer{
		RemoteAddr: "system",
		AppTraceID: uuid.NewV4().String(),
	})

	closer := func() error {
		var err error
		if _err := zapLog.Sync(); _err != nil && !errors.Is(_err, syscall.EINVAL) && !errors.Is(_err, syscall.ENOTTY) {
			err = multierr.Append(err, _err)
		}

		err = multierr.Append(err, fileCloser.Close())
		return err
	}

	return ctx, closer, nil
}

// setupTracing registers the jaeger exporter when enabled. Propagators are always set,
// so incoming trace headers are kept on the request context.
func setupTracing(ctx context.Context, cfg container.ConfigTracing) (shutdown func(context.Context) error, err error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		&ot.OT{},
		&jaegerPropagator.Jaeger{},
	))

	shutdown = func(context.Context) error { return nil }
	if !cfg.Enable {
		logger.Info(ctx, "tracing: disabled")
		return
	}

	exp, err := jaeger.New(
		jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)),
	)
	if err != nil {
		err = fmt.Errorf("cannot setup jaeger exporter: %w", err)
		return
	}

	tp := tracer.InitTraceProvider(exp, cfg.Environment)
	logger.Info(ctx, "tracing: exporting to jaeger", logger.KV("endpoint", cfg.JaegerEndpoint))
	return tp.Shutdown, nil
}

// RunServer located in extd (extended) to wire the container into the transport and block until SIGTERM.
func RunServer(ctx context.Context, cfg container.Config) (err error) {
	if ctx == nil {
		ctx = context.TODO()
	}

	shutdownTracer, err := setupTracing(ctx, cfg.Tracing)
	if err != nil {
		logger.Error(ctx, "tracing preparation: failed", logger.KV("error", err))
		return
	}

	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if _err := shutdownTracer(sctx); _err != nil {
			logger.Error(ctx, "tracing: shutdown failed", logger.KV("error", _err))
		}
	}()

	// ** setup container
	logger.Info(ctx, "container preparation: starting")
	dep, err := container.Setup(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "container preparation: failed", logger.KV("error", err))
		return
	}

	defer func() {
		logger.Info(ctx, "closing container: starting")
		if _err := dep.Close(); _err != nil {
			logger.Error(ctx, "closing container: failed", logger.KV("error", _err))
		}

		logger.Info(ctx, "closing container: done")
	}()

	logger.Info(ctx, "container preparation: done")

	// ** HTTP TRANSPORT
	services := dep.Services()
	serverConfig := restapi.Config{
		AppService:     services.App(),
		CatalogService: services.Catalog(),
		SessionService: services.Session(),
		DashService:    services.Dashboard(),
	}

	logger.Info(ctx, "http transport: starting")
	server, err := restapi.NewHTTPTransport(serverConfig)
	if err != nil {
		logger.Error(ctx, "http transport: failed", logger.KV("error", err))
		return
	}

	httpPort := fmt.Sprintf(":%d", cfg.Transport.HTTP.Port)
	h2s := &http2.Server{}
	httpServer := &http.Server{
		Addr:              httpPort,
		Handler:           h2c.NewHandler(server.Server(), h2s), // HTTP/2 Cleartext handler
		ReadHeaderTimeout: 10 * time.Second,
	}

	var apiErrChan = make(chan error, 1)
	go func() {
		logger.Info(ctx, fmt.Sprintf("http transport: done running on port %d", cfg.Transport.HTTP.Port))
		apiErrChan <- httpServer.ListenAndServe()
	}()

	logger.Info(ctx, "system: up and running...")

	// ** listen for sigterm signal
	var signalChan = make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	select {
	case <-signalChan:
		logger.Info(ctx, "system: exiting...")
		logger.Info(ctx, "http transport: exiting...")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if _err := httpServer.Shutdown(sctx); _err != nil {
			logger.Error(ctx, "http transport: shutdown failed", logger.KV("error", _err))
		}

	case _err := <-apiErrChan:
		if _err != nil && !errors.Is(_err, http.ErrServerClosed) {
			logger.Error(ctx, "http transport: error", logger.KV("error", _err))
			err = _err
		}
	}

	return
}
