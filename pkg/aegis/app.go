package aegis

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"runtime"

	"go.uber.org/zap"

	"github.com/aegis-go/aegis/pkg/core"
	"github.com/aegis-go/aegis/pkg/router"
)

// Application is the concrete core.Application: it owns the dependency
// injection container and the router, walks the module import graph at
// RegisterModule time, and serves HTTP once Listen or ListenTLS is called.
type Application struct {
	container *core.DefaultContainer
	router    *router.Router
	config    AppConfig
	logger    *zap.Logger
	server    *http.Server

	visited     map[reflect.Type]bool
	initialized []core.Module
}

// New builds an Application from config, wiring the request id, logging and
// tracing middleware onto the router in that order (request id generated
// first; logging wraps tracing and the handler so its duration covers both).
func New(config AppConfig) (*Application, error) {
	logger, err := newZapLogger(config.LogLevel, config.LogFormat == "json")
	if err != nil {
		return nil, fmt.Errorf("aegis: building logger: %w", err)
	}
	if config.WorkerThreads > 0 {
		runtime.GOMAXPROCS(config.WorkerThreads)
	}

	container := core.NewContainer()
	r := router.New(nil)
	r.SetContainer(container)
	r.Use(RequestIDMiddleware(), LoggingMiddleware(logger), TracingMiddleware())

	return &Application{
		container: container,
		router:    r,
		config:    config,
		logger:    logger,
		visited:   make(map[reflect.Type]bool),
	}, nil
}

// RegisterModule registers module (and, transitively, every module it
// imports) with the application: imports are visited depth-first with a
// type-keyed visited set so a module imported by two siblings is only
// registered once, providers are registered into the container, controllers
// are mounted on the router under their prefix and middleware, and
// OnModuleInit runs in depth-first post-import order.
func (a *Application) RegisterModule(module core.Module) error {
	return a.registerModule(module)
}

func (a *Application) registerModule(module core.Module) error {
	t := reflect.TypeOf(module)
	if a.visited[t] {
		return nil
	}
	a.visited[t] = true

	for _, imported := range module.GetImports() {
		if err := a.registerModule(imported); err != nil {
			return err
		}
	}

	for _, provider := range module.GetProviders() {
		if err := a.container.Register(provider); err != nil {
			return fmt.Errorf("aegis: registering provider for module %s: %w", t, err)
		}
	}

	moduleMiddleware := module.GetMiddleware()
	for _, controller := range module.GetControllers() {
		middleware := append(append([]core.Middleware{}, moduleMiddleware...), controller.GetMiddleware()...)
		group := a.router.Group(controller.GetPrefix(), middleware...)
		if err := controller.RegisterRoutes(group); err != nil {
			return fmt.Errorf("aegis: registering routes for module %s: %w", t, err)
		}
	}

	if err := module.OnModuleInit(); err != nil {
		return fmt.Errorf("aegis: initializing module %s: %w", t, err)
	}
	a.initialized = append(a.initialized, module)
	return nil
}

// Use registers an application-level middleware applied to every route,
// outermost relative to any group, route or guard middleware.
func (a *Application) Use(middleware core.Middleware) core.Application {
	a.router.Use(middleware)
	return a
}

// UseGuards registers application-level guards evaluated before every
// handler, ahead of any group- or route-level guard.
func (a *Application) UseGuards(guards ...core.Guard) core.Application {
	a.router.UseGuards(guards...)
	return a
}

// UseFilter registers a global exception filter on the router's filter chain.
func (a *Application) UseFilter(filter core.Filter, priority int, name string) core.Application {
	a.router.Filters().Register(filter, priority, name)
	return a
}

// GetContainer returns the dependency injection container.
func (a *Application) GetContainer() core.Container {
	return a.container
}

// GetRouter returns the application's router.
func (a *Application) GetRouter() core.Router {
	return a.router
}

// Listen starts the HTTP server on addr. Any duplicate route or malformed
// wildcard registration recorded during RegisterModule is surfaced here as a
// bootstrap error rather than allowed to reach request dispatch.
func (a *Application) Listen(addr string) error {
	if err := a.bootstrapCheck(); err != nil {
		return err
	}
	a.server = &http.Server{Addr: addr, Handler: a.router}
	a.logger.Info("listening", zap.String("addr", addr))
	return a.server.ListenAndServe()
}

// ListenTLS starts the HTTPS server on addr using certFile and keyFile.
func (a *Application) ListenTLS(addr, certFile, keyFile string) error {
	if err := a.bootstrapCheck(); err != nil {
		return err
	}
	a.server = &http.Server{Addr: addr, Handler: a.router}
	a.logger.Info("listening (tls)", zap.String("addr", addr))
	return a.server.ListenAndServeTLS(certFile, keyFile)
}

// bootstrapCheck surfaces any registration error recorded during
// RegisterModule and warms every singleton provider so request handlers only
// ever hit the container's instance cache.
func (a *Application) bootstrapCheck() error {
	if err := a.router.Err(); err != nil {
		return fmt.Errorf("aegis: bootstrap failed: %w", err)
	}
	if err := a.container.ResolveAll(); err != nil {
		return fmt.Errorf("aegis: resolving providers: %w", err)
	}
	for _, instance := range a.container.Instances() {
		if hook, ok := instance.(core.LifecycleHook); ok {
			if err := hook.OnInit(); err != nil {
				return fmt.Errorf("aegis: provider init: %w", err)
			}
		}
	}
	return nil
}

// Shutdown gracefully drains the HTTP server, then runs OnModuleDestroy on
// every initialized module in the reverse of its initialization order.
func (a *Application) Shutdown(ctx context.Context) error {
	var shutdownErr error
	if a.server != nil {
		shutdownErr = a.server.Shutdown(ctx)
	}
	for i := len(a.initialized) - 1; i >= 0; i-- {
		if err := a.initialized[i].OnModuleDestroy(); err != nil {
			a.logger.Error("module shutdown failed", zap.Error(err))
		}
	}
	for _, instance := range a.container.Instances() {
		if hook, ok := instance.(core.LifecycleHook); ok {
			if err := hook.OnDestroy(); err != nil {
				a.logger.Error("provider shutdown failed", zap.Error(err))
			}
		}
	}
	_ = a.logger.Sync()
	return shutdownErr
}

// Logger returns the application's structured logger, for use by bootstrap
// code outside the request pipeline (e.g. the CLI).
func (a *Application) Logger() *zap.Logger {
	return a.logger
}

// Routes returns every registered (method, path) pair, for the CLI's route
// table.
func (a *Application) Routes() []router.RouteInfo {
	return a.router.Routes()
}

var _ core.Application = (*Application)(nil)
