// Package demo is the reference application served by the aegis CLI. It
// wires a small module tree through the framework's dependency injection,
// typed handlers, guards, pipes and exception filters, and doubles as the
// end-to-end exercise of the registration pipeline.
package demo

import (
	"net/http"

	"github.com/aegis-go/aegis/pkg/core"
)

// AppModule is the root module: it imports the feature modules and exposes
// the health endpoint itself.
type AppModule struct{}

// NewAppModule builds the root module declaration.
func NewAppModule() *AppModule { return &AppModule{} }

func (m *AppModule) GetControllers() []core.Controller {
	return []core.Controller{&HealthController{}}
}

func (m *AppModule) GetProviders() []core.Provider { return nil }

func (m *AppModule) GetImports() []core.Module {
	return []core.Module{&UsersModule{}, &FilesModule{}, &AdminModule{}}
}

func (m *AppModule) GetExports() interface{} { return nil }
func (m *AppModule) GetMiddleware() []core.Middleware { return nil }
func (m *AppModule) OnModuleInit() error { return nil }
func (m *AppModule) OnModuleDestroy() error { return nil }

// HealthController serves the liveness probe at the root of the path space.
type HealthController struct{}

func (c *HealthController) GetPrefix() string { return "/" }
func (c *HealthController) GetMiddleware() []core.Middleware { return nil }

func (c *HealthController) RegisterRoutes(r core.Router) error {
	r.GET("/health", core.Handler(func(ctx core.Context, _ *struct{}) (interface{}, error) {
		return map[string]string{"status": "ok"}, nil
	}))
	r.GET("/hello", func(ctx core.Context) error {
		return ctx.String(http.StatusOK, "Hello")
	})
	return nil
}
