package demo

import (
	"net/http"

	"github.com/aegis-go/aegis/pkg/core"
)

// FilesModule exposes the wildcard file route.
type FilesModule struct{}

func (m *FilesModule) GetControllers() []core.Controller {
	return []core.Controller{&FilesController{}}
}

func (m *FilesModule) GetProviders() []core.Provider { return nil }
func (m *FilesModule) GetImports() []core.Module { return nil }
func (m *FilesModule) GetExports() interface{} { return nil }
func (m *FilesModule) GetMiddleware() []core.Middleware { return nil }
func (m *FilesModule) OnModuleInit() error { return nil }
func (m *FilesModule) OnModuleDestroy() error { return nil }

// FilesController answers GET /files/<anything> with the matched remainder,
// standing in for a static file layer without shipping one.
type FilesController struct{}

func (c *FilesController) GetPrefix() string { return "/files" }
func (c *FilesController) GetMiddleware() []core.Middleware { return nil }

func (c *FilesController) RegisterRoutes(r core.Router) error {
	r.GET("/*path", func(ctx core.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"path": ctx.Param("path")})
	})
	return nil
}
