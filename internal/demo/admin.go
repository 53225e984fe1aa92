package demo

import (
	"net/http"

	"github.com/aegis-go/aegis/pkg/core"
)

// RoleGuard allows a request through only when its X-Role header carries the
// required role. It is the demo's stand-in for a real credential check.
type RoleGuard struct {
	Role string
}

// CanActivate implements core.Guard.
func (g *RoleGuard) CanActivate(ctx core.Context) (bool, error) {
	return ctx.GetHeader("X-Role") == g.Role, nil
}

// AdminModule mounts the guarded admin surface.
type AdminModule struct{}

func (m *AdminModule) GetControllers() []core.Controller {
	return []core.Controller{&AdminController{}}
}

func (m *AdminModule) GetProviders() []core.Provider { return nil }
func (m *AdminModule) GetImports() []core.Module { return nil }
func (m *AdminModule) GetExports() interface{} { return nil }
func (m *AdminModule) GetMiddleware() []core.Middleware { return nil }
func (m *AdminModule) OnModuleInit() error { return nil }
func (m *AdminModule) OnModuleDestroy() error { return nil }

// AdminController sits behind a RoleGuard: every route registered after the
// UseGuards call inherits it through the controller's route group.
type AdminController struct{}

func (c *AdminController) GetPrefix() string { return "/admin" }
func (c *AdminController) GetMiddleware() []core.Middleware { return nil }

func (c *AdminController) RegisterRoutes(r core.Router) error {
	r.UseGuards(&RoleGuard{Role: "admin"})
	r.GET("/users", core.Handler(func(ctx core.Context, _ *struct{}) (interface{}, error) {
		users, err := core.State[*UserService](ctx)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"users": users.List(), "admin": true}, nil
	}))
	r.DELETE("/users/:id", core.Handler(func(ctx core.Context, req *getUserRequest) (interface{}, error) {
		users, err := core.State[*UserService](ctx)
		if err != nil {
			return nil, err
		}
		if !users.Delete(req.ID) {
			return nil, core.NotFound("user " + req.ID + " not found")
		}
		return core.WithStatus(http.StatusOK, map[string]string{"deleted": req.ID}), nil
	}))
	return nil
}
