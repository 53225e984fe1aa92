package demo

import (
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/aegis-go/aegis/pkg/core"
)

// User is the demo domain entity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserService is the in-memory user store registered as a singleton
// provider. All methods are safe for concurrent use; the store is shared
// across every request once the container hands it out.
type UserService struct {
	mu    sync.RWMutex
	seq   int
	users map[string]User
}

// NewUserService seeds the store with one user so GET routes have something
// to return on a fresh process.
func NewUserService() *UserService {
	s := &UserService{users: make(map[string]User)}
	s.Create("Ada", "ada@example.com")
	return s
}

// List returns all users ordered by id.
func (s *UserService) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the user with the given id, or false.
func (s *UserService) Get(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// Create stores a new user and returns it with its assigned id.
func (s *UserService) Create(name, email string) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	u := User{ID: strconv.Itoa(s.seq), Name: name, Email: email}
	s.users[u.ID] = u
	return u
}

// Delete removes the user with the given id, reporting whether it existed.
func (s *UserService) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	delete(s.users, id)
	return ok
}

// UsersModule bundles the user store and its controller.
type UsersModule struct{}

func (m *UsersModule) GetControllers() []core.Controller {
	return []core.Controller{&UsersController{}}
}

func (m *UsersModule) GetProviders() []core.Provider {
	return []core.Provider{
		core.ProvideSingleton(func(core.Container) (*UserService, error) {
			return NewUserService(), nil
		}),
	}
}

func (m *UsersModule) GetImports() []core.Module { return nil }
func (m *UsersModule) GetExports() interface{} { return core.TypeToken[*UserService]() }
func (m *UsersModule) GetMiddleware() []core.Middleware { return nil }
func (m *UsersModule) OnModuleInit() error { return nil }
func (m *UsersModule) OnModuleDestroy() error { return nil }

type getUserRequest struct {
	ID string `path:"id" validate:"required"`
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UsersController exposes CRUD routes under /users. Its routes go through
// the global route registry: RegisterRoutes records each entry once per
// process and then mounts whatever the registry holds for this controller
// type, the same path a code generator emitting Record calls would take.
type UsersController struct{}

var usersRoutesOnce sync.Once

func (c *UsersController) GetPrefix() string { return "/users" }
func (c *UsersController) GetMiddleware() []core.Middleware { return nil }

func (c *UsersController) RegisterRoutes(r core.Router) error {
	usersRoutesOnce.Do(func() {
		core.Record(c, core.RouteEntry{Method: http.MethodGet, Path: "/", HandlerName: "listUsers", Handler: listUsers})
		core.Record(c, core.RouteEntry{Method: http.MethodGet, Path: "/:id", HandlerName: "getUser", Handler: getUser})
		core.Record(c, core.RouteEntry{Method: http.MethodPost, Path: "/", HandlerName: "createUser", Handler: createUser})
		core.Record(c, core.RouteEntry{Method: http.MethodDelete, Path: "/:id", HandlerName: "deleteUser", Handler: deleteUser})
	})
	for _, entry := range core.For(c) {
		if entry.Method == http.MethodPost {
			r.HandleWithOptions(entry.Method, entry.Path, entry.Handler, core.RouteOptions{
				Pipes: []core.Pipe{core.ValidationPipe{}},
			})
			continue
		}
		r.Handle(entry.Method, entry.Path, entry.Handler)
	}
	return nil
}

var listUsers = core.Handler(func(ctx core.Context, _ *struct{}) (interface{}, error) {
	users, err := core.State[*UserService](ctx)
	if err != nil {
		return nil, err
	}
	return users.List(), nil
})

var getUser = core.Handler(func(ctx core.Context, req *getUserRequest) (interface{}, error) {
	users, err := core.State[*UserService](ctx)
	if err != nil {
		return nil, err
	}
	u, ok := users.Get(req.ID)
	if !ok {
		return nil, core.NotFound("user " + req.ID + " not found")
	}
	return u, nil
})

var createUser = core.Handler(func(ctx core.Context, req *createUserRequest) (interface{}, error) {
	users, err := core.State[*UserService](ctx)
	if err != nil {
		return nil, err
	}
	u := users.Create(req.Name, req.Email)
	return core.WithStatus(http.StatusCreated, u), nil
})

var deleteUser = core.Handler(func(ctx core.Context, req *getUserRequest) (interface{}, error) {
	users, err := core.State[*UserService](ctx)
	if err != nil {
		return nil, err
	}
	if !users.Delete(req.ID) {
		return nil, core.NotFound("user " + req.ID + " not found")
	}
	return nil, nil
})
