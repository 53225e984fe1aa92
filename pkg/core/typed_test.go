package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Ref   string `query:"ref"`
	Org   string `path:"org"`
}

func typedContext(method, target, contentType, body string) *AppContext {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return NewContext(httptest.NewRecorder(), req)
}

func TestBindJSONBodyWithParamsAndQuery(t *testing.T) {
	ctx := typedContext(http.MethodPost, "/orgs/acme/users?ref=launch", "application/json",
		`{"name":"Ada","email":"ada@example.com"}`)
	ctx.SetParam("org", "acme")

	req, err := Bind[signupRequest](ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", req.Name)
	assert.Equal(t, "ada@example.com", req.Email)
	assert.Equal(t, "launch", req.Ref)
	assert.Equal(t, "acme", req.Org)
}

func TestBindMalformedJSONIsDeserialization(t *testing.T) {
	ctx := typedContext(http.MethodPost, "/users", "application/json", "not-json")

	_, err := Bind[signupRequest](ctx)
	require.Error(t, err)
	assert.Equal(t, KindDeserialization, KindOf(err))
	assert.Equal(t, http.StatusBadRequest, StatusFor(KindOf(err)))
}

func TestBindValidationFailureIsValidation(t *testing.T) {
	ctx := typedContext(http.MethodPost, "/users", "application/json",
		`{"name":"Ada","email":"not-an-email"}`)

	_, err := Bind[signupRequest](ctx)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	coreErr, ok := err.(*Error)
	require.True(t, ok)
	require.Len(t, coreErr.Fields, 1)
	assert.Equal(t, "Email", coreErr.Fields[0].Field)
}

func TestBindFormBody(t *testing.T) {
	ctx := typedContext(http.MethodPost, "/users", "application/x-www-form-urlencoded",
		"name=Ada&email=ada%40example.com")

	req, err := Bind[signupRequest](ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", req.Name)
	assert.Equal(t, "ada@example.com", req.Email)
}

type numericRequest struct {
	Page  int     `query:"page"`
	Limit uint    `query:"limit"`
	Score float64 `query:"score"`
	Full  bool    `query:"full"`
}

func TestBindTypedQueryConversions(t *testing.T) {
	ctx := typedContext(http.MethodGet, "/items?page=3&limit=20&score=1.5&full=true", "", "")

	req, err := Bind[numericRequest](ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, uint(20), req.Limit)
	assert.Equal(t, 1.5, req.Score)
	assert.True(t, req.Full)
}

func TestHandlerRunsExtractCallRespond(t *testing.T) {
	handler := Handler(func(ctx Context, req *signupRequest) (interface{}, error) {
		return map[string]string{"name": req.Name}, nil
	})

	ctx := typedContext(http.MethodPost, "/users", "application/json",
		`{"name":"Ada","email":"ada@example.com"}`)
	require.NoError(t, handler(ctx))

	rec := ctx.Response().(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Ada"}`, rec.Body.String())
}

func TestStateResolvesContainerProvider(t *testing.T) {
	container := NewContainer()
	require.NoError(t, container.Register(ProvideValue(&greeter{prefix: "hi"})))

	ctx := typedContext(http.MethodGet, "/", "", "")
	ctx.SetContainer(container)

	got, err := State[*greeter](ctx)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.prefix)
}

func TestStateWithoutContainerIsInternal(t *testing.T) {
	ctx := typedContext(http.MethodGet, "/", "", "")

	_, err := State[*greeter](ctx)
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestExtRoundTrip(t *testing.T) {
	type traceID string
	ctx := typedContext(http.MethodGet, "/", "", "")

	SetExt(ctx, traceID("abc-123"))
	got, err := Ext[traceID](ctx)
	require.NoError(t, err)
	assert.Equal(t, traceID("abc-123"), got)
}

func TestExtMissingIsInternal(t *testing.T) {
	type absent struct{}
	ctx := typedContext(http.MethodGet, "/", "", "")

	_, err := Ext[absent](ctx)
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestRespondNilIsNoContent(t *testing.T) {
	ctx := typedContext(http.MethodGet, "/", "", "")
	require.NoError(t, Respond(ctx, nil, nil))

	rec := ctx.Response().(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRespondStatusResponse(t *testing.T) {
	ctx := typedContext(http.MethodPost, "/", "", "")
	require.NoError(t, Respond(ctx, WithStatus(http.StatusCreated, map[string]string{"id": "7"}), nil))

	rec := ctx.Response().(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"7"}`, rec.Body.String())
}

func TestRespondRawResponseWritesHeaders(t *testing.T) {
	ctx := typedContext(http.MethodGet, "/", "", "")
	require.NoError(t, Respond(ctx, Response{
		Status:  http.StatusAccepted,
		Headers: map[string]string{"X-Flavor": "raw"},
		Body:    map[string]bool{"ok": true},
	}, nil))

	rec := ctx.Response().(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "raw", rec.Header().Get("X-Flavor"))
}

func TestRespondJSONRoundTrip(t *testing.T) {
	original := signupRequest{Name: "Ada", Email: "ada@example.com"}
	ctx := typedContext(http.MethodGet, "/", "", "")
	require.NoError(t, Respond(ctx, original, nil))

	rec := ctx.Response().(*httptest.ResponseRecorder)
	var decoded signupRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.Email, decoded.Email)
}

func TestRespondErrorShortCircuits(t *testing.T) {
	ctx := typedContext(http.MethodGet, "/", "", "")
	err := Respond(ctx, map[string]string{"unused": "x"}, Conflict("taken"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.False(t, ctx.IsWritten())
}
