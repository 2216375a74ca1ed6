// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/oops"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/inkpost/inkpost/internal/account"
	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/post"
)

// AccountService is the account surface the handlers use.
type AccountService interface {
	List(ctx context.Context) ([]*account.Account, error)
	Get(ctx context.Context, id int64) (*account.Account, error)
	GetByUsername(ctx context.Context, username string) (*account.Account, error)
	Create(ctx context.Context, req account.CreateRequest) (*account.Account, error)
	Update(ctx context.Context, id int64, req account.UpdateRequest) (*account.Account, error)
	Delete(ctx context.Context, id int64) error
}

// PostService is the post surface the handlers use.
type PostService interface {
	List(ctx context.Context) ([]*post.Post, error)
	Get(ctx context.Context, id int64) (*post.Post, error)
	GetBySlug(ctx context.Context, slug string) (*post.Post, error)
	Create(ctx context.Context, req post.Request) (*post.Post, error)
	Update(ctx context.Context, id int64, req post.Request) (*post.Post, error)
	Delete(ctx context.Context, id int64) error
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string, now time.Time) (*auth.LoginResult, error)
}

// RequestObserver records finished requests.
type RequestObserver interface {
	ObserveHTTP(route, method string, status int, elapsed time.Duration)
}

// Deps are the collaborators of the HTTP API.
type Deps struct {
	Accounts AccountService
	Posts    PostService
	Login    Authenticator
	Verifier auth.Verifier
	// ConfigLocation reports the config file in use for /v1/hello.
	ConfigLocation func() string
	// Observer is optional.
	Observer RequestObserver
	Logger   *slog.Logger
}

func (d *Deps) validate() error {
	switch {
	case d.Accounts == nil:
		return oops.Code("HTTPAPI_INVALID_CONFIG").Errorf("account service is required")
	case d.Posts == nil:
		return oops.Code("HTTPAPI_INVALID_CONFIG").Errorf("post service is required")
	case d.Login == nil:
		return oops.Code("HTTPAPI_INVALID_CONFIG").Errorf("login service is required")
	case d.Verifier == nil:
		return oops.Code("HTTPAPI_INVALID_CONFIG").Errorf("token verifier is required")
	}
	return nil
}

type api struct {
	Deps
	logger     *slog.Logger
	openAPIDoc []byte
}

// NewHandler builds the routed, instrumented HTTP handler.
func NewHandler(deps Deps) (http.Handler, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	doc, err := BuildOpenAPI()
	if err != nil {
		return nil, err
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, oops.Code("HTTPAPI_OPENAPI_FAILED").Wrapf(err, "marshal openapi document")
	}

	a := &api{Deps: deps, logger: deps.Logger, openAPIDoc: docJSON}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.ConfigLocation == nil {
		a.ConfigLocation = func() string { return "" }
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "route not found", Code: "ROUTE_NOT_FOUND"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed", Code: "METHOD_NOT_ALLOWED"})
	})
	r.Use(a.requestID, a.recoverPanics, a.instrument)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/hello", a.hello).Methods(http.MethodGet)
	v1.HandleFunc("/api-docs/openapi.json", a.openAPI).Methods(http.MethodGet)
	v1.HandleFunc("/login", a.login).Methods(http.MethodPost)
	v1.HandleFunc("/accounts", a.createAccount).Methods(http.MethodPost)

	protected := v1.NewRoute().Subrouter()
	protected.Use(auth.Middleware(a.Verifier, a.logger))
	protected.HandleFunc("/me", a.me).Methods(http.MethodGet)

	protected.HandleFunc("/accounts", a.listAccounts).Methods(http.MethodGet)
	protected.HandleFunc("/accounts/name/{username}", a.getAccountByUsername).Methods(http.MethodGet)
	protected.HandleFunc("/accounts/{id:[0-9]+}", a.getAccount).Methods(http.MethodGet)
	protected.HandleFunc("/accounts/{id:[0-9]+}", a.updateAccount).Methods(http.MethodPut)
	protected.HandleFunc("/accounts/{id:[0-9]+}", a.deleteAccount).Methods(http.MethodDelete)

	protected.HandleFunc("/posts", a.listPosts).Methods(http.MethodGet)
	protected.HandleFunc("/posts", a.createPost).Methods(http.MethodPost)
	protected.HandleFunc("/posts/slug/{slug}", a.getPostBySlug).Methods(http.MethodGet)
	protected.HandleFunc("/posts/{id:[0-9]+}", a.getPost).Methods(http.MethodGet)
	protected.HandleFunc("/posts/{id:[0-9]+}", a.updatePost).Methods(http.MethodPut)
	protected.HandleFunc("/posts/{id:[0-9]+}", a.deletePost).Methods(http.MethodDelete)

	return otelhttp.NewHandler(r, "inkpost.http"), nil
}
