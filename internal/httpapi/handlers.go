// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/account"
	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/post"
	"github.com/inkpost/inkpost/internal/resource"
)

const maxBodyBytes = 1 << 20

// LoginRequest is the body of POST /v1/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	Subject   string    `json:"subject"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (a *api) hello(w http.ResponseWriter, _ *http.Request) {
	location := a.ConfigLocation()
	if location == "" {
		location = "missing config location"
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client may have gone away
	fmt.Fprintf(w, "\nhello world! Using configuration from %s\n\n", location)
}

func (a *api) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !a.decode(w, r, &req) {
		return
	}
	result, err := a.Login.Login(r.Context(), req.Username, req.Password, time.Now())
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *api) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, a.logger, oops.Code("HTTPAPI_MISSING_CLAIMS").Errorf("no claims on authenticated request"))
		return
	}
	writeData(w, http.StatusOK, MeResponse{
		Subject:   claims.Subject,
		IssuedAt:  time.Unix(claims.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
	})
}

func (a *api) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := a.Accounts.List(r.Context())
	a.respond(w, r, http.StatusOK, accounts, err)
}

func (a *api) getAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	acct, err := a.Accounts.Get(r.Context(), id)
	a.respond(w, r, http.StatusOK, acct, err)
}

func (a *api) getAccountByUsername(w http.ResponseWriter, r *http.Request) {
	acct, err := a.Accounts.GetByUsername(r.Context(), mux.Vars(r)["username"])
	a.respond(w, r, http.StatusOK, acct, err)
}

func (a *api) createAccount(w http.ResponseWriter, r *http.Request) {
	var req account.CreateRequest
	if !a.decode(w, r, &req) {
		return
	}
	acct, err := a.Accounts.Create(r.Context(), req)
	a.respond(w, r, http.StatusCreated, acct, err)
}

func (a *api) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	var req account.UpdateRequest
	if !a.decode(w, r, &req) {
		return
	}
	acct, err := a.Accounts.Update(r.Context(), id, req)
	a.respond(w, r, http.StatusOK, acct, err)
}

func (a *api) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	a.respondNoContent(w, r, a.Accounts.Delete(r.Context(), id))
}

func (a *api) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Posts.List(r.Context())
	a.respond(w, r, http.StatusOK, posts, err)
}

func (a *api) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	p, err := a.Posts.Get(r.Context(), id)
	a.respond(w, r, http.StatusOK, p, err)
}

func (a *api) getPostBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := a.Posts.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	a.respond(w, r, http.StatusOK, p, err)
}

func (a *api) createPost(w http.ResponseWriter, r *http.Request) {
	var req post.Request
	if !a.decode(w, r, &req) {
		return
	}
	p, err := a.Posts.Create(r.Context(), req)
	a.respond(w, r, http.StatusCreated, p, err)
}

func (a *api) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	var req post.Request
	if !a.decode(w, r, &req) {
		return
	}
	p, err := a.Posts.Update(r.Context(), id, req)
	a.respond(w, r, http.StatusOK, p, err)
}

func (a *api) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r)
	if !ok {
		return
	}
	a.respondNoContent(w, r, a.Posts.Delete(r.Context(), id))
}

func (a *api) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}
	writeData(w, status, v)
}

func (a *api) respondNoContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, r, a.logger, oops.Code("HTTPAPI_INVALID_ID").
			With("id", raw).
			Wrapf(resource.ErrInvalidInput, "invalid id %q", raw))
		return 0, false
	}
	return id, true
}

func (a *api) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, r, a.logger, oops.Code("HTTPAPI_INVALID_BODY").
			Wrapf(resource.ErrInvalidInput, "invalid request body: %v", err))
		return false
	}
	return true
}
