// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/inkpost/inkpost/internal/account"
	accountpg "github.com/inkpost/inkpost/internal/account/postgres"
	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/httpapi"
	"github.com/inkpost/inkpost/internal/post"
	postpg "github.com/inkpost/inkpost/internal/post/postgres"
)

type apiClient struct {
	server *httptest.Server
	token  string
}

func (c *apiClient) do(method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(env.ctx, method, c.server.URL+path, reader)
	Expect(err).NotTo(HaveOccurred())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.server.Client().Do(req)
	Expect(err).NotTo(HaveOccurred())
	defer resp.Body.Close() //nolint:errcheck // test
	data, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	return resp.StatusCode, data
}

func newAPI() *apiClient {
	hasher := auth.NewArgon2idHasher()
	accounts, err := account.NewService(accountpg.NewStore(env.pool), hasher)
	Expect(err).NotTo(HaveOccurred())
	posts, err := post.NewService(postpg.NewStore(env.pool))
	Expect(err).NotTo(HaveOccurred())
	tokens, err := auth.NewTokenService(auth.StaticTokenConfig("integration-secret", time.Hour))
	Expect(err).NotTo(HaveOccurred())
	login, err := auth.NewLoginService(accounts, hasher, tokens)
	Expect(err).NotTo(HaveOccurred())

	handler, err := httpapi.NewHandler(httpapi.Deps{
		Accounts: accounts,
		Posts:    posts,
		Login:    login,
		Verifier: tokens,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	Expect(err).NotTo(HaveOccurred())

	server := httptest.NewServer(handler)
	DeferCleanup(server.Close)
	return &apiClient{server: server}
}

var _ = Describe("HTTP API on PostgreSQL", func() {
	var api *apiClient

	BeforeEach(func() {
		env.truncate()
		api = newAPI()
	})

	register := func(username, password string) account.Account {
		status, body := api.do(http.MethodPost, "/v1/accounts", account.CreateRequest{Username: username, Password: password})
		Expect(status).To(Equal(http.StatusCreated), string(body))
		var out struct {
			Data account.Account `json:"data"`
		}
		Expect(json.Unmarshal(body, &out)).To(Succeed())
		return out.Data
	}

	login := func(username, password string) {
		status, body := api.do(http.MethodPost, "/v1/login", httpapi.LoginRequest{Username: username, Password: password})
		Expect(status).To(Equal(http.StatusOK), string(body))
		var result auth.LoginResult
		Expect(json.Unmarshal(body, &result)).To(Succeed())
		api.token = result.Token
	}

	It("registers, logs in and manages posts", func() {
		alice := register("alice", "wonderland")
		Expect(alice.ID).To(BeNumerically(">", 0))
		Expect(alice.Password).To(HavePrefix("$argon2id$"))

		login("alice", "wonderland")

		status, body := api.do(http.MethodPost, "/v1/posts", post.Request{
			AuthorID: alice.ID, Title: "Hello", Slug: "hello", Content: "first", Status: "Published",
		})
		Expect(status).To(Equal(http.StatusCreated), string(body))

		status, body = api.do(http.MethodGet, "/v1/posts/slug/hello", nil)
		Expect(status).To(Equal(http.StatusOK))
		Expect(string(body)).To(ContainSubstring(`"status":"Published"`))
	})

	It("rejects a post whose author does not exist", func() {
		alice := register("alice", "pw")
		login("alice", "pw")

		status, body := api.do(http.MethodPost, "/v1/posts", post.Request{
			AuthorID: alice.ID + 100, Title: "Orphan", Slug: "orphan",
		})
		Expect(status).To(Equal(http.StatusConflict), string(body))
	})

	It("deletes an author's posts with the account", func() {
		alice := register("alice", "pw")
		login("alice", "pw")

		status, _ := api.do(http.MethodPost, "/v1/posts", post.Request{AuthorID: alice.ID, Title: "T", Slug: "t"})
		Expect(status).To(Equal(http.StatusCreated))

		status, _ = api.do(http.MethodDelete, fmt.Sprintf("/v1/accounts/%d", alice.ID), nil)
		Expect(status).To(Equal(http.StatusNoContent))

		status, _ = api.do(http.MethodDelete, fmt.Sprintf("/v1/accounts/%d", alice.ID), nil)
		Expect(status).To(Equal(http.StatusNotFound))

		var remaining int
		Expect(env.pool.QueryRow(env.ctx, `SELECT COUNT(*) FROM posts`).Scan(&remaining)).To(Succeed())
		Expect(remaining).To(BeZero())
	})

	It("keeps the last login untouched by updates", func() {
		alice := register("alice", "pw")
		login("alice", "pw")

		status, body := api.do(http.MethodPut, fmt.Sprintf("/v1/accounts/%d", alice.ID),
			account.UpdateRequest{Username: "alice", Password: "new", Status: "Blocked"})
		Expect(status).To(Equal(http.StatusOK), string(body))
		Expect(string(body)).To(ContainSubstring(`"status":"Blocked"`))
		Expect(string(body)).NotTo(ContainSubstring(`"last_login"`))
	})

	It("admits exactly one of many concurrent registrations of a username", func() {
		const n = 8
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			statuses = map[int]int{}
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				status, _ := api.do(http.MethodPost, "/v1/accounts", account.CreateRequest{Username: "racer", Password: "pw"})
				mu.Lock()
				statuses[status]++
				mu.Unlock()
			}()
		}
		wg.Wait()

		Expect(statuses[http.StatusCreated]).To(Equal(1))
		Expect(statuses[http.StatusConflict]).To(Equal(n - 1))
	})
})
