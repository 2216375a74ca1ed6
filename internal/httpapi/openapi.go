// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkpost Contributors

package httpapi

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"

	"github.com/inkpost/inkpost/internal/account"
	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/post"
)

// OpenAPIPath is where the API description is served.
const OpenAPIPath = "/v1/api-docs/openapi.json"

const schemaRef = "#/components/schemas/"

// OpenAPIDocument is the subset of OpenAPI 3.1 the API describes itself with.
type OpenAPIDocument struct {
	OpenAPI    string                          `json:"openapi"`
	Info       OpenAPIInfo                     `json:"info"`
	Paths      map[string]map[string]Operation `json:"paths"`
	Components Components                      `json:"components"`
}

// OpenAPIInfo names the API.
type OpenAPIInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Operation is one method on one path.
type Operation struct {
	OperationID string                `json:"operationId"`
	Summary     string                `json:"summary"`
	Tags        []string              `json:"tags,omitempty"`
	Security    []map[string][]string `json:"security,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty"`
	RequestBody *Body                 `json:"requestBody,omitempty"`
	Responses   map[string]Response   `json:"responses"`
}

// Parameter is a path parameter.
type Parameter struct {
	Name     string             `json:"name"`
	In       string             `json:"in"`
	Required bool               `json:"required"`
	Schema   *jsonschema.Schema `json:"schema"`
}

// Body is a request body.
type Body struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// Response is a documented status code.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType carries the schema of one content type.
type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

// Components holds the reusable schemas and the bearer security scheme.
type Components struct {
	Schemas         map[string]*jsonschema.Schema `json:"schemas"`
	SecuritySchemes map[string]SecurityScheme     `json:"securitySchemes"`
}

// SecurityScheme describes how protected routes authenticate.
type SecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme"`
	BearerFormat string `json:"bearerFormat,omitempty"`
}

// shape is how a route wraps its payload.
type shape int

const (
	shapeNone shape = iota
	shapeBare
	shapeData
	shapeDataList
	shapeText
)

type routeDoc struct {
	method  string
	path    string
	id      string
	summary string
	tag     string
	public  bool
	param   string
	request string
	status  int
	shape   shape
	schema  string
}

// documentedRoutes mirrors the routes NewHandler registers.
var documentedRoutes = []routeDoc{
	{http.MethodGet, "/v1/hello", "hello", "Report the config file in use", "meta", true, "", "", http.StatusOK, shapeText, ""},
	{http.MethodGet, OpenAPIPath, "openapi", "This document", "meta", true, "", "", http.StatusOK, shapeBare, ""},
	{http.MethodPost, "/v1/login", "login", "Exchange credentials for a session token", "auth", true, "", "LoginRequest", http.StatusOK, shapeBare, "LoginResult"},
	{http.MethodGet, "/v1/me", "me", "Describe the authenticated caller", "auth", false, "", "", http.StatusOK, shapeData, "MeResponse"},

	{http.MethodPost, "/v1/accounts", "createAccount", "Register an account", "accounts", true, "", "CreateAccountRequest", http.StatusCreated, shapeData, "Account"},
	{http.MethodGet, "/v1/accounts", "listAccounts", "List accounts", "accounts", false, "", "", http.StatusOK, shapeDataList, "Account"},
	{http.MethodGet, "/v1/accounts/name/{username}", "getAccountByUsername", "Fetch an account by username", "accounts", false, "username", "", http.StatusOK, shapeData, "Account"},
	{http.MethodGet, "/v1/accounts/{id}", "getAccount", "Fetch an account by id", "accounts", false, "id", "", http.StatusOK, shapeData, "Account"},
	{http.MethodPut, "/v1/accounts/{id}", "updateAccount", "Replace an account", "accounts", false, "id", "UpdateAccountRequest", http.StatusOK, shapeData, "Account"},
	{http.MethodDelete, "/v1/accounts/{id}", "deleteAccount", "Delete an account", "accounts", false, "id", "", http.StatusNoContent, shapeNone, ""},

	{http.MethodPost, "/v1/posts", "createPost", "Create a post", "posts", false, "", "PostRequest", http.StatusCreated, shapeData, "Post"},
	{http.MethodGet, "/v1/posts", "listPosts", "List posts", "posts", false, "", "", http.StatusOK, shapeDataList, "Post"},
	{http.MethodGet, "/v1/posts/slug/{slug}", "getPostBySlug", "Fetch a post by slug", "posts", false, "slug", "", http.StatusOK, shapeData, "Post"},
	{http.MethodGet, "/v1/posts/{id}", "getPost", "Fetch a post by id", "posts", false, "id", "", http.StatusOK, shapeData, "Post"},
	{http.MethodPut, "/v1/posts/{id}", "updatePost", "Replace a post", "posts", false, "id", "PostRequest", http.StatusOK, shapeData, "Post"},
	{http.MethodDelete, "/v1/posts/{id}", "deletePost", "Delete a post", "posts", false, "id", "", http.StatusNoContent, shapeNone, ""},
}

// componentTypes are reflected into components.schemas.
var componentTypes = map[string]any{
	"LoginRequest":         LoginRequest{},
	"LoginResult":          auth.LoginResult{},
	"MeResponse":           MeResponse{},
	"CreateAccountRequest": account.CreateRequest{},
	"UpdateAccountRequest": account.UpdateRequest{},
	"Account":              account.Account{},
	"PostRequest":          post.Request{},
	"Post":                 post.Post{},
	"ErrorResponse":        ErrorResponse{},
}

// BuildOpenAPI describes every route of the API. Component schemas are
// reflected from the request and response types.
func BuildOpenAPI() (*OpenAPIDocument, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
		Mapper:         statusSchema,
	}

	schemas := make(map[string]*jsonschema.Schema, len(componentTypes))
	for name, v := range componentTypes {
		s := r.Reflect(v)
		s.Version = ""
		s.ID = ""
		s.Title = name
		schemas[name] = s
	}

	doc := &OpenAPIDocument{
		OpenAPI: "3.1.0",
		Info:    OpenAPIInfo{Title: "Inkpost API", Version: "v1"},
		Paths:   make(map[string]map[string]Operation),
		Components: Components{
			Schemas: schemas,
			SecuritySchemes: map[string]SecurityScheme{
				"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
			},
		},
	}

	for _, rd := range documentedRoutes {
		if rd.request != "" && schemas[rd.request] == nil {
			return nil, oops.Code("HTTPAPI_OPENAPI_FAILED").With("schema", rd.request).Errorf("unknown request schema")
		}
		if rd.schema != "" && schemas[rd.schema] == nil {
			return nil, oops.Code("HTTPAPI_OPENAPI_FAILED").With("schema", rd.schema).Errorf("unknown response schema")
		}
		if doc.Paths[rd.path] == nil {
			doc.Paths[rd.path] = make(map[string]Operation)
		}
		doc.Paths[rd.path][strings.ToLower(rd.method)] = rd.operation()
	}
	return doc, nil
}

func (rd routeDoc) operation() Operation {
	op := Operation{
		OperationID: rd.id,
		Summary:     rd.summary,
		Tags:        []string{rd.tag},
		Responses: map[string]Response{
			strconv.Itoa(rd.status): rd.success(),
			"default":               jsonResponse("Error", ref("ErrorResponse")),
		},
	}
	if !rd.public {
		op.Security = []map[string][]string{{"bearer": {}}}
	}
	if rd.param != "" {
		param := &jsonschema.Schema{Type: "string"}
		if rd.param == "id" {
			param = &jsonschema.Schema{Type: "integer", Format: "int64"}
		}
		op.Parameters = []Parameter{{Name: rd.param, In: "path", Required: true, Schema: param}}
	}
	if rd.request != "" {
		op.RequestBody = &Body{
			Required: true,
			Content:  map[string]MediaType{"application/json": {Schema: ref(rd.request)}},
		}
	}
	return op
}

func (rd routeDoc) success() Response {
	switch rd.shape {
	case shapeText:
		return Response{
			Description: http.StatusText(rd.status),
			Content:     map[string]MediaType{"text/plain": {Schema: &jsonschema.Schema{Type: "string"}}},
		}
	case shapeBare:
		if rd.schema == "" {
			return jsonResponse(http.StatusText(rd.status), &jsonschema.Schema{Type: "object"})
		}
		return jsonResponse(http.StatusText(rd.status), ref(rd.schema))
	case shapeData:
		return jsonResponse(http.StatusText(rd.status), dataOf(ref(rd.schema)))
	case shapeDataList:
		return jsonResponse(http.StatusText(rd.status), dataOf(&jsonschema.Schema{Type: "array", Items: ref(rd.schema)}))
	default:
		return Response{Description: http.StatusText(rd.status)}
	}
}

func jsonResponse(description string, s *jsonschema.Schema) Response {
	return Response{
		Description: description,
		Content:     map[string]MediaType{"application/json": {Schema: s}},
	}
}

func ref(name string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: schemaRef + name}
}

func dataOf(inner *jsonschema.Schema) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("data", inner)
	return &jsonschema.Schema{Type: "object", Properties: props, Required: []string{"data"}}
}

// statusSchema renders the status enums by name, matching their JSON form.
func statusSchema(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeOf(account.Status(0)):
		return &jsonschema.Schema{Type: "string", Enum: []any{account.StatusActive.String(), account.StatusBlocked.String()}}
	case reflect.TypeOf(post.Status(0)):
		return &jsonschema.Schema{Type: "string", Enum: []any{post.StatusDraft.String(), post.StatusPublished.String()}}
	}
	return nil
}


func (a *api) openAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client may have gone away
	w.Write(a.openAPIDoc)
}
