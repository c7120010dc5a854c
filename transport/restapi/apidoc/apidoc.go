// Package apidoc builds the OpenAPI 3 document of the REST API from the handler request and response types.
package apidoc

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/segmentio/encoding/json"
	"github.com/yusufsyaifudin/appkeeper/assets"
	"github.com/yusufsyaifudin/appkeeper/pkg/respbuilder"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/handlerapp"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/handlercatalog"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/handlerdash"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/handlersession"
	"gopkg.in/yaml.v3"
)

const errorSchemaName = "HTTPError"

type route struct {
	Method      string
	Path        string
	Tag         string
	Summary     string
	OperationID string
	Params      []*openapi3.Parameter
	Request     interface{}
	Response    interface{}
	Status      int
	HTML        bool
}

func queryParam(name, typ, desc string) *openapi3.Parameter {
	p := openapi3.NewQueryParameter(name).WithDescription(desc)
	p.Schema = &openapi3.SchemaRef{Value: &openapi3.Schema{Type: typ}}
	p.Required = false
	return p
}

func queryArrayParam(name, desc string) *openapi3.Parameter {
	p := openapi3.NewQueryParameter(name).WithDescription(desc)
	p.Schema = &openapi3.SchemaRef{Value: openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())}
	p.Required = false
	return p
}

func pathParam(name, typ, desc string) *openapi3.Parameter {
	p := openapi3.NewPathParameter(name).WithDescription(desc)
	p.Schema = &openapi3.SchemaRef{Value: &openapi3.Schema{Type: typ}}
	return p
}

func routes() []route {
	const (
		tagApp     = "Application"
		tagCatalog = "Catalog"
		tagSession = "Session"
		tagImport  = "Import"
		tagDash    = "Dashboard"
	)

	appIDParam := pathParam("id", "integer", "Application id")
	sidParam := pathParam("sid", "string", "Session id")

	return []route{
		{
			Method: http.MethodPost, Path: "/api/v1/apps", Tag: tagApp,
			Summary: "Create application", OperationID: "AppCreate",
			Request: handlerapp.CreateAppReq{}, Response: handlerapp.CreateAppResp{}, Status: http.StatusCreated,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/apps", Tag: tagApp,
			Summary: "List applications", OperationID: "AppList",
			Params: []*openapi3.Parameter{
				queryArrayParam("status", "Status filter, repeat or comma separate"),
				queryArrayParam("platform", "Platform filter, repeat or comma separate"),
				queryParam("sort", "string", "newest or oldest"),
				queryParam("page", "integer", "Page number starting from 1"),
			},
			Response: handlerapp.ListAppsResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPost, Path: "/api/v1/apps/validate", Tag: tagApp,
			Summary: "Validate application fields", OperationID: "AppValidate",
			Request: handlerapp.ValidateAppReq{}, Response: handlerapp.ValidateAppResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/apps/{id}", Tag: tagApp,
			Summary: "Get application", OperationID: "AppGetOne",
			Params:   []*openapi3.Parameter{appIDParam},
			Response: handlerapp.GetAppResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPut, Path: "/api/v1/apps/{id}", Tag: tagApp,
			Summary: "Edit application", OperationID: "AppPut",
			Params:  []*openapi3.Parameter{appIDParam},
			Request: handlerapp.PutAppRequest{}, Response: handlerapp.PutAppResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/catalog/search", Tag: tagCatalog,
			Summary: "Search store listings", OperationID: "CatalogSearch",
			Params: []*openapi3.Parameter{
				queryArrayParam("platform", "Selected platforms, the first one is used on import"),
				queryParam("q", "string", "Name, package name or website url"),
			},
			Response: handlercatalog.SearchResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPost, Path: "/api/v1/catalog/import", Tag: tagCatalog,
			Summary: "Convert a listing into form fields", OperationID: "CatalogImport",
			Request: handlercatalog.ImportReq{}, Response: handlercatalog.ImportResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPost, Path: "/api/v1/sessions", Tag: tagSession,
			Summary: "Create session", OperationID: "SessionCreate",
			Response: handlersession.CreateSessionResp{}, Status: http.StatusCreated,
		},
		{
			Method: http.MethodDelete, Path: "/api/v1/sessions/{sid}", Tag: tagSession,
			Summary: "Clear session", OperationID: "SessionClear",
			Params:   []*openapi3.Parameter{sidParam},
			Response: handlersession.ClearSessionResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/sessions/{sid}/board", Tag: tagSession,
			Summary: "Presented rows", OperationID: "BoardGet",
			Params:   []*openapi3.Parameter{sidParam},
			Response: handlersession.BoardResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPut, Path: "/api/v1/sessions/{sid}/board/filters", Tag: tagSession,
			Summary: "Set filters", OperationID: "BoardSetFilters",
			Params:  []*openapi3.Parameter{sidParam},
			Request: handlersession.SetFiltersReq{}, Response: handlersession.BoardResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPut, Path: "/api/v1/sessions/{sid}/board/sort", Tag: tagSession,
			Summary: "Set sort order", OperationID: "BoardSetSort",
			Params:  []*openapi3.Parameter{sidParam},
			Request: handlersession.SetSortReq{}, Response: handlersession.BoardResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPut, Path: "/api/v1/sessions/{sid}/board/page", Tag: tagSession,
			Summary: "Change page", OperationID: "BoardSetPage",
			Params:  []*openapi3.Parameter{sidParam},
			Request: handlersession.SetPageReq{}, Response: handlersession.BoardResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPost, Path: "/api/v1/sessions/{sid}/form", Tag: tagSession,
			Summary: "Open create or edit form", OperationID: "FormOpen",
			Params:  []*openapi3.Parameter{sidParam},
			Request: handlersession.OpenFormReq{}, Response: handlersession.FormResp{}, Status: http.StatusCreated,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/sessions/{sid}/form", Tag: tagSession,
			Summary: "Open form state", OperationID: "FormGet",
			Params:   []*openapi3.Parameter{sidParam},
			Response: handlersession.FormResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPatch, Path: "/api/v1/sessions/{sid}/form", Tag: tagSession,
			Summary: "Edit one form field", OperationID: "FormSetField",
			Params:  []*openapi3.Parameter{sidParam},
			Request: handlersession.SetFieldReq{}, Response: handlersession.FormResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodDelete, Path: "/api/v1/sessions/{sid}/form", Tag: tagSession,
			Summary: "Close form", OperationID: "FormClose",
			Params:   []*openapi3.Parameter{sidParam},
			Response: handlersession.CloseResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPost, Path: "/api/v1/sessions/{sid}/form/submit", Tag: tagSession,
			Summary: "Submit form", OperationID: "FormSubmit",
			Params:   []*openapi3.Parameter{sidParam},
			Response: handlersession.SubmitFormResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPost, Path: "/api/v1/sessions/{sid}/import", Tag: tagImport,
			Summary: "Open import dialog", OperationID: "ImportOpen",
			Params:   []*openapi3.Parameter{sidParam},
			Response: handlersession.DialogResp{}, Status: http.StatusCreated,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/sessions/{sid}/import", Tag: tagImport,
			Summary: "Import dialog state", OperationID: "ImportState",
			Params:   []*openapi3.Parameter{sidParam},
			Response: handlersession.DialogResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodDelete, Path: "/api/v1/sessions/{sid}/import", Tag: tagImport,
			Summary: "Close import dialog", OperationID: "ImportClose",
			Params:   []*openapi3.Parameter{sidParam},
			Response: handlersession.DialogResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPut, Path: "/api/v1/sessions/{sid}/import/platforms", Tag: tagImport,
			Summary: "Toggle platform", OperationID: "ImportTogglePlatform",
			Params:  []*openapi3.Parameter{sidParam},
			Request: handlersession.TogglePlatformReq{}, Response: handlersession.DialogResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPut, Path: "/api/v1/sessions/{sid}/import/query", Tag: tagImport,
			Summary: "Set search query", OperationID: "ImportSetQuery",
			Params:  []*openapi3.Parameter{sidParam},
			Request: handlersession.SetQueryReq{}, Response: handlersession.DialogResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPost, Path: "/api/v1/sessions/{sid}/import/search", Tag: tagImport,
			Summary: "Start search", OperationID: "ImportSearch",
			Params:  []*openapi3.Parameter{sidParam},
			Request: handlersession.SearchReq{}, Response: handlersession.DialogResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodPost, Path: "/api/v1/sessions/{sid}/import/pick", Tag: tagImport,
			Summary: "Import a search result", OperationID: "ImportPick",
			Params:  []*openapi3.Parameter{sidParam},
			Request: handlersession.PickReq{}, Response: handlersession.FormResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/dashboard", Tag: tagDash,
			Summary: "Dashboard overview", OperationID: "DashOverview",
			Params:   []*openapi3.Parameter{queryParam("refresh", "boolean", "Regenerate the revenue graph")},
			Response: handlerdash.OverviewResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/dashboard/spend", Tag: tagDash,
			Summary: "Spend report", OperationID: "DashSpend",
			Params: []*openapi3.Parameter{
				queryParam("from", "string", "Start date, yyyy-mm-dd"),
				queryParam("to", "string", "End date, yyyy-mm-dd, at most 15 days after from"),
			},
			Response: handlerdash.SpendReportResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/dashboard/campaigns", Tag: tagDash,
			Summary: "Top performing campaigns", OperationID: "DashCampaigns",
			Response: handlerdash.CampaignsResp{}, Status: http.StatusOK,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/dashboard/charts/revenue", Tag: tagDash,
			Summary: "Revenue chart", OperationID: "DashRevenueChart",
			Status: http.StatusOK, HTML: true,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/dashboard/charts/geo", Tag: tagDash,
			Summary: "Active users by country chart", OperationID: "DashGeoChart",
			Status: http.StatusOK, HTML: true,
		},
	}
}

func schemaRef(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Ref: fmt.Sprintf("#/components/schemas/%s", name)}
}

// addSchema generates the schema of value and registers it under name.
func addSchema(components openapi3.Components, name string, value interface{}) error {
	ref, err := openapi3gen.NewSchemaRefForValue(value, components.Schemas)
	if err != nil {
		return fmt.Errorf("cannot generate schema %s: %w", name, err)
	}

	components.Schemas[name] = ref
	return nil
}

// addEnvelope registers the success envelope wrapping the data schema.
func addEnvelope(components openapi3.Components, name, dataName string) {
	envelope := openapi3.NewObjectSchema().
		WithProperty("trace_id", openapi3.NewStringSchema()).
		WithPropertyRef("data", schemaRef(dataName))

	components.Schemas[name] = &openapi3.SchemaRef{Value: envelope}
}

func operation(components openapi3.Components, rt route) (*openapi3.Operation, error) {
	op := openapi3.NewOperation()
	op.Tags = []string{rt.Tag}
	op.Summary = rt.Summary
	op.OperationID = rt.OperationID
	for _, p := range rt.Params {
		op.AddParameter(p)
	}

	if rt.Request != nil {
		reqName := rt.OperationID + "Req"
		if err := addSchema(components, reqName, rt.Request); err != nil {
			return nil, err
		}

		reqBody := openapi3.NewRequestBody().WithJSONSchemaRef(schemaRef(reqName))
		components.RequestBodies[reqName] = &openapi3.RequestBodyRef{Value: reqBody}
		op.RequestBody = &openapi3.RequestBodyRef{Ref: fmt.Sprintf("#/components/requestBodies/%s", reqName)}
	}

	switch {
	case rt.HTML:
		content := openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"})
		op.AddResponse(rt.Status, openapi3.NewResponse().WithContent(content).WithDescription("Rendered chart page"))

	case rt.Response != nil:
		dataName := rt.OperationID + "Resp"
		if err := addSchema(components, dataName, rt.Response); err != nil {
			return nil, err
		}

		envName := dataName + "Envelope"
		addEnvelope(components, envName, dataName)
		op.AddResponse(rt.Status, openapi3.NewResponse().
			WithJSONSchemaRef(schemaRef(envName)).
			WithDescription(http.StatusText(rt.Status)))
	}

	op.AddResponse(0, openapi3.NewResponse().
		WithJSONSchemaRef(schemaRef(errorSchemaName)).
		WithDescription("Error envelope, per field messages in error.fields"))

	return op, nil
}

func setOperation(item *openapi3.PathItem, method string, op *openapi3.Operation) {
	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// Build returns the OpenAPI document of every /api/v1 route.
func Build(ctx context.Context) (*openapi3.T, error) {
	components := openapi3.Components{
		Schemas:       map[string]*openapi3.SchemaRef{},
		RequestBodies: map[string]*openapi3.RequestBodyRef{},
	}
	paths := make(map[string]*openapi3.PathItem)

	if err := addSchema(components, errorSchemaName, respbuilder.HTTPError{}); err != nil {
		return nil, err
	}

	for _, rt := range routes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		op, err := operation(components, rt)
		if err != nil {
			return nil, fmt.Errorf("route %s %s: %w", rt.Method, rt.Path, err)
		}

		if _, exist := paths[rt.Path]; !exist {
			paths[rt.Path] = &openapi3.PathItem{}
		}

		setOperation(paths[rt.Path], rt.Method, op)
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       assets.ServiceName,
			Description: "Application registry and dashboard API",
			Version:     assets.ServiceVersion,
		},
		Servers: openapi3.Servers{
			{
				URL:         "http://localhost:1234/",
				Description: "Localhost",
			},
		},
		Components: components,
		Paths:      paths,
	}

	return doc, nil
}

// Operations lists "METHOD path" of every documented route, sorted.
func Operations(doc *openapi3.T) []string {
	out := make([]string, 0)
	for p, item := range doc.Paths {
		for method := range item.Operations() {
			out = append(out, method+" "+p)
		}
	}

	sort.Strings(out)
	return out
}

// JSON marshals doc.
func JSON(doc *openapi3.T) ([]byte, error) {
	j, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("cannot marshal openapi3 doc: %w", err)
	}

	return j, nil
}

// YAML converts the JSON form of doc so the key names stay identical.
func YAML(doc *openapi3.T) ([]byte, error) {
	j, err := JSON(doc)
	if err != nil {
		return nil, err
	}

	var i interface{}
	err = json.Unmarshal(j, &i)
	if err != nil {
		return nil, fmt.Errorf("cannot unmarshal openapi3 doc: %w", err)
	}

	y, err := yaml.Marshal(i)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal YAML openapi3 doc: %w", err)
	}

	return y, nil
}
