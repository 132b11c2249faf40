package api

import (
	"net/http"

	"github.com/synapses/navigator/internal/config"
	"github.com/synapses/navigator/pkg/openapi"
)

// buildSpec constructs the OpenAPI document describing the API surface.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(schemas())
	spec.Components.AddResponses(map[string]*openapi.Response{
		"Unauthorized": {
			Description: "Missing or invalid bearer token",
			Content: map[string]*openapi.MediaType{
				"application/json": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"error": {Type: "string"},
						},
					},
				},
			},
		},
	})

	spec.Paths["/classifications"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Classify a fund product",
			Description: "Validates and sanitizes the submission, classifies it under SFDR, and persists the assessment with a derived compliance report.",
			Tags:        []string{"classifications"},
			RequestBody: openapi.RequestBodyJSON("ClassificationRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusCreated:      openapi.ResponseJSON("Assessment persisted", "ClassifyResponse"),
				http.StatusBadRequest:   openapi.ResponseRef("BadRequest"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/assessments"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List assessments",
			Tags:    []string{"assessments"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("status", "string", "Filter by assessment status", false),
				openapi.QueryParam("target_article", "string", "Filter by SFDR article", false),
				openapi.QueryParam("risk_level", "string", "Filter by risk level", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK:           openapi.ResponseJSON("Paginated assessments", "AssessmentPage"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/assessments/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search assessments",
			Tags:        []string{"assessments"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:           openapi.ResponseJSON("Paginated assessments", "AssessmentPage"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/assessments/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get an assessment",
			Tags:       []string{"assessments"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Assessment ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:           openapi.ResponseJSON("Assessment", "Assessment"),
				http.StatusNotFound:     openapi.ResponseRef("NotFound"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete an assessment",
			Tags:       []string{"assessments"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Assessment ID")},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent:    {Description: "Assessment deleted"},
				http.StatusNotFound:     openapi.ResponseRef("NotFound"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/reports"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List reports",
			Tags:    []string{"reports"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("report_type", "string", "Filter by report type", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK:           openapi.ResponseJSON("Paginated reports", "ReportPage"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/reports/{assessmentId}"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Generate a report",
			Description: "Generates a report of the requested type for an existing assessment. Omitting the body produces a full compliance report.",
			Tags:        []string{"reports"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("assessmentId", "Source assessment ID")},
			RequestBody: openapi.RequestBodyJSON("ReportRequest", false),
			Responses: map[int]*openapi.Response{
				http.StatusCreated:      openapi.ResponseJSON("Report generated", "Report"),
				http.StatusBadRequest:   openapi.ResponseRef("BadRequest"),
				http.StatusNotFound:     openapi.ResponseRef("NotFound"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/reports/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a report",
			Tags:       []string{"reports"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Report ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:           openapi.ResponseJSON("Report", "Report"),
				http.StatusNotFound:     openapi.ResponseRef("NotFound"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a report",
			Tags:       []string{"reports"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Report ID")},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent:    {Description: "Report deleted"},
				http.StatusNotFound:     openapi.ResponseRef("NotFound"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/documents"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List documents",
			Tags:    []string{"documents"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("document_type", "string", "Filter by document type", false),
				openapi.QueryParam("status", "string", "Filter by processing status", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK:           openapi.ResponseJSON("Paginated documents", "DocumentPage"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Upload a document",
			Description: "Multipart form upload with a file field and an optional document_type field.",
			Tags:        []string{"documents"},
			Responses: map[int]*openapi.Response{
				http.StatusCreated:      openapi.ResponseJSON("Document registered", "Document"),
				http.StatusBadRequest:   openapi.ResponseRef("BadRequest"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/documents/batch"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Upload multiple documents",
			Description: "Multipart form upload with repeated files fields. Per-file outcomes are reported individually.",
			Tags:        []string{"documents"},
			Responses: map[int]*openapi.Response{
				http.StatusOK:           openapi.ResponseJSON("Per-file results", "BatchResults"),
				http.StatusBadRequest:   openapi.ResponseRef("BadRequest"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/documents/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a document",
			Tags:       []string{"documents"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Document ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:           openapi.ResponseJSON("Document", "Document"),
				http.StatusNotFound:     openapi.ResponseRef("NotFound"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a document",
			Tags:       []string{"documents"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Document ID")},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent:    {Description: "Document deleted"},
				http.StatusNotFound:     openapi.ResponseRef("NotFound"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/documents/{id}/download"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Download document content",
			Tags:       []string{"documents"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Document ID")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:           {Description: "Document content stream"},
				http.StatusNotFound:     openapi.ResponseRef("NotFound"),
				http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	return spec
}

func schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ClassificationRequest": {
			Type:     "object",
			Required: []string{"productName", "description", "investmentStrategy"},
			Properties: map[string]*openapi.Schema{
				"productName":              {Type: "string", MinLength: intp(2), MaxLength: intp(200)},
				"productType":              {Type: "string", Example: "UCITS"},
				"description":              {Type: "string", MinLength: intp(10), MaxLength: intp(5000)},
				"investmentStrategy":       {Type: "string"},
				"sustainabilityObjectives": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"principalAdverseImpacts":  {Type: "string", MaxLength: intp(2000)},
				"taxonomyAlignment":        {Type: "string", MaxLength: intp(2000)},
				"paiIndicators":            {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"riskProfile":              {Type: "string", Enum: []any{"low", "medium", "high"}},
				"targetArticle":            {Type: "string", Enum: []any{"Article6", "Article8", "Article9"}},
			},
		},
		"ClassificationResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"classification":  {Type: "string", Enum: []any{"Article6", "Article8", "Article9"}},
				"complianceScore": {Type: "integer", Minimum: floatp(0), Maximum: floatp(100)},
				"riskLevel":       {Type: "string", Enum: []any{"Low", "Medium", "High"}},
				"confidence":      {Type: "number"},
				"reasoning":       {Type: "string"},
				"recommendations": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"timestamp":       {Type: "string", Format: "date-time"},
				"validation":      openapi.SchemaRef("ValidationStatus"),
			},
		},
		"ValidationStatus": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"isValid": {Type: "boolean"},
				"issues":  {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"ClassifyResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"assessment":    openapi.SchemaRef("Assessment"),
				"result":        openapi.SchemaRef("ClassificationResult"),
				"report":        {Type: "object", Description: "Derived full compliance report"},
				"reportWarning": {Type: "string", Description: "Present when report generation failed"},
			},
		},
		"Assessment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"entity_id":        {Type: "string", Example: "product_1700000000000"},
				"fund_name":        {Type: "string"},
				"product_type":     {Type: "string"},
				"target_article":   {Type: "string"},
				"compliance_score": {Type: "integer"},
				"risk_level":       {Type: "string"},
				"confidence":       {Type: "number"},
				"reasoning":        {Type: "string"},
				"status":           {Type: "string", Example: "completed"},
				"created_at":       {Type: "string", Format: "date-time"},
			},
		},
		"AssessmentPage": page("Assessment"),
		"ReportRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"reportType": {
					Type:    "string",
					Enum:    []any{"full_compliance", "pai_summary", "taxonomy_alignment", "risk_assessment"},
					Default: "full_compliance",
				},
				"includeCharts": {
					Type:    "boolean",
					Default: true,
				},
			},
		},
		"Report": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"assessment_id": {Type: "string", Format: "uuid"},
				"report_type":   {Type: "string"},
				"report_data":   {Type: "object"},
				"generated_at":  {Type: "string", Format: "date-time"},
				"expires_at":    {Type: "string", Format: "date-time"},
			},
		},
		"ReportPage": page("Report"),
		"Document": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":               {Type: "string", Format: "uuid"},
				"filename":         {Type: "string"},
				"content_type":     {Type: "string"},
				"size_bytes":       {Type: "integer"},
				"page_count":       {Type: "integer"},
				"document_type":    {Type: "string"},
				"detected_content": {Type: "object"},
				"status":           {Type: "string"},
				"uploaded_at":      {Type: "string", Format: "date-time"},
			},
		},
		"DocumentPage": page("Document"),
		"BatchResults": {
			Type: "array",
			Items: &openapi.Schema{
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"filename": {Type: "string"},
					"document": openapi.SchemaRef("Document"),
					"error":    {Type: "string"},
				},
			},
		},
	}
}

func page(schemaName string) *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef(schemaName)},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	}
}

func intp(v int) *int { return &v }
func floatp(v float64) *float64 { return &v }
