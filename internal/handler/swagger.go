package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/paydue/paydue-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec is the subset of an OpenAPI 3.0 document served at /swagger/openapi3.json
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// convertRefs rewrites swag's 2.0 definitions refs to 3.0 component refs,
// converting query and path parameters along the way
func convertRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if _, hasIn := v["in"]; hasIn {
			if _, hasName := v["name"]; hasName {
				return convertParameter(v)
			}
		}

		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			ref, isString := value.(string)
			if key == "$ref" && isString {
				result[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			result[key] = convertRefs(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = convertRefs(item)
		}
		return result
	default:
		return data
	}
}

func convertParameter(param map[string]interface{}) map[string]interface{} {
	// body and formData parameters are left for the UI to render as-is
	if param["in"] == "body" || param["in"] == "formData" {
		return param
	}

	result := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum"} {
		if val, ok := param[field]; ok {
			schema[field] = val
		}
	}
	if items, ok := param["items"]; ok {
		schema["items"] = convertRefs(items)
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}
	return result
}

// ServeOpenAPI3Spec serves the generated swagger doc converted to OpenAPI 3.0
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read swagger doc")
	}

	var swagger2 map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse swagger doc")
	}

	info, _ := swagger2["info"].(map[string]interface{})
	paths, _ := swagger2["paths"].(map[string]interface{})
	converted, _ := convertRefs(paths).(map[string]interface{})

	components := make(map[string]interface{})
	if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = secDefs
	}
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = convertRefs(definitions)
	}

	return c.JSON(http.StatusOK, OpenAPI3Spec{
		OpenAPI: "3.0.3",
		Info:    info,
		Servers: []Server{
			{URL: "http://localhost:8080/api/v1", Description: "Local Development"},
			{URL: "https://api.paydue.app/api/v1", Description: "Production"},
		},
		Paths:      converted,
		Components: components,
	})
}
