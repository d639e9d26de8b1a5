// Package docs serves the OpenAPI description of the API.
package docs

import (
	_ "embed"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/skillbridge/internal/utils/response"
)

//go:embed openapi.yaml
var openAPIYAML []byte

// YAML handles GET /openapi.yaml.
func YAML() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		w.Write(openAPIYAML)
	}
}

// JSON handles GET /openapi.json. The document is converted once, when
// the handler is built.
func JSON() (http.HandlerFunc, error) {
	doc, err := openAPIDocument()
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, doc)
	}, nil
}

func openAPIDocument() (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
		return nil, fmt.Errorf("docs: parse openapi.yaml: %w", err)
	}
	return doc, nil
}
