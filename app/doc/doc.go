// Package doc serves the generated OpenAPI document and a browser UI for it.
package doc

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

// Server is an entry in the document's servers list.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ServersFor lists the API base URLs reachable from env. Local is always first.
func ServersFor(env, addr string) []Server {
	servers := []Server{{URL: "http://" + addr + "/api/v1", Description: "Local"}}
	switch env {
	case "staging":
		servers = append(servers, Server{URL: "https://staging.betpoints.app/api/v1", Description: "Staging"})
	case "production":
		servers = append(servers, Server{URL: "https://api.betpoints.app/api/v1", Description: "Production"})
	}
	return servers
}

// Decorate adds servers and the bearer scheme to a swag document.
func Decorate(raw string, servers []Server) ([]byte, error) {
	var spec map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, err
	}
	spec["servers"] = servers

	components, _ := spec["components"].(map[string]interface{})
	if components == nil {
		components = make(map[string]interface{})
		spec["components"] = components
	}
	schemes, _ := components["securitySchemes"].(map[string]interface{})
	if schemes == nil {
		schemes = make(map[string]interface{})
		components["securitySchemes"] = schemes
	}
	schemes["BearerAuth"] = map[string]interface{}{
		"type":         "http",
		"scheme":       "bearer",
		"bearerFormat": "PASETO",
		"description":  "Access token from POST /api/v1/users/login",
	}
	return json.Marshal(spec)
}

func serveSpec(servers []Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := swag.ReadDoc()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "API document not generated; run swag init"})
			return
		}
		body, err := Decorate(raw, servers)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse API document"})
			return
		}
		c.Data(http.StatusOK, "application/json", body)
	}
}

const elementsHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Betpoints API</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
    <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
    <style>
        body { margin: 0; padding: 0; height: 100vh; }
        elements-api { height: 100%; }
    </style>
</head>
<body>
    <elements-api apiDescriptionUrl="/swagger/doc.json" router="hash" layout="sidebar"></elements-api>
</body>
</html>`

func serveElements(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(elementsHTML))
}

// Init mounts /swagger/doc.json and /docs.
func Init(r *gin.Engine, env, addr string) {
	r.GET("/swagger/doc.json", serveSpec(ServersFor(env, addr)))
	r.GET("/docs/*any", serveElements)
}
