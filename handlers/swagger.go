package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the reservations service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>sleepr reservations - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "sleepr-reservations", "version": "v0.1.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Reservation": {
        "type": "object",
        "properties": {
          "_id": { "type": "string", "description": "24-char hex ObjectId" },
          "timestamp": { "type": "string", "format": "date-time" },
          "startDate": { "type": "string", "format": "date-time" },
          "endDate": { "type": "string", "format": "date-time" },
          "userId": { "type": "string" },
          "placeId": { "type": "string" },
          "invoiceId": { "type": "string" }
        }
      },
      "CreateReservation": {
        "type": "object",
        "required": ["startDate", "endDate", "placeId", "invoiceId"],
        "properties": {
          "startDate": { "type": "string", "format": "date-time" },
          "endDate": { "type": "string", "format": "date-time" },
          "userId": { "type": "string" },
          "placeId": { "type": "string" },
          "invoiceId": { "type": "string" }
        }
      },
      "UpdateReservation": {
        "type": "object",
        "properties": {
          "startDate": { "type": "string", "format": "date-time" },
          "endDate": { "type": "string", "format": "date-time" },
          "placeId": { "type": "string" },
          "invoiceId": { "type": "string" }
        }
      }
    }
  },
  "security": [ { "bearer": [] } ],
  "paths": {
    "/reservations": {
      "post": {
        "summary": "Create a reservation",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/CreateReservation" } } } },
        "responses": { "201": { "description": "created reservation" }, "400": { "description": "invalid body" } }
      },
      "get": {
        "summary": "List reservations",
        "parameters": [ { "name": "userId", "in": "query", "required": false, "description": "ignored for authenticated callers, who only see their own reservations", "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "array of reservations, possibly empty" } }
      }
    },
    "/reservations/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
      "get": { "summary": "Get a reservation", "responses": { "200": { "description": "reservation" }, "400": { "description": "malformed id" }, "404": { "description": "not found" } } },
      "patch": {
        "summary": "Update a reservation and return the updated document",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/UpdateReservation" } } } },
        "responses": { "200": { "description": "updated reservation" }, "400": { "description": "malformed id or empty update" }, "404": { "description": "not found" } }
      },
      "delete": { "summary": "Delete a reservation", "responses": { "200": { "description": "deleted reservation" }, "204": { "description": "nothing matched" }, "400": { "description": "malformed id" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "security": [], "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "security": [], "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "security": [], "responses": { "200": { "description": "text exposition format" } } } }
  }
}`
