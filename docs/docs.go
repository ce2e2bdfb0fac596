// Package docs registra la especificación OpenAPI de la API de inventario.
// El cuerpo se regenera con `swag init -g cmd/api/main.go` a partir de las anotaciones de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "OK"}}}},
        "/api/products": {
            "get": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Listar productos", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Crear producto", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/api/products/{id}": {
            "get": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Obtener producto por ID", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Actualizar producto", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Eliminar producto", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/products/{id}/adjustments": {
            "post": {"security": [{"Bearer": []}], "tags": ["products"], "summary": "Ajustar stock", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/api/sales": {
            "get": {"security": [{"Bearer": []}], "tags": ["sales"], "summary": "Listar ventas", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["sales"], "summary": "Registrar venta", "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/api/sales/{id}": {
            "delete": {"security": [{"Bearer": []}], "tags": ["sales"], "summary": "Reversar venta", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/expenses": {
            "get": {"security": [{"Bearer": []}], "tags": ["expenses"], "summary": "Listar gastos", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["expenses"], "summary": "Registrar gasto", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/expenses/{id}": {
            "delete": {"security": [{"Bearer": []}], "tags": ["expenses"], "summary": "Eliminar gasto", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/dashboard": {"get": {"security": [{"Bearer": []}], "tags": ["dashboard"], "summary": "Dashboard", "responses": {"200": {"description": "OK"}}}},
        "/api/reports": {"get": {"security": [{"Bearer": []}], "tags": ["dashboard"], "summary": "Reporte financiero", "responses": {"200": {"description": "OK"}}}},
        "/api/users": {
            "get": {"security": [{"Bearer": []}], "tags": ["users"], "summary": "Listar usuarios", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["users"], "summary": "Alta de usuario", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/users/{id}": {
            "delete": {"security": [{"Bearer": []}], "tags": ["users"], "summary": "Eliminar usuario", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/reconciliation": {"get": {"security": [{"Bearer": []}], "tags": ["reconciliation"], "summary": "Conciliar stock contra el diario", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo metadatos exportados de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Stock Ledger API",
	Description:      "Catálogo, ventas, gastos y diario de stock.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
