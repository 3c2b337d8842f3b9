// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "API Support"},
        "license": {"name": "MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/sessions": {
            "post": {
                "tags": ["sessions"],
                "summary": "Open a conversion session",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/api/sessions/{id}": {
            "get": {
                "tags": ["sessions"],
                "summary": "Get session state",
                "parameters": [{"$ref": "#/parameters/sessionID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "Close a session",
                "parameters": [{"$ref": "#/parameters/sessionID"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/sessions/{id}/input": {
            "post": {
                "tags": ["sessions"],
                "summary": "Type an amount into a field",
                "consumes": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/sessionID"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/session.InputRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/sessions/{id}/pick": {
            "post": {
                "tags": ["sessions"],
                "summary": "Open the currency picker for a field",
                "consumes": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/sessionID"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/session.PickRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/api/sessions/{id}/picker": {
            "get": {
                "tags": ["picker"],
                "summary": "Get the open picker",
                "parameters": [{"$ref": "#/parameters/sessionID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/sessions/{id}/picker/search": {
            "post": {
                "tags": ["picker"],
                "summary": "Filter the picker by description",
                "consumes": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/sessionID"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/session.SearchRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/api/sessions/{id}/picker/cancel": {
            "post": {
                "tags": ["picker"],
                "summary": "Leave search mode",
                "parameters": [{"$ref": "#/parameters/sessionID"}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/api/sessions/{id}/picker/select": {
            "post": {
                "tags": ["picker"],
                "summary": "Select the symbol at index",
                "consumes": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/sessionID"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/session.SelectRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/api/symbols": {
            "get": {
                "tags": ["symbols"],
                "summary": "List currency symbols",
                "parameters": [
                    {"in": "query", "name": "q", "type": "string", "description": "Description substring (case-sensitive)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        }
    },
    "parameters": {
        "sessionID": {"in": "path", "name": "id", "type": "string", "format": "uuid", "required": true}
    },
    "definitions": {
        "common.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"}
            }
        },
        "session.InputRequest": {
            "type": "object",
            "required": ["field"],
            "properties": {
                "field": {"type": "string", "enum": ["source", "target"]},
                "text": {"type": "string"}
            }
        },
        "session.PickRequest": {
            "type": "object",
            "required": ["field"],
            "properties": {
                "field": {"type": "string", "enum": ["source", "target"]}
            }
        },
        "session.SearchRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "session.SelectRequest": {
            "type": "object",
            "required": ["index"],
            "properties": {
                "index": {"type": "integer", "minimum": 0}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MoneyRates API",
	Description:      "Currency conversion sessions backed by exchangerate.host",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
