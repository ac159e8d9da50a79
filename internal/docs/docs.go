// Package docs registers the OpenAPI document served under /swagger.
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
    "paths": {
        "/initialize-database": {
            "post": {
                "tags": ["Seed"],
                "summary": "load the seed transactions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.InitializeResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "tags": ["Transactions"],
                "summary": "list transactions",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page", "name": "perPage", "in": "query"},
                    {"type": "string", "description": "Matches title, description or exact price", "name": "searchText", "in": "query"},
                    {"type": "string", "description": "Accepted and ignored", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TransactionPage"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/transactions/export": {
            "get": {
                "tags": ["Transactions"],
                "summary": "export transactions",
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"type": "string", "description": "Matches title, description or exact price", "name": "searchText", "in": "query"},
                    {"type": "string", "description": "csv (default) or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/statistics": {
            "get": {
                "tags": ["Reports"],
                "summary": "monthly sale summary",
                "parameters": [{"type": "string", "description": "Month name, e.g. March", "name": "month", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Statistics"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/bar-chart": {
            "get": {
                "tags": ["Reports"],
                "summary": "monthly price histogram",
                "parameters": [{"type": "string", "description": "Month name", "name": "month", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/pie-chart": {
            "get": {
                "tags": ["Reports"],
                "summary": "monthly category breakdown",
                "parameters": [{"type": "string", "description": "Month name", "name": "month", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CategoryCount"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/combine": {
            "get": {
                "tags": ["Reports"],
                "summary": "combined dashboard data",
                "parameters": [
                    {"type": "string", "description": "Month name", "name": "month", "in": "query", "required": true},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page", "name": "perPage", "in": "query"},
                    {"type": "string", "description": "Search text", "name": "searchText", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Combined"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "code": {"type": "string"}}
        },
        "api.InitializeResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "count": {"type": "integer"}}
        },
        "domain.ProductTransaction": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "category": {"type": "string"},
                "image": {"type": "string"},
                "sold": {"type": "string"},
                "dateOfSale": {"type": "string", "format": "date-time"}
            }
        },
        "domain.TransactionPage": {
            "type": "object",
            "properties": {
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/domain.ProductTransaction"}},
                "totalCount": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "page": {"type": "integer"},
                "perPage": {"type": "integer"}
            }
        },
        "domain.Statistics": {
            "type": "object",
            "properties": {
                "totalSaleAmount": {"type": "number"},
                "totalSoldItems": {"type": "integer"},
                "totalNotSoldItems": {"type": "integer"}
            }
        },
        "domain.CategoryCount": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "count": {"type": "integer"}}
        },
        "domain.Combined": {
            "type": "object",
            "properties": {
                "transactions": {"$ref": "#/definitions/domain.TransactionPage"},
                "statistics": {"$ref": "#/definitions/domain.Statistics"},
                "barChartData": {"type": "object", "additionalProperties": {"type": "integer"}},
                "pieChartData": {"type": "array", "items": {"$ref": "#/definitions/domain.CategoryCount"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Sales Dashboard API",
	Description:      "Product transaction listing and monthly sales statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
