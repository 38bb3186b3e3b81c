// Package docs holds the Swagger specification served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Authenticate and obtain a JWT",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/employees": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Search employees with pagination and filters",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "department", "in": "query"},
                    {"type": "string", "name": "position", "in": "query"},
                    {"type": "number", "name": "minSalary", "in": "query"},
                    {"type": "number", "name": "maxSalary", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.employeePageResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Create an employee",
                "parameters": [
                    {
                        "description": "Employee payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.employeeRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createEmployeeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/employees/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Fetch a single employee",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Employee"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Update an employee",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Employee payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.employeeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.updateEmployeeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Delete an employee",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.deleteEmployeeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/employees/departments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "List distinct departments",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/api/employees/positions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "List distinct positions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/api/employees/department/{department}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "List employees of one department",
                "parameters": [
                    {"type": "string", "name": "department", "in": "path", "required": true},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.departmentPageResponse"}}
                }
            }
        },
        "/api/employees/stats/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Workforce statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statisticsResponse"}}
                }
            }
        },
        "/api/export/employees/csv": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["export"],
                "summary": "Export all employees as CSV",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/export/employees/excel": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["export"],
                "summary": "Export all employees as an XLSX workbook",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Employee": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "countryCode": {"type": "string"},
                "department": {"type": "string"},
                "position": {"type": "string"},
                "salary": {"type": "number"},
                "hireDate": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "username": {"type": "string"},
                "role": {"type": "string"},
                "expiresIn": {"type": "integer"}
            }
        },
        "handler.employeeRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "countryCode": {"type": "string"},
                "department": {"type": "string"},
                "position": {"type": "string"},
                "salary": {"type": "number"},
                "hireDate": {"type": "string"}
            }
        },
        "handler.employeePageResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/domain.Employee"}},
                "currentPage": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "hasNext": {"type": "boolean"},
                "hasPrevious": {"type": "boolean"}
            }
        },
        "handler.departmentPageResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/domain.Employee"}},
                "currentPage": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "hasNext": {"type": "boolean"},
                "hasPrevious": {"type": "boolean"},
                "department": {"type": "string"}
            }
        },
        "handler.createEmployeeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "employee": {"$ref": "#/definitions/domain.Employee"},
                "employeeId": {"type": "integer"}
            }
        },
        "handler.updateEmployeeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "employee": {"$ref": "#/definitions/domain.Employee"}
            }
        },
        "handler.deleteEmployeeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "deletedId": {"type": "integer"}
            }
        },
        "handler.statisticsResponse": {
            "type": "object",
            "properties": {
                "totalEmployees": {"type": "integer"},
                "averageSalary": {"type": "number"},
                "minSalary": {"type": "number"},
                "maxSalary": {"type": "number"},
                "departmentCount": {"type": "integer"},
                "positionCount": {"type": "integer"},
                "byDepartment": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}},
                "timestamp": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Employee Management API",
	Description:      "REST API for managing employees: CRUD, search, statistics and exports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
