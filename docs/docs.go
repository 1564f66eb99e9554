// Package docs registers the OpenAPI description served under /swagger.
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
        "UserToken": {
            "type": "apiKey",
            "name": "x-user-token",
            "in": "header"
        },
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"UserToken": []}, {"Bearer": []}],
    "paths": {
        "/bookings": {
            "post": {
                "tags": ["bookings"],
                "summary": "Create a booking",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/IssuesResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/bookings/{id}": {
            "get": {
                "tags": ["bookings"],
                "summary": "Get a booking",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BookingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/IssuesResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            },
            "patch": {
                "tags": ["bookings"],
                "summary": "Move a booking to a new timeframe",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdateBookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/IssuesResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            },
            "delete": {
                "tags": ["bookings"],
                "summary": "Delete a booking",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/parkings/{id}": {
            "get": {
                "tags": ["parkings"],
                "summary": "Get a parking",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ParkingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/ping": {
            "get": {
                "tags": ["health"],
                "security": [],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}}}
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "security": [],
                "summary": "Dependency health",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    },
    "definitions": {
        "CreateBookingRequest": {
            "type": "object",
            "required": ["parkingId", "startDate", "endDate"],
            "properties": {
                "parkingId": {"type": "integer", "minimum": 1},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"}
            }
        },
        "UpdateBookingRequest": {
            "type": "object",
            "required": ["startDate", "endDate"],
            "properties": {
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"}
            }
        },
        "CreatedResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object", "properties": {"id": {"type": "integer"}}}
            }
        },
        "SuccessResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "Issue": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "path": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"}
            }
        },
        "IssuesResponse": {
            "type": "object",
            "properties": {"issues": {"type": "array", "items": {"$ref": "#/definitions/Issue"}}}
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "standard"]}
            }
        },
        "Parking": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "ParkingResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/Parking"}}
        },
        "BookingResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "integer"},
                        "user": {"$ref": "#/definitions/User"},
                        "parking": {"$ref": "#/definitions/Parking"},
                        "startDate": {"type": "string", "format": "date-time"},
                        "endDate": {"type": "string", "format": "date-time"},
                        "createdAt": {"type": "string", "format": "date-time"},
                        "updatedAt": {"type": "string", "format": "date-time"}
                    }
                }
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
	Title:            "Parking Booking API",
	Description:      "Book parking spots for a timeframe.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
