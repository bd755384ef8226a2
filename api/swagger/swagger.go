package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Grade Request Portal",
        "description": "JSON and download endpoints of the grade-correction request portal. HTML pages are not listed.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Diagnostics", "description": "Health and database probes"},
        {"name": "Requests", "description": "Grade-correction requests of the signed-in student"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Diagnostics"],
                "summary": "Liveness and database connectivity",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Healthy", "schema": {"$ref": "#/definitions/HealthReport"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/HealthReport"}}
                }
            }
        },
        "/db-status": {
            "get": {
                "tags": ["Diagnostics"],
                "summary": "Database status with table sizes",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Connected", "schema": {"$ref": "#/definitions/DBStatusReport"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/DBStatusReport"}}
                }
            }
        },
        "/test-db": {
            "get": {
                "tags": ["Diagnostics"],
                "summary": "Version, count and write probes",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Probes ran", "schema": {"$ref": "#/definitions/DBTestReport"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/DBTestReport"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Diagnostics"],
                "summary": "Prometheus exposition",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Metrics"}
                }
            }
        },
        "/my-requests/export": {
            "get": {
                "tags": ["Requests"],
                "summary": "Download own grade-correction requests",
                "description": "Requires the user_data session cookie. Without it the response is a 303 redirect to /login.",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "303": {"description": "No valid session"},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "HealthReport": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["healthy", "unhealthy"]},
                "database": {"type": "string", "enum": ["connected", "disconnected"]},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "DBStatusReport": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["success", "error"]},
                "connected": {"type": "boolean"},
                "users": {"type": "integer"},
                "requests": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "DBTestReport": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["success", "error"]},
                "connection": {
                    "type": "object",
                    "properties": {
                        "status": {"type": "string"},
                        "version": {"type": "string"}
                    }
                },
                "tables": {
                    "type": "object",
                    "properties": {
                        "users": {"type": "integer"},
                        "requests": {"type": "integer"}
                    }
                },
                "write_test": {"type": "string", "enum": ["ok", "failed"]},
                "message": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"},
                "field": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
