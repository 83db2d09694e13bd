// Package docs holds the OpenAPI description of the CollegeFinder API,
// registered with swag so the server can publish it at /swagger/doc.json.
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
        "/health": {
            "get": {
                "description": "Reports database reachability and per-plugin health.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/plugins": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "List plugins",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register",
                "parameters": [
                    {"description": "New account", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/college": {
            "get": {
                "description": "List all colleges with courses. Query filters narrow the result.",
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "List colleges",
                "parameters": [
                    {"type": "string", "description": "Substring of name or location", "name": "q", "in": "query"},
                    {"type": "string", "description": "Substring of location", "name": "location", "in": "query"},
                    {"type": "string", "description": "Budget bracket label", "name": "budget", "in": "query"},
                    {"type": "integer", "description": "Custom budget lower bound", "name": "budget_min", "in": "query"},
                    {"type": "integer", "description": "Custom budget upper bound", "name": "budget_max", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Stream (repeatable)", "name": "stream", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Course category (repeatable)", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/college.College"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Fields college_name (required), address, about, stream, price_range, courses (JSON array), and an image as college_image_file or college_image_url.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Create college",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/college.College"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/college/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Get college",
                "parameters": [{"type": "integer", "description": "College ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/college.College"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Delete college",
                "parameters": [{"type": "integer", "description": "College ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/college/name/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Find colleges by name",
                "parameters": [{"type": "string", "description": "College name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/college.College"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/college/image/{id}": {
            "get": {
                "produces": ["image/jpeg"],
                "tags": ["college"],
                "summary": "College image",
                "parameters": [{"type": "integer", "description": "College ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/college/like/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Toggle like",
                "parameters": [{"type": "integer", "description": "College ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/colleges.ToggleLikeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/college/liked/{user_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Liked colleges",
                "parameters": [{"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/college/compare/{user_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Compared colleges",
                "parameters": [{"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/college/compare/{user_id}/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Compare summary",
                "parameters": [{"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/college/compare/{user_id}/{college_id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Add to compare",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "integer", "description": "College ID", "name": "college_id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Already in list", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "409": {"description": "Compare list full", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["college"],
                "summary": "Remove from compare",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "integer", "description": "College ID", "name": "college_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/settings/brackets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Budget brackets",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Replace budget brackets",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Restore default budget brackets",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/settings/streams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Stream presets",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "auth.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "auth.LoginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_at": {"type": "string"},
                "user_id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "auth.RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "college.College": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "college_name": {"type": "string"},
                "address": {"type": "string"},
                "about": {"type": "string"},
                "stream": {"type": "string"},
                "price_range": {"type": "string"},
                "img_url": {"type": "string"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/college.Course"}},
                "created_at": {"type": "string"}
            }
        },
        "college.Course": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "course_name": {"type": "string"},
                "course_about": {"type": "string"},
                "category": {"type": "string", "enum": ["UG", "PG", "Engineering"]},
                "sem1_fee": {"type": "number"},
                "sem2_fee": {"type": "number"},
                "sem3_fee": {"type": "number"},
                "sem4_fee": {"type": "number"},
                "sem5_fee": {"type": "number"},
                "sem6_fee": {"type": "number"},
                "sem7_fee": {"type": "number"},
                "sem8_fee": {"type": "number"}
            }
        },
        "colleges.ToggleLikeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "college_id": {"type": "integer"},
                "liked": {"type": "boolean"}
            }
        },
        "server.Problem": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "CollegeFinder API",
	Description:      "College catalog with budget, stream, and category filters, likes, and side-by-side comparison.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
