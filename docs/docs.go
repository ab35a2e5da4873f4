// Package docs registra la especificación OpenAPI que sirve /swagger.
// Se regenera con `swag init -g cmd/api/main.go`.
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
        "/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Create an account",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.signupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/accounts.accountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Sets the AuthCookie session cookie; the token is also returned for Bearer clients.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Log in",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accounts.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["accounts"],
                "summary": "Log out",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Current account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accounts.accountResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "List pets",
                "parameters": [
                    {"type": "string", "description": "exact name", "name": "name", "in": "query"},
                    {"type": "string", "description": "exact species", "name": "species", "in": "query"},
                    {"type": "integer", "description": "exact age", "name": "age", "in": "query"},
                    {"type": "string", "description": "5-digit zipcode", "name": "zipcode", "in": "query"},
                    {"type": "string", "description": "tag", "name": "tag", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            },
            "post": {
                "description": "Accepts JSON (image = existing ref) or multipart/form-data with a \"file\" part.",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Publish a pet for adoption",
                "parameters": [
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Pet profile with ownership history",
                "parameters": [
                    {"type": "string", "description": "pet id", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/pets/{petID}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Prior owners of a pet, oldest first",
                "parameters": [
                    {"type": "string", "description": "pet id", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.historyResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/pets/{petID}/transfer": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Transfer a pet to another user",
                "parameters": [
                    {"type": "string", "description": "pet id", "name": "petID", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/pets.transferRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/posts.postResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create a post",
                "parameters": [
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/posts.createPostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/posts.postResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/posts/{postID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Post with comments and likes",
                "parameters": [
                    {"type": "string", "description": "post id", "name": "postID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/posts.postDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/posts/{postID}/like": {
            "post": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Like a post",
                "parameters": [
                    {"type": "string", "description": "post id", "name": "postID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/posts.likesResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/posts/{postID}/comments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment on a post",
                "parameters": [
                    {"type": "string", "description": "post id", "name": "postID", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/posts.createCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/comments.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/comments/{commentID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Get a comment with its likes",
                "parameters": [
                    {"type": "string", "description": "comment id", "name": "commentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/comments.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/comments/{commentID}/like": {
            "post": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Like a comment",
                "parameters": [
                    {"type": "string", "description": "comment id", "name": "commentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/comments.likesResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "httpx.ErrorBody": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "accounts.signupRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "bio": {"type": "string"},
                "picture": {"type": "string"}
            }
        },
        "accounts.loginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "accounts.loginResponse": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "token": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "accounts.accountResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "name": {"type": "string"},
                "bio": {"type": "string"},
                "picture": {"type": "string"}
            }
        },
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string"},
                "age": {"type": "integer"},
                "zipcode": {"type": "string"},
                "description": {"type": "string"},
                "tag": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "pets.historyResponse": {
            "type": "object",
            "properties": {
                "pet_id": {"type": "string"},
                "prior_owners": {"type": "array", "items": {"type": "string"}}
            }
        },
        "pets.transferRequest": {
            "type": "object",
            "properties": {"new_owner": {"type": "string"}}
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner": {"type": "string"},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "age": {"type": "integer"},
                "zipcode": {"type": "string"},
                "description": {"type": "string"},
                "tag": {"type": "string"},
                "image": {"type": "string"},
                "prior_owners": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"}
            }
        },
        "posts.createPostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "image": {"type": "string"},
                "tag": {"type": "string"},
                "body": {"type": "string"}
            }
        },
        "posts.createCommentRequest": {
            "type": "object",
            "properties": {"comment": {"type": "string"}}
        },
        "posts.postResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "author": {"type": "string"},
                "title": {"type": "string"},
                "image": {"type": "string"},
                "tag": {"type": "string"},
                "body": {"type": "string"},
                "date": {"type": "integer"},
                "likes": {"type": "integer"},
                "liked_by_me": {"type": "boolean"}
            }
        },
        "posts.postDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "author": {"type": "string"},
                "title": {"type": "string"},
                "image": {"type": "string"},
                "tag": {"type": "string"},
                "body": {"type": "string"},
                "date": {"type": "integer"},
                "likes": {"type": "integer"},
                "liked_by_me": {"type": "boolean"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/comments.Response"}}
            }
        },
        "posts.likesResponse": {
            "type": "object",
            "properties": {
                "likes": {"type": "integer"},
                "liked": {"type": "boolean"}
            }
        },
        "comments.likesResponse": {
            "type": "object",
            "properties": {
                "likes": {"type": "integer"},
                "liked": {"type": "boolean"}
            }
        },
        "comments.Response": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "author": {"type": "string"},
                "post_id": {"type": "string"},
                "body": {"type": "string"},
                "date": {"type": "integer"},
                "likes": {"type": "integer"},
                "liked_by_me": {"type": "boolean"}
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
	Title:            "pet-adoption API",
	Description:      "Pets for adoption, posts, comments and likes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
