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
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new player", "responses": {"201": {"description": "Created"}, "409": {"description": "Username taken"}, "422": {"description": "Validation failed"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Sign in", "responses": {"200": {"description": "Token and user"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Sign out", "responses": {"204": {"description": "No Content"}}}},
        "/events": {"get": {"tags": ["events"], "summary": "List events by start date", "responses": {"200": {"description": "OK"}}}},
        "/events/{eventID}": {"get": {"tags": ["events"], "summary": "Get one event", "parameters": [{"type": "integer", "name": "eventID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/events/{eventID}/matches": {"get": {"tags": ["events"], "summary": "Matches of an event with player names", "parameters": [{"type": "integer", "name": "eventID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/events/{eventID}/register": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Sign up for an open event", "parameters": [{"type": "integer", "name": "eventID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Closed, full or already registered"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["events"], "summary": "Withdraw from an open event", "parameters": [{"type": "integer", "name": "eventID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/events/{eventID}/matches/{matchID}/result": {"post": {"security": [{"BearerAuth": []}], "tags": ["matches"], "summary": "Report the winner of a match", "parameters": [{"type": "integer", "name": "eventID", "in": "path", "required": true}, {"type": "integer", "name": "matchID", "in": "path", "required": true}], "responses": {"200": {"description": "Recorded"}, "202": {"description": "Waiting for confirmation"}, "403": {"description": "Not a participant"}, "409": {"description": "Already recorded"}}}},
        "/rankings": {"get": {"tags": ["rankings"], "summary": "Current standings with tiers", "responses": {"200": {"description": "OK"}}}},
        "/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["me"], "summary": "Current player's profile", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["me"], "summary": "Change rank or password", "responses": {"200": {"description": "OK"}}}
        },
        "/me/events": {"get": {"security": [{"BearerAuth": []}], "tags": ["me"], "summary": "Events the player is registered for", "responses": {"200": {"description": "OK"}}}},
        "/me/notifications": {"get": {"security": [{"BearerAuth": []}], "tags": ["me"], "summary": "Player inbox and general feed", "responses": {"200": {"description": "OK"}}}},
        "/admin/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List all users", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create a user", "responses": {"201": {"description": "Created"}}}
        },
        "/admin/users/{userID}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Delete a user and its registrations", "parameters": [{"type": "integer", "name": "userID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}},
        "/admin/users/{userID}/star": {"put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Toggle star player", "parameters": [{"type": "integer", "name": "userID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/admin/users/{userID}/admin": {"put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Grant or revoke admin rights", "parameters": [{"type": "integer", "name": "userID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/admin/users/{userID}/points": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Overwrite a player's points", "parameters": [{"type": "integer", "name": "userID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Add or remove points with a reason", "parameters": [{"type": "integer", "name": "userID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/events": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Schedule a new event", "responses": {"201": {"description": "Created"}, "422": {"description": "Validation failed"}}}},
        "/admin/events/{eventID}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Delete an event", "parameters": [{"type": "integer", "name": "eventID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}},
        "/admin/rankings/tiers": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Store current tiers on every ranking entry", "responses": {"200": {"description": "OK"}}}},
        "/admin/rankings/reset": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Zero all points and matches", "responses": {"204": {"description": "No Content"}}}},
        "/admin/settings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Scoring and scheduling settings", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Update settings", "responses": {"200": {"description": "OK"}, "422": {"description": "Values must be positive"}}}
        },
        "/admin/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Admin dashboard counters", "responses": {"200": {"description": "OK"}}}},
        "/admin/tick": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Run the event lifecycle check now", "responses": {"200": {"description": "Applied transitions"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Gaming Portal API",
	Description:      "Players, 3v3 events, match results and standings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
