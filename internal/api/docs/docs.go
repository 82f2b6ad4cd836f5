// Package docs serves the OpenAPI document for the Swagger UI.
package docs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/swaggo/swag"
)

type spec struct {
	host string
}

func (s spec) ReadDoc() string {
	return strings.Replace(doc, "{{HOST}}", s.host, 1)
}

var once sync.Once

// Register makes the document available to gin-swagger. Later calls are no-ops.
func Register(host string, port int) {
	once.Do(func() {
		swag.Register(swag.Name, spec{host: fmt.Sprintf("%s:%d", host, port)})
	})
}

const doc = `{
  "swagger": "2.0",
  "info": {
    "title": "GigFlow API",
    "description": "Freelance marketplace: clients post gigs, freelancers bid, clients hire exactly one bid.",
    "version": "1.0"
  },
  "host": "{{HOST}}",
  "basePath": "/api/v1",
  "schemes": ["http", "https"],
  "securityDefinitions": {
    "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header", "description": "Type \"Bearer\" followed by a space and JWT token."}
  },
  "paths": {
    "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new account",
      "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
      "responses": {"201": {"description": "Account created", "schema": {"$ref": "#/definitions/AuthResponse"}}, "400": {"description": "Validation failed"}, "409": {"description": "User already exists"}}}},
    "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in",
      "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
      "responses": {"200": {"description": "Logged in", "schema": {"$ref": "#/definitions/AuthResponse"}}, "401": {"description": "Invalid credentials"}}}},
    "/auth/me": {"get": {"tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}],
      "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UserResponse"}}, "401": {"description": "Unauthorized"}}}},
    "/gigs": {
      "get": {"tags": ["gigs"], "summary": "Browse gigs",
        "parameters": [
          {"in": "query", "name": "search", "type": "string"},
          {"in": "query", "name": "category", "type": "string"},
          {"in": "query", "name": "status", "type": "string", "default": "open"},
          {"in": "query", "name": "page", "type": "integer", "default": 1},
          {"in": "query", "name": "limit", "type": "integer", "default": 10}],
        "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/GigListResponse"}}, "400": {"description": "Invalid query parameters"}}},
      "post": {"tags": ["gigs"], "summary": "Post a gig", "security": [{"BearerAuth": []}],
        "parameters": [{"in": "body", "name": "gig", "required": true, "schema": {"$ref": "#/definitions/CreateGigRequest"}}],
        "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/GigResponse"}}, "400": {"description": "Validation failed"}}}},
    "/gigs/my": {"get": {"tags": ["gigs"], "summary": "My gigs", "security": [{"BearerAuth": []}],
      "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/GigResponse"}}}}}},
    "/gigs/{id}": {"get": {"tags": ["gigs"], "summary": "Get a gig",
      "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
      "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/GigResponse"}}, "404": {"description": "Gig not found"}}}},
    "/gigs/{id}/bids": {"get": {"tags": ["gigs"], "summary": "Bids on a gig (owner only)", "security": [{"BearerAuth": []}],
      "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
      "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/BidResponse"}}}, "403": {"description": "Not the gig owner"}, "404": {"description": "Gig not found"}}}},
    "/gigs/{id}/cancel": {"patch": {"tags": ["gigs"], "summary": "Cancel a gig and reject its pending bids", "security": [{"BearerAuth": []}],
      "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
      "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CancelGigResponse"}}, "403": {"description": "Not the gig owner"}, "409": {"description": "Gig is not open"}, "503": {"description": "Store unavailable"}}}},
    "/gigs/{id}/complete": {"patch": {"tags": ["gigs"], "summary": "Complete an assigned gig", "security": [{"BearerAuth": []}],
      "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
      "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/GigResponse"}}, "403": {"description": "Not the gig owner"}, "409": {"description": "Gig is not assigned"}}}},
    "/bids": {"post": {"tags": ["bids"], "summary": "Bid on a gig", "security": [{"BearerAuth": []}],
      "parameters": [{"in": "body", "name": "bid", "required": true, "schema": {"$ref": "#/definitions/CreateBidRequest"}}],
      "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/BidResponse"}}, "403": {"description": "Own gig"}, "404": {"description": "Gig not found"}, "409": {"description": "Gig not open or already bid"}}}},
    "/bids/my": {"get": {"tags": ["bids"], "summary": "My bids", "security": [{"BearerAuth": []}],
      "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/BidResponse"}}}}}},
    "/bids/{id}": {"get": {"tags": ["bids"], "summary": "Get a bid (bidder or gig owner)", "security": [{"BearerAuth": []}],
      "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
      "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/BidResponse"}}, "403": {"description": "Forbidden"}, "404": {"description": "Bid not found"}}}},
    "/bids/{id}/hire": {"patch": {"tags": ["bids"], "summary": "Hire a bid", "security": [{"BearerAuth": []}],
      "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
      "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/HireResponse"}}, "403": {"description": "Not the gig owner"}, "404": {"description": "Bid or gig not found"}, "409": {"description": "Gig no longer open or bid no longer pending"}, "503": {"description": "Store unavailable"}}}},
    "/notifications/ws": {"get": {"tags": ["notifications"], "summary": "Websocket stream of hiring events for the caller", "security": [{"BearerAuth": []}],
      "parameters": [{"in": "query", "name": "token", "type": "string"}],
      "responses": {"101": {"description": "Switching protocols"}, "401": {"description": "Unauthorized"}, "503": {"description": "Streaming not configured"}}}}
  },
  "definitions": {
    "RegisterRequest": {"type": "object", "required": ["name", "email", "password"], "properties": {
      "name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string", "minLength": 6}}},
    "LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {
      "email": {"type": "string"}, "password": {"type": "string"}}},
    "UserResponse": {"type": "object", "properties": {
      "id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"},
      "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
    "AuthResponse": {"type": "object", "properties": {
      "user": {"$ref": "#/definitions/UserResponse"}, "token": {"type": "string"}}},
    "CreateGigRequest": {"type": "object", "required": ["title", "description", "budget"], "properties": {
      "title": {"type": "string", "maxLength": 100}, "description": {"type": "string", "maxLength": 1500},
      "budget": {"type": "number", "minimum": 0, "maximum": 9999999999.99},
      "category": {"type": "string", "enum": ["web-development", "mobile-development", "design", "writing", "marketing", "video-editing", "other"]}}},
    "GigResponse": {"type": "object", "properties": {
      "id": {"type": "string"}, "client_id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"},
      "budget": {"type": "number"}, "category": {"type": "string"},
      "status": {"type": "string", "enum": ["open", "assigned", "completed", "cancelled"]},
      "hired_bid_id": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
    "GigListResponse": {"type": "object", "properties": {
      "gigs": {"type": "array", "items": {"$ref": "#/definitions/GigResponse"}},
      "page": {"type": "integer"}, "pages": {"type": "integer"}, "total": {"type": "integer"}}},
    "CancelGigResponse": {"type": "object", "properties": {
      "gig": {"$ref": "#/definitions/GigResponse"}, "rejected_bid_ids": {"type": "array", "items": {"type": "string"}}}},
    "CreateBidRequest": {"type": "object", "required": ["gig_id", "proposed_amount", "delivery_time", "cover_letter"], "properties": {
      "gig_id": {"type": "string"}, "proposed_amount": {"type": "number", "minimum": 0, "maximum": 9999999999.99},
      "delivery_time": {"type": "integer", "minimum": 1}, "cover_letter": {"type": "string", "maxLength": 1000}}},
    "BidResponse": {"type": "object", "properties": {
      "id": {"type": "string"}, "gig_id": {"type": "string"}, "freelancer_id": {"type": "string"},
      "proposed_amount": {"type": "number"}, "delivery_time": {"type": "integer"}, "cover_letter": {"type": "string"},
      "status": {"type": "string", "enum": ["pending", "hired", "rejected"]},
      "created_at": {"type": "string"}, "updated_at": {"type": "string"},
      "freelancer": {"$ref": "#/definitions/BidderSummary"}, "gig": {"$ref": "#/definitions/BidGigSummary"}}},
    "BidderSummary": {"type": "object", "properties": {
      "id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}},
    "BidGigSummary": {"type": "object", "properties": {
      "id": {"type": "string"}, "title": {"type": "string"}, "budget": {"type": "number"}, "status": {"type": "string"}}},
    "HireResponse": {"type": "object", "properties": {
      "message": {"type": "string"}, "gig": {"$ref": "#/definitions/GigResponse"}, "bid": {"$ref": "#/definitions/BidResponse"},
      "rejected_bid_ids": {"type": "array", "items": {"type": "string"}}}}
  }
}`
