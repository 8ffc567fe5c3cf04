package main

// @title Stock Tracker API
// @version 1.0
// @description Session-scoped item inventory with logging, tracing and metrics

// @contact.name API Support

// @license.name MIT

// @host localhost:8082
// @BasePath /

// @tag.name Inventory
// @tag.description Item inventory endpoints

// @tag.name Session
// @tag.description Session lifecycle endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints

//go:generate swag init -g docs.go -d .,../../internal/inventory/delivery/http -o ../../docs
