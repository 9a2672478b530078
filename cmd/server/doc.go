// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

// Package main is the entry point for the xbrld server.
//
// xbrld wraps the Arelle XBRL processor in an HTTP service. Clients POST an
// XBRL instance document to /validate and receive a structured JSON report
// of the engine's findings, normalized onto a three-level severity taxonomy.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered load (defaults, YAML file, env vars)
//  2. Taxonomy cache: resolve and inventory the pre-populated offline cache
//  3. Staging: temp-file staging area for request bodies and engine logs
//  4. Engine: Arelle subprocess adapter running in offline mode
//  5. Validation service: well-formedness gate, single-flight engine access,
//     circuit breaker, severity normalization
//  6. HTTP server: Chi router under a suture supervision tree
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file, built-in defaults.
//
// Common settings:
//   - HTTP_PORT: listen port (default 8080)
//   - CACHE_DIR: taxonomy cache root, laid out as {scheme}/{host}/{path}
//   - ENGINE_COMMAND: Arelle CLI binary (default arelleCmdLine)
//   - ENGINE_PLUGINS: pipe-separated Arelle plugin list (e.g. validate/EBA)
//   - LOG_LEVEL, LOG_FORMAT: zerolog level and json/console output
//
// # Offline Contract
//
// The engine never touches the network. Every schema or linkbase reference
// must resolve from the local cache; a miss is reported as a validation
// error in the response, not fetched remotely.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections and waits for in-flight validations up to
// SHUTDOWN_TIMEOUT before exiting.
package main
