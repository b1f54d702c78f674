// Package handler contains the HTTP layer: fiber handlers that parse and
// validate requests, call the catalog service, and translate application
// errors to status codes.
package handler
