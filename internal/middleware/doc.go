// Package middleware contains the fiber middleware chain: request IDs,
// request logging, panic recovery, CORS, Prometheus metrics, and a
// Redis-backed rate limiter.
package middleware
