// Package middleware provides HTTP middleware for request logging,
// Prometheus metrics collection, and CORS handling.
package middleware
