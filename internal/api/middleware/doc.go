// Package middleware holds the HTTP middleware installed in front of the
// gateway routes: request IDs and request-scoped loggers, request logging,
// Prometheus request metrics and token-bucket rate limiting.
package middleware
