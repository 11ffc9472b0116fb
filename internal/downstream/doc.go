// Package downstream forwards validated requests to the User, Product and
// Order services. Each call is a single blocking HTTP request bounded by a
// timeout and by the caller's context; there are no retries. A call either
// yields the backend's status and body or a *TransportError.
package downstream
