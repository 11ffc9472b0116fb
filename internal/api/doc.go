// Package api implements the gateway's HTTP surface. Requests are matched to
// a route, checked locally, and forwarded to one backend service whose
// status and body are relayed unchanged. Local rejections answer 400 with no
// body; unknown routes answer 404 with no body.
package api
