// Package validation decides whether a decoded POST body may be forwarded to
// the user or product service. A body is admissible when it names a known
// command, carries an all-digit id, and, for create and delete, holds a
// non-empty value for every field that service requires. Update commands
// need nothing beyond command and id.
package validation
