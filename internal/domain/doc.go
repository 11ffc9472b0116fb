// Package domain contains the gateway's core value types: backend service
// names and addresses, the endpoint table, body commands and field names,
// and the error taxonomy shared by the validator, router and downstream
// client. It has no dependencies on transport or configuration code.
package domain
