// Package config loads the gateway configuration document: the addresses of
// the User, Product and Order services, the gateway's own listen address and
// optional server settings. The result is a plain value passed to the
// components that need it; nothing is kept in package state.
package config
