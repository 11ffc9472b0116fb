// Package workload replays a text workload against the gateway. Each line
// names an entity and an action, for example
//
//	USER create 1 alice alice@example.com secret
//	PRODUCT update 3 price:12.50 quantity:4
//	ORDER place 3 1 2
//
// Lines are parsed into Commands, turned into HTTP calls and sent in file
// order. The outcome of every line is collected into a Report.
package workload
