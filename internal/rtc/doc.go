// Package rtc owns the runtime-control option grammar and the packed task contract.
//
// Ownership boundary:
// - option parsing into a logical Task (command, scope, data)
// - bit layout of the packed task shared with the receiving daemon
// - runtime-control argument dispatch to command codes
//
// Delivery of the packed task and its execution belong to the caller.
package rtc
