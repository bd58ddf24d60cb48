// Package mocks provides shared test doubles for interfaces that are
// awkward to stub inline: the JWT service, the password verifier, and a
// no-op database/sql driver for exercising transaction plumbing without
// a live database.
package mocks
