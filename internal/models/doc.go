// Package models holds the persisted records and derived rows shared by the
// repositories, services and the REPL.
package models
