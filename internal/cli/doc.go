// Package cli provides the interactive coinkeeper terminal client.
//
// It wires the application services into a read-eval-print loop. Typical
// flow: resume a remembered session or log in, then manage the watch list,
// record buys and sells, value the portfolio, convert currencies and keep
// notes. Every table view can be sorted by any of its columns.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See runREPL for the command set.
package cli
