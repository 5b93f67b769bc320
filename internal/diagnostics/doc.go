// Package diagnostics provides the collectors render faults are reported to.
// Every collector is fire-and-forget: Report never blocks on a remote system and
// never returns an error to the boundary that called it.
package diagnostics
