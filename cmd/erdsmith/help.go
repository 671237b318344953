// ABOUTME: Help display for the erdsmith CLI with grouped flags and examples.
// ABOUTME: Provides printHelp for usage output shared by -help and bare invocation.
package main

import (
	"fmt"
	"io"
)

// printHelp writes a formatted help message to w, including usage patterns,
// grouped flags, and examples.
func printHelp(w io.Writer, ver string) {
	fmt.Fprintf(w, "erdsmith %s — Mermaid ER diagram validator and schema generator\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  erdsmith <diagram.mmd>              Validate and print a report")
	fmt.Fprintln(w, "  erdsmith -fix <diagram.mmd>         Print a corrected diagram")
	fmt.Fprintln(w, "  erdsmith -serve                     Start the schema wizard HTTP server")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Output Flags:")
	fmt.Fprintln(w, "  -json                 Print the full parse result as JSON")
	fmt.Fprintln(w, "  -yaml                 Export the schema as YAML")
	fmt.Fprintln(w, "  -fix                  Print a corrected diagram with fixable issues applied")
	fmt.Fprintln(w, "  -o <file>             Write output to a file instead of stdout")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  erdsmith schema.mmd")
	fmt.Fprintln(w, "  erdsmith -json schema.mmd")
	fmt.Fprintln(w, "  erdsmith -fix -o corrected.mmd schema.mmd")
	fmt.Fprintln(w, "  ERDSMITH_DB=diagrams.db erdsmith -serve")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ERDSMITH_BIND         Server bind address (default: 127.0.0.1:8321)")
	fmt.Fprintln(w, "  ERDSMITH_ALLOW_REMOTE Allow non-loopback binds (default: false)")
	fmt.Fprintln(w, "  ERDSMITH_DB           SQLite path enabling saved diagrams")
	fmt.Fprintln(w, "  ERDSMITH_MAX_SESSIONS In-memory session capacity (default: 100)")
	fmt.Fprintln(w, "  ERDSMITH_SESSION_TTL  Idle session lifetime (default: 1h)")
}
