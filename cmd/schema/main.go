// Command schema writes JSON schema of the scidigest configuration file.
// Usage: schema [output], output defaults to schema.json, "-" prints to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/umputun/scidigest/pkg/config"
)

func main() {
	out := "schema.json"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	if err := run(out, os.Stdout); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	if out != "-" {
		fmt.Printf("config schema written to %s\n", out)
	}
}

// run generates config schema and writes it to the file, or to stdout for "-"
func run(out string, stdout io.Writer) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	data = append(data, '\n')

	if out == "-" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write schema: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(out, data, 0o644); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
