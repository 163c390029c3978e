// Command templateschema writes the JSON schema of saved submarine templates.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"subsim/internal/sims/submarine"

	"github.com/invopop/jsonschema"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema, err := buildSchema()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build schema: %v\n", err)
		os.Exit(1)
	}

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{}
	schema := reflector.Reflect(new(submarine.SubmarineTemplate))
	schema.Title = "Submarine Template"
	schema.Description = "A saved hull: cell classes, objects and wires"

	// Cells marshal as their names, not as the underlying byte.
	def, ok := schema.Definitions["SubmarineTemplate"]
	if !ok || def.Properties == nil {
		return nil, errors.New("template definition missing")
	}
	raw, ok := def.Properties.Get("water_cells")
	if !ok {
		return nil, errors.New("water_cells property missing")
	}
	cells, ok := raw.(*jsonschema.Schema)
	if !ok {
		return nil, fmt.Errorf("water_cells has type %T", raw)
	}
	enum := make([]interface{}, 0, 5)
	for _, name := range submarine.TemplateCellNames() {
		enum = append(enum, name)
	}
	cells.Items = &jsonschema.Schema{Type: "string", Enum: enum}
	return schema, nil
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
