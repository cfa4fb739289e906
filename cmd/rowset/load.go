package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/okvist/rowset"
	"github.com/spf13/cobra"
)

var loadSchema string

var loadCmd = &cobra.Command{
	Use:   "load <table> <file.json>",
	Short: "Create a table and load JSON rows into it",
	Long: `Load reads a JSON array of objects and inserts each object as one row.
When the table does not exist yet, --schema declares its columns as a
comma-separated list of name:type[:nullable][:indexed] entries, e.g.

  --schema 'id:int64:indexed,name:string:nullable,score:double'

Types: bool, int8, int16, int32, int64, float, double, string, blob,
timestamp, uuid.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, file := args[0], args[1]
		session, err := openSession()
		if err != nil {
			return err
		}
		defer session.Close()

		if loadSchema != "" {
			defs, err := parseSchema(loadSchema)
			if err != nil {
				return err
			}
			if err := session.CreateTable(table, defs); err != nil && !errors.Is(err, rowset.ErrTableExists) {
				return err
			}
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		var rows []map[string]any
		if err := json.Unmarshal(data, &rows); err != nil {
			return err
		}
		if err := session.InsertRows(table, rows); err != nil {
			return err
		}
		fmt.Printf("loaded %d rows into %s\n", len(rows), table)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadSchema, "schema", "", "column definitions for table creation")
}

func parseSchema(schema string) ([]rowset.ColumnDef, error) {
	var defs []rowset.ColumnDef
	for _, entry := range strings.Split(schema, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) < 2 {
			return nil, fmt.Errorf("schema entry %q: want name:type[:nullable][:indexed]", entry)
		}
		typ, ok := rowset.ParseColumnType(parts[1])
		if !ok {
			return nil, fmt.Errorf("schema entry %q: unknown type %q", entry, parts[1])
		}
		def := rowset.ColumnDef{Name: parts[0], Type: typ}
		for _, attr := range parts[2:] {
			switch attr {
			case "nullable":
				def.Nullable = true
			case "indexed":
				def.Indexed = true
			default:
				return nil, fmt.Errorf("schema entry %q: unknown attribute %q", entry, attr)
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}
