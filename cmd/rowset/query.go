package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/okvist/rowset"
	"github.com/spf13/cobra"
)

var (
	queryStorage string
	queryLimit   int
)

var queryCmd = &cobra.Command{
	Use:   "query <select-statement>",
	Short: "Run a query and print the result set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		defer session.Close()

		opts, err := statementOptions()
		if err != nil {
			return err
		}
		rs, err := rowset.Query(session, args[0], opts...)
		if err != nil {
			return err
		}
		return printRecordSet(cmd.OutOrStdout(), rs)
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryStorage, "storage", "slice", "column storage shape: slice, list or deque")
	queryCmd.Flags().IntVar(&queryLimit, "limit", -1, "cap the number of extracted rows")
}

func statementOptions() ([]rowset.StatementOption, error) {
	kind, err := parseStorage(queryStorage)
	if err != nil {
		return nil, err
	}
	opts := []rowset.StatementOption{rowset.WithStorage(kind)}
	if queryLimit >= 0 {
		opts = append(opts, rowset.WithLimit(queryLimit))
	}
	return opts, nil
}

func parseStorage(s string) (rowset.StorageKind, error) {
	switch strings.ToLower(s) {
	case "slice":
		return rowset.StorageSlice, nil
	case "list":
		return rowset.StorageList, nil
	case "deque":
		return rowset.StorageDeque, nil
	}
	return rowset.StorageUnknown, fmt.Errorf("unknown storage shape %q", s)
}

func printRecordSet(w io.Writer, rs *rowset.RecordSet) error {
	header := make([]string, rs.ColumnCount())
	for i := range header {
		name, err := rs.ColumnName(i)
		if err != nil {
			return err
		}
		typ, err := rs.ColumnType(i)
		if err != nil {
			return err
		}
		header[i] = fmt.Sprintf("%s(%s)", name, typ)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for row := range rs.Rows() {
		fmt.Fprintln(w, row.String())
	}
	fmt.Fprintf(w, "(%d rows)\n", rs.RowCount())
	return nil
}
