package main

import (
	"fmt"
	"os"

	"github.com/okvist/rowset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rowset",
	Short: "Query an embedded rowset store",
	Long: `rowset is a command-line front end for the rowset library: an embedded
tabular store with a navigable, typed, NULL-aware result-set cursor.

Examples:
  rowset --db people.db load people --schema 'id:int64:indexed,name:string:nullable' data.json
  rowset --db people.db query "SELECT name FROM people WHERE id = 2"
  rowset --db people.db repl`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "rowset.db", "store file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log statement execution")
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(tablesCmd)
}

func openSession() (*rowset.Session, error) {
	var opts []rowset.SessionOption
	if verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		opts = append(opts, rowset.WithLogger(log))
	}
	return rowset.Open(dbPath, 0o600, nil, opts...)
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		defer session.Close()
		names, err := session.Tables()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
