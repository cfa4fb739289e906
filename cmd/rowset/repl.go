package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/okvist/rowset"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Query the store interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		defer session.Close()

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "rowset> ",
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		fmt.Println("Type a SELECT statement, 'tables', or 'exit'.")
		for {
			line, err := rl.Readline()
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			line = strings.TrimSpace(line)
			switch {
			case line == "":
				continue
			case line == "exit" || line == "quit":
				return nil
			case line == "tables":
				names, err := session.Tables()
				if err != nil {
					fmt.Println("error:", err)
					continue
				}
				for _, name := range names {
					fmt.Println(name)
				}
				continue
			}
			rs, err := rowset.Query(session, line)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			if err := printRecordSet(rl.Stdout(), rs); err != nil {
				fmt.Println("error:", err)
			}
		}
	},
}
