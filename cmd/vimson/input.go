package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const stdinName = "<stdin>"

// readInput returns the display name and contents of the file named by
// args, or of stdin when args is empty or "-".
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return stdinName, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return stdinName, data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return args[0], nil, fmt.Errorf("failed to read input: %w", err)
	}
	return args[0], data, nil
}
