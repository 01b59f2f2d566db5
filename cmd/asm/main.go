// Command asm assembles mcim source into an object file: asm [-o OUT] INPUT.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ipc-labs/mcim/pkg/asm"
)

func main() {
	log.SetFlags(0)

	var out string
	rootCmd := &cobra.Command{
		Use:   "asm [-o OUT] INPUT",
		Short: "assemble an mcim source file into an object file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], out)
		},
	}
	rootCmd.Flags().StringVarP(&out, "output", "o", "a", "object file to write")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(input, out string) error {
	body, diags, err := asm.Assemble(input)
	if err != nil {
		return err
	}
	for _, d := range diags.Items() {
		log.Printf("%s: %s", input, d)
	}
	if n := diags.Count(); n > 0 {
		log.Printf("%s: %d error(s)", input, n)
		os.Exit(1)
	}
	return os.WriteFile(out, body, 0644)
}
