// Command interp assembles a source file and runs it immediately,
// without a separate "write the object file, then load it" step:
//
//	interp [-v] INPUT
//
// It still round-trips through the real object-file bytes (internal/format)
// in memory, rather than skipping the wire contract the way a true
// one-shot interpreter might — the whole point of this module is that
// the assembler and the VM agree on that format, and this command is
// meant to exercise exactly that agreement.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ipc-labs/mcim/pkg/asm"
	"github.com/ipc-labs/mcim/pkg/supervisor"
	"github.com/ipc-labs/mcim/pkg/vm"
)

func main() {
	log.SetFlags(0)

	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "interp [-v] INPUT",
		Short: "assemble and immediately run an mcim source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], verbose)
		},
	}
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the tty buffer after every tick")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(input string, verbose bool) error {
	object, diags, err := asm.Assemble(input)
	if err != nil {
		return err
	}
	if n := diags.Count(); n > 0 {
		for _, d := range diags.Items() {
			log.Printf("%s: %s", input, d)
		}
		return fmt.Errorf("%s: %d assembly error(s)", input, n)
	}

	s := supervisor.New()
	if _, err := s.LoadImage(bytes.NewReader(object)); err != nil {
		return err
	}

	for {
		exited := true
		for _, p := range s.Snapshot() {
			if p.Stat&vm.StatExit == 0 {
				exited = false
				break
			}
		}
		if exited {
			break
		}
		if err := s.Tick(); err != nil {
			return err
		}
		if verbose {
			log.Printf("interp: tty=%q", s.TTY())
		}
	}
	os.Stdout.Write(s.TTY())
	return nil
}
