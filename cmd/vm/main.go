// Command vm loads and runs mcim object files:
//
//	vm [-n] [-t TTYFILE] [INPUT]
//	vm load FILE
//	vm restart FILE
//
// The bare command drives a plain poll/tick loop with no display and no
// interactive key handling. It runs until every loaded process has set
// EXIT, or until interrupted.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ipc-labs/mcim/pkg/supervisor"
	"github.com/ipc-labs/mcim/pkg/vm"
)

// logCnt is LOGCNT: the tty log file is truncated and rewritten every
// this many ticks, provided the buffer is non-empty.
const logCnt = 50

func main() {
	log.SetFlags(0)

	var noLoad bool
	var ttyPath string

	rootCmd := &cobra.Command{
		Use:   "vm [-n] [-t TTYFILE] [INPUT]",
		Short: "run mcim object files under the round-robin scheduler",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return runVM(input, noLoad, ttyPath)
		},
	}
	rootCmd.Flags().BoolVarP(&noLoad, "no-load", "n", false, "suppress the initial image load")
	rootCmd.Flags().StringVarP(&ttyPath, "tty", "t", "", "periodically flush the tty buffer to this file")

	rootCmd.AddCommand(loadCmd(), restartCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runVM(input string, noLoad bool, ttyPath string) error {
	s := supervisor.New()
	if !noLoad {
		if input == "" {
			return fmt.Errorf("usage: vm [-n] [-t TTYFILE] [INPUT]")
		}
		fp, err := os.Open(input)
		if err != nil {
			return err
		}
		_, err = s.LoadImage(fp)
		fp.Close()
		if err != nil {
			return err
		}
	}

	var ttyFile *os.File
	if ttyPath != "" {
		f, err := os.Create(ttyPath)
		if err != nil {
			return err
		}
		defer f.Close()
		ttyFile = f
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)

	logCountdown := logCnt
	for {
		select {
		case <-sigc:
			return nil
		default:
		}
		if s.NumProcs() == 0 || allExited(s) {
			return nil
		}
		if err := s.Tick(); err != nil {
			return err
		}
		if ttyFile != nil && len(s.TTY()) > 0 {
			logCountdown--
			if logCountdown == 0 {
				logCountdown = logCnt
				if err := flushTTY(ttyFile, s.TTY()); err != nil {
					return err
				}
			}
		}
	}
}

func allExited(s *supervisor.Supervisor) bool {
	for _, p := range s.Snapshot() {
		if p.Stat&vm.StatExit == 0 {
			return false
		}
	}
	return true
}

func flushTTY(f *os.File, tty []byte) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err := f.Write(tty)
	return err
}

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load FILE",
		Short: "append FILE as a new process and print its index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := supervisor.New()
			fp, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer fp.Close()
			idx, err := s.LoadImage(fp)
			if err != nil {
				return err
			}
			fmt.Println(idx)
			return nil
		},
	}
}

// restartCmd loads FILE as process 0 and immediately restarts it,
// printing its reset state. This module never persists VM state across
// separate invocations, so this exists to exercise and demonstrate
// Supervisor.Restart in isolation, the way cmd/vm's own "load"
// subcommand exercises LoadImage.
func restartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart FILE",
		Short: "load FILE, restart the resulting process, and print its state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := supervisor.New()
			fp, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer fp.Close()
			idx, err := s.LoadImage(fp)
			if err != nil {
				return err
			}
			if err := s.Restart(idx); err != nil {
				return err
			}
			view := s.Snapshot()[idx]
			fmt.Printf("process %d: epc=%#x pc=%#x stat=%#x\n", view.Index, view.EPC, view.PC, view.Stat)
			return nil
		},
	}
}
