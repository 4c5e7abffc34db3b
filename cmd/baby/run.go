// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/baby/emulator"
)

var runMemory int
var runVerbose bool
var runStep bool
var runMaxTicks int
var runDump bool

var runCmd = &cobra.Command{
	Use:   "run image",
	Short: "Run a machine-code image",
	Long: `Run loads an image into the store and executes it from the boot
address until STP.

The word at address 0 is never executed. Division by zero is logged and
execution continues. With --step, each cycle waits for a newline on stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu, err := emulator.NewEmulator(runMemory)
		if err != nil {
			return
		}
		emu.Verbose = runVerbose || runStep
		emu.MaxTicks = runMaxTicks

		err = emu.Load(args[0])
		if err != nil {
			return
		}

		if runStep {
			err = stepAll(emu)
		} else {
			err = emu.Run()
		}

		if runDump {
			fmt.Print(emu.Cpu.String())
		} else {
			fmt.Printf("acc: %d\n", emu.Cpu.Accumulator)
		}

		return
	},
}

// stepAll runs one cycle per line read from stdin.
func stepAll(emu *emulator.Emulator) (err error) {
	stdin := bufio.NewScanner(os.Stdin)
	for running := true; running; {
		fmt.Printf("%02d> ", emu.Cpu.Pc)
		if !stdin.Scan() {
			return stdin.Err()
		}
		_, running, err = emu.Step()
		if err != nil {
			return
		}
	}

	return
}

func init() {
	runCmd.Flags().IntVarP(&runMemory, "memory", "m", 32, "store size in words, 32 or 64")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "log every cycle")
	runCmd.Flags().BoolVar(&runStep, "step", false, "single step, one cycle per input line")
	runCmd.Flags().IntVar(&runMaxTicks, "max-ticks", 0, "halt after this many cycles, 0 for no limit")
	runCmd.Flags().BoolVar(&runDump, "dump", false, "print the registers and store after the run")
	rootCmd.AddCommand(runCmd)
}
