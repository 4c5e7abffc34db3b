// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	stdio "io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/baby/cpu"
	"github.com/ezrec/baby/io"
)

var disCmd = &cobra.Command{
	Use:   "dis image",
	Short: "Disassemble a machine-code image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		return disassemble(cmd.OutOrStdout(), args[0])
	},
}

// disassemble lists an image file, one word per line. A file that cannot be
// opened is an ErrFile; a malformed image is returned as its io.ErrLine.
func disassemble(w stdio.Writer, path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = &cpu.ErrFile{Path: path, Err: err}
		return
	}
	defer inf.Close()

	var image io.Image
	err = image.Unmarshal(inf)
	if err != nil {
		return
	}

	for address, data := range image.Data {
		word := cpu.Word(data)
		_, err = fmt.Fprintf(w, "%02d: %v  %-8v ; %d\n", address, word, cpu.Disassemble(word), word.Int())
		if err != nil {
			return
		}
	}

	return
}

func init() {
	rootCmd.AddCommand(disCmd)
}
