// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/baby/cpu"
	"github.com/ezrec/baby/translate"
)

var asmQuiet bool
var asmDefines []string

// ErrDefine is a -D argument that is not NAME=VALUE.
type ErrDefine string

func (err ErrDefine) Error() string {
	return translate.From("-D %v: expected NAME=VALUE", string(err))
}

var asmCmd = &cobra.Command{
	Use:   "asm source image",
	Short: "Assemble a source file into a machine-code image",
	Long: `Asm runs the two pass assembler over a source file.

Each source line is '[LABEL:] MNEMONIC [OPERAND] [; comment]'. Operands are
decimal numbers, labels, or $(expression) in Starlark syntax. Names given
with -D are visible to expressions.

The image is only written if the whole source assembles.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		asm := &cpu.Assembler{Verbose: !asmQuiet}

		err = predefine(asm, asmDefines)
		if err != nil {
			return
		}

		return asm.AssembleFile(args[0], args[1])
	},
}

// predefine adds NAME=VALUE pairs to the assembler.
func predefine(asm *cpu.Assembler, defines []string) (err error) {
	for _, define := range defines {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			return ErrDefine(define)
		}
		asm.Predefine(name, value)
	}

	return
}

func init() {
	asmCmd.Flags().BoolVarP(&asmQuiet, "quiet", "q", false, "do not log the assembly")
	asmCmd.Flags().StringArrayVarP(&asmDefines, "define", "D", nil, "predefine NAME=VALUE for expressions")
	rootCmd.AddCommand(asmCmd)
}
