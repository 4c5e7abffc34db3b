// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ezrec/baby/translate"
)

var rootLang string

var rootCmd = &cobra.Command{
	Use:   "baby",
	Short: "Manchester Baby assembler and simulator",
	Long: `Baby assembles source into 32 bit binary-string images, and runs
them on a simulated 32 or 64 word store.

Images are text, one word per line, written with bit 0 (weight 1) first.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if len(rootLang) != 0 {
			translate.SetLocale(rootLang)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLang, "lang", "", "message locale, defaults to the system locale")
}

func main() {
	log.SetFlags(0)

	err := rootCmd.Execute()
	if err != nil {
		log.Fatalf("baby: %v", err)
	}
}
