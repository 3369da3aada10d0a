package main

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/spf13/cobra"
)

var difficultyCmd = &cobra.Command{
	Use:   "difficulty <text...>",
	Short: "Classify the reading level of English text",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), engine.ClassifyDifficulty(strings.Join(args, " ")))
	},
}
