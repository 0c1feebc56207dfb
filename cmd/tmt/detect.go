package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harlowgray/transmute/internal/detect"
)

var detectCmd = &cobra.Command{
	Use:   "detect [text]",
	Short: "Guess how a piece of text was encoded",
	Long: `Detect scores the input against known encoding shapes and prints
the likely encoders, best guess first.

  tmt detect -t "SGVsbG8sIFdvcmxkIQ=="
  tmt detect --try -t "01001000 01101001"

With --try, each guessed encoder is also asked to decode the input and
successful decodes are shown.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringP("text", "t", "", "Text to analyze")
	detectCmd.Flags().StringP("file", "f", "", "File to analyze")
	detectCmd.Flags().Bool("try", false, "Attempt to decode with each guess")
}

func runDetect(cmd *cobra.Command, args []string) error {
	text, err := getInputText(cmd, args)
	if err != nil {
		return err
	}

	if try, _ := cmd.Flags().GetBool("try"); try {
		attempts := detect.AutoDecode(registry, text)
		if len(attempts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no known encoding detected")
			return nil
		}
		for _, a := range attempts {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %4.0f%%  %s\n  -> %s\n",
				a.Guess.Encoder, a.Guess.Confidence*100, a.Guess.Reasoning, a.Decoded)
		}
		return nil
	}

	guesses := detect.Detect(text)
	if len(guesses) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no known encoding detected")
		return nil
	}
	for _, g := range guesses {
		fmt.Fprintf(cmd.OutOrStdout(), "%-14s %4.0f%%  %s\n",
			g.Encoder, g.Confidence*100, g.Reasoning)
	}
	return nil
}
