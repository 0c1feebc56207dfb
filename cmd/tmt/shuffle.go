package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harlowgray/transmute/internal/compose"
)

var shuffleCmd = &cobra.Command{
	Use:   "shuffle [text]",
	Short: "Encode each character with a randomly chosen encoder",
	Long: `Shuffle picks a random palette member per character, so the same
input produces different output every run. The output embeds which member
handled each character, and decoding is exact.

  tmt shuffle --palette caesar,atbash,rot13 -t "meet at noon"
  tmt shuffle --palette caesar,atbash,rot13 --decode -t "..."

Every palette member must be reversible.`,
	RunE: runShuffle,
}

func init() {
	addIOFlags(shuffleCmd)
	shuffleCmd.Flags().String("palette", "", "Comma-separated reversible encoder ids")
	shuffleCmd.Flags().Bool("decode", false, "Decode instead of encode")
}

func runShuffle(cmd *cobra.Command, args []string) error {
	paletteFlag, _ := cmd.Flags().GetString("palette")
	if paletteFlag == "" {
		return fmt.Errorf("provide --palette with at least one encoder id")
	}

	var palette []string
	for _, id := range strings.Split(paletteFlag, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		enc, err := resolveEncoder(id)
		if err != nil {
			return err
		}
		palette = append(palette, enc.ID())
	}

	shuffle, err := compose.NewShuffle(registry, palette)
	if err != nil {
		return err
	}

	text, err := getInputText(cmd, args)
	if err != nil {
		return err
	}

	var result string
	if decode, _ := cmd.Flags().GetBool("decode"); decode {
		result, err = shuffle.Decode(text)
	} else {
		result, err = shuffle.Encode(text)
	}
	if err != nil {
		return err
	}

	formatted, err := formatOutput(result, cmd)
	if err != nil {
		return err
	}
	return writeOutput(formatted, cmd)
}
