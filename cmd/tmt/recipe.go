package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harlowgray/transmute/internal/compose"
	"github.com/harlowgray/transmute/internal/recipe"
	"github.com/harlowgray/transmute/internal/wire"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Save and rerun named encoder chains",
	Long: `Recipes are named chains stored in the data directory.

  tmt recipe save morning --steps "caesar:5,base64" --tags daily
  tmt recipe run morning -t "attack at dawn"
  tmt recipe run morning --decode -t "..."
  tmt recipe search daily`,
}

var recipeSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a chain as a named recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stepsFlag, _ := cmd.Flags().GetString("steps")
		if stepsFlag == "" {
			return fmt.Errorf("provide --steps for the recipe")
		}
		steps, err := parseSteps(stepsFlag)
		if err != nil {
			return err
		}
		// Validate the chain before persisting it.
		if _, err := compose.NewChain(registry, steps); err != nil {
			return err
		}
		spec, err := specFromSteps(steps)
		if err != nil {
			return err
		}

		description, _ := cmd.Flags().GetString("description")
		tagsFlag, _ := cmd.Flags().GetString("tags")
		var tags []string
		for _, tag := range strings.Split(tagsFlag, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}

		if err := ensureDataDir(); err != nil {
			return err
		}
		if err := recipes.Save(&recipe.Recipe{
			Name:        args[0],
			Description: description,
			Tags:        tags,
			Chain:       spec,
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved recipe %s (%d steps)\n", args[0], len(steps))
		return nil
	},
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		printRecipes(cmd, recipes.List())
		return nil
	},
}

var recipeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search recipes by name, description, or tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printRecipes(cmd, recipes.Search(args[0]))
		return nil
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a recipe's chain spec",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, ok := recipes.Get(args[0])
		if !ok {
			return fmt.Errorf("no recipe named %q", args[0])
		}
		data, err := wire.JSONCodec{Indent: true}.Marshal(r)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var recipeRunCmd = &cobra.Command{
	Use:   "run <name> [text]",
	Short: "Run text through a saved recipe",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, ok := recipes.Get(args[0])
		if !ok {
			return fmt.Errorf("no recipe named %q", args[0])
		}
		steps, err := stepsFromSpec(r.Chain)
		if err != nil {
			return err
		}
		chain, err := compose.NewChain(registry, steps)
		if err != nil {
			return err
		}

		text, err := getInputText(cmd, args[1:])
		if err != nil {
			return err
		}

		var result compose.Result
		if decode, _ := cmd.Flags().GetBool("decode"); decode {
			result = chain.Decode(text)
		} else {
			result, err = chain.Encode(text)
			if err != nil {
				return err
			}
		}
		if result.Failed {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"recipe stopped at %s: %v (partial output below)\n",
				result.FailedStep, result.StepErr)
		}

		formatted, err := formatOutput(result.Output, cmd)
		if err != nil {
			return err
		}
		return writeOutput(formatted, cmd)
	},
}

var recipeRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved recipe",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recipes.Delete(args[0])
	},
}

func init() {
	recipeSaveCmd.Flags().String("steps", "", "Comma-separated steps (id or id:value)")
	recipeSaveCmd.Flags().String("description", "", "What the recipe is for")
	recipeSaveCmd.Flags().String("tags", "", "Comma-separated tags")

	addIOFlags(recipeRunCmd)
	recipeRunCmd.Flags().Bool("decode", false, "Decode instead of encode")

	recipeCmd.AddCommand(recipeSaveCmd)
	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeSearchCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeRunCmd)
	recipeCmd.AddCommand(recipeRemoveCmd)
}

func printRecipes(cmd *cobra.Command, list []*recipe.Recipe) {
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recipes saved")
		return
	}
	for _, r := range list {
		line := fmt.Sprintf("%-20s %d steps", r.Name, len(r.Chain.Steps))
		if len(r.Tags) > 0 {
			line += "  [" + strings.Join(r.Tags, ", ") + "]"
		}
		if r.Description != "" {
			line += "  " + r.Description
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}
