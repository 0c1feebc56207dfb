package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harlowgray/transmute/internal/custom"
)

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage user-defined character-map encoders",
	Long: `Custom encoders map single characters to arbitrary strings, defined
in a JSON spec file:

  {
    "name": "Fruit",
    "emoji": "🍎",
    "mapping": [
      {"from": "a", "to": "🍎"},
      {"from": "b", "to": "🍌"}
    ],
    "caseSensitive": false
  }

Added encoders persist under the data directory and load on every run.
Export produces a URL-safe token that anyone can import.`,
}

var customAddCmd = &cobra.Command{
	Use:   "add --spec <file>",
	Short: "Build and register a custom encoder from a spec file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("spec")
		if path == "" {
			return fmt.Errorf("provide --spec with the encoder definition file")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read spec file: %w", err)
		}
		var spec custom.Spec
		if err := json.Unmarshal(data, &spec); err != nil {
			return fmt.Errorf("parse spec file %s: %w", path, err)
		}
		return addCustomEncoder(cmd, spec)
	},
}

var customImportCmd = &cobra.Command{
	Use:   "import <token>",
	Short: "Register a custom encoder from an exported token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := custom.Import(args[0])
		if err != nil {
			return err
		}
		return addCustomEncoder(cmd, spec)
	},
}

var customExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print the shareable token for a custom encoder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enc, err := customEncoderByName(args[0])
		if err != nil {
			return err
		}
		token, err := custom.Export(enc.Spec())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var customListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered custom encoders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(customIDs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no custom encoders registered")
			return nil
		}
		for name, id := range customIDs {
			enc, ok := registry.Get(id)
			if !ok {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s  %s\n", name, id, enc.Description())
		}
		return nil
	},
}

var customRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a custom encoder",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enc, err := customEncoderByName(args[0])
		if err != nil {
			return err
		}
		if err := registry.RemoveCustom(enc.ID()); err != nil {
			return err
		}
		delete(customIDs, strings.ToLower(enc.Name()))

		path := customTokenPath(enc.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove token file: %w", err)
		}
		logger.Info("custom encoder removed", zap.String("name", enc.Name()))
		return nil
	},
}

func init() {
	customAddCmd.Flags().String("spec", "", "Encoder definition file (JSON)")
	customCmd.AddCommand(customAddCmd)
	customCmd.AddCommand(customImportCmd)
	customCmd.AddCommand(customExportCmd)
	customCmd.AddCommand(customListCmd)
	customCmd.AddCommand(customRemoveCmd)
}

func addCustomEncoder(cmd *cobra.Command, spec custom.Spec) error {
	enc, err := custom.Build(spec)
	if err != nil {
		return err
	}
	if _, exists := customIDs[strings.ToLower(spec.Name)]; exists {
		return fmt.Errorf("a custom encoder named %q already exists", spec.Name)
	}
	if err := registry.AddCustom(enc); err != nil {
		return err
	}
	customIDs[strings.ToLower(spec.Name)] = enc.ID()

	token, err := custom.Export(spec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.CustomDir(), 0o755); err != nil {
		return fmt.Errorf("create custom encoder directory: %w", err)
	}
	path := customTokenPath(spec.Name)
	if err := os.WriteFile(path, []byte(token+"\n"), 0o644); err != nil {
		return fmt.Errorf("persist encoder token: %w", err)
	}

	logger.Info("custom encoder registered",
		zap.String("name", spec.Name), zap.String("id", enc.ID()))
	fmt.Fprintf(cmd.OutOrStdout(), "registered %s as %s\n", spec.Name, enc.ID())
	return nil
}

func customEncoderByName(name string) (*custom.Encoder, error) {
	id, ok := customIDs[strings.ToLower(name)]
	if !ok {
		// Allow addressing by registry id as well.
		id = name
	}
	enc, ok := registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("no custom encoder named %q", name)
	}
	ce, ok := enc.(*custom.Encoder)
	if !ok {
		return nil, fmt.Errorf("%q is a built-in encoder", name)
	}
	return ce, nil
}

func customTokenPath(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if safe == "" {
		safe = "encoder"
	}
	return filepath.Join(cfg.CustomDir(), safe+".token")
}
