// Command tmt is the transmute CLI: encode and decode text through the
// stock encoder set, compose chains and shuffles, detect likely encodings,
// and manage custom encoders and saved recipes.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"encoding/base64"
	"encoding/hex"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harlowgray/transmute/internal/catalog"
	"github.com/harlowgray/transmute/internal/config"
	"github.com/harlowgray/transmute/internal/custom"
	"github.com/harlowgray/transmute/internal/encoder"
	"github.com/harlowgray/transmute/internal/logging"
	"github.com/harlowgray/transmute/internal/params"
	"github.com/harlowgray/transmute/internal/recipe"
)

var (
	cfg      config.Config
	logger   *zap.Logger
	registry *encoder.Registry
	bag      *params.Bag
	recipes  *recipe.Manager

	// customIDs maps user-facing custom encoder names to registry ids.
	customIDs map[string]string
)

var rootCmd = &cobra.Command{
	Use:   "tmt",
	Short: "transmute - chain, shuffle, and detect text transformations",
	Long: `transmute runs text through a catalog of classical ciphers and
modern codecs: one encoder at a time, sequenced into chains, or scattered
per-character with a shuffle.

Input comes from --text, --file, or stdin. Output goes to stdout unless
--output names a file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger, err = logging.Setup(cfg.Log)
		if err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}

		registry, err = catalog.NewRegistry()
		if err != nil {
			return fmt.Errorf("build encoder registry: %w", err)
		}

		bag = params.NewBag()
		if err := bag.LoadFile(cfg.ParamsPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		recipes = recipe.NewManager(cfg.RecipesDir())
		if err := recipes.Load(); err != nil {
			return err
		}

		return loadCustomEncoders()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(customCmd)
	rootCmd.AddCommand(recipeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadCustomEncoders registers every exported encoder token found in the
// data directory.
func loadCustomEncoders() error {
	customIDs = make(map[string]string)

	entries, err := os.ReadDir(cfg.CustomDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read custom encoder directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".token") {
			continue
		}
		path := filepath.Join(cfg.CustomDir(), entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		spec, err := custom.Import(strings.TrimSpace(string(data)))
		if err != nil {
			logger.Warn("skipping invalid encoder token",
				zap.String("path", path), zap.Error(err))
			continue
		}
		enc, err := custom.Build(spec)
		if err != nil {
			logger.Warn("skipping unbuildable encoder token",
				zap.String("path", path), zap.Error(err))
			continue
		}
		if err := registry.AddCustom(enc); err != nil {
			return err
		}
		customIDs[strings.ToLower(spec.Name)] = enc.ID()
	}
	return nil
}

// resolveEncoder looks an id up in the registry, falling back to custom
// encoder names.
func resolveEncoder(id string) (encoder.Encoder, error) {
	if enc, ok := registry.Get(id); ok {
		return enc, nil
	}
	if mapped, ok := customIDs[strings.ToLower(id)]; ok {
		if enc, ok := registry.Get(mapped); ok {
			return enc, nil
		}
	}
	return nil, fmt.Errorf("unknown encoder %q (run 'tmt list' for the catalog)", id)
}

func getInputText(cmd *cobra.Command, args []string) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}
	if filename, _ := cmd.Flags().GetString("file"); filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", fmt.Errorf("read file %s: %w", filename, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	return "", errors.New("no input text provided: use --text, --file, or pipe to stdin")
}

func formatOutput(text string, cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.DefaultFormat
	}

	switch strings.ToLower(format) {
	case "text", "":
		return text, nil
	case "hex":
		return hex.EncodeToString([]byte(text)), nil
	case "base64":
		return base64.StdEncoding.EncodeToString([]byte(text)), nil
	default:
		return "", fmt.Errorf("unknown format: %s (available: text, hex, base64)", format)
	}
}

func writeOutput(text string, cmd *cobra.Command) error {
	outputFile, _ := cmd.Flags().GetString("output")
	if outputFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	return os.WriteFile(outputFile, []byte(text), 0o600)
}

func ensureDataDir() error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// addIOFlags registers the input/output flags shared by the text-processing
// commands.
func addIOFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("text", "t", "", "Text to process")
	cmd.Flags().StringP("file", "f", "", "File to process")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("format", "", "Output format (text, hex, base64)")
}
