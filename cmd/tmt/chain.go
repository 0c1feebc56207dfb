package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harlowgray/transmute/internal/catalog"
	"github.com/harlowgray/transmute/internal/compose"
	"github.com/harlowgray/transmute/internal/encoder"
	"github.com/harlowgray/transmute/internal/wire"
)

var chainCmd = &cobra.Command{
	Use:   "chain [text]",
	Short: "Run text through a sequence of encoders",
	Long: `Chain encoders so each step consumes the previous step's output.

Steps are written id or id:value, comma separated. Dual values use a slash:

  tmt chain --steps "caesar:5,atbash,base64" -t "attack at dawn"
  tmt chain --steps "doubletransposition:ZEBRA/OCEAN,morse" -t "hello"
  tmt chain --steps "affine:5/8,reverse" -t "hello" --decode

A chain saved with --export-spec can be rerun with --spec; .cbor files use
the binary wire format, everything else JSON:

  tmt chain --steps "caesar:5,atbash" --export-spec daily.json -t "hi"
  tmt chain --spec daily.json -t "hi"

Decoding walks the chain backwards and stops at the first step that is not
reversible or fails, reporting how far it got.`,
	RunE: runChain,
}

func init() {
	addIOFlags(chainCmd)
	chainCmd.Flags().String("steps", "", "Comma-separated steps (id or id:value)")
	chainCmd.Flags().String("spec", "", "Chain spec file to load")
	chainCmd.Flags().String("export-spec", "", "Write the chain spec to a file")
	chainCmd.Flags().Bool("decode", false, "Decode instead of encode")
	chainCmd.Flags().Bool("verbose-steps", false, "Print each intermediate output")
}

func runChain(cmd *cobra.Command, args []string) error {
	steps, spec, err := chainFromFlags(cmd)
	if err != nil {
		return err
	}

	chain, err := compose.NewChain(registry, steps)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("export-spec"); path != "" {
		if err := writeChainSpec(spec, path); err != nil {
			return err
		}
	}

	text, err := getInputText(cmd, args)
	if err != nil {
		return err
	}

	decode, _ := cmd.Flags().GetBool("decode")

	var result compose.Result
	if decode {
		result = chain.Decode(text)
	} else {
		result, err = chain.Encode(text)
		if err != nil {
			return err
		}
	}

	if verbose, _ := cmd.Flags().GetBool("verbose-steps"); verbose {
		for _, step := range result.Steps {
			fmt.Fprintf(cmd.ErrOrStderr(), "%-20s %s\n", step.ID, step.Output)
		}
	}

	if result.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(),
			"chain stopped at %s: %v (partial output below)\n",
			result.FailedStep, result.StepErr)
	}

	logger.Debug("chain complete",
		zap.Int("steps", len(steps)),
		zap.Bool("decode", decode),
		zap.Bool("failed", result.Failed))

	formatted, err := formatOutput(result.Output, cmd)
	if err != nil {
		return err
	}
	return writeOutput(formatted, cmd)
}

// chainFromFlags resolves the chain from --spec or --steps.
func chainFromFlags(cmd *cobra.Command) ([]compose.Step, wire.ChainSpec, error) {
	specPath, _ := cmd.Flags().GetString("spec")
	stepsFlag, _ := cmd.Flags().GetString("steps")

	switch {
	case specPath != "" && stepsFlag != "":
		return nil, wire.ChainSpec{}, fmt.Errorf("--spec and --steps are mutually exclusive")
	case specPath != "":
		spec, err := readChainSpec(specPath)
		if err != nil {
			return nil, wire.ChainSpec{}, err
		}
		steps, err := stepsFromSpec(spec)
		return steps, spec, err
	case stepsFlag != "":
		steps, err := parseSteps(stepsFlag)
		if err != nil {
			return nil, wire.ChainSpec{}, err
		}
		spec, err := specFromSteps(steps)
		return steps, spec, err
	default:
		return nil, wire.ChainSpec{}, fmt.Errorf("provide --steps or --spec")
	}
}

// parseSteps turns "caesar:5,atbash,affine:5/8" into chain steps.
func parseSteps(raw string) ([]compose.Step, error) {
	parts := strings.Split(raw, ",")
	steps := make([]compose.Step, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, value, hasValue := strings.Cut(part, ":")
		enc, err := resolveEncoder(id)
		if err != nil {
			return nil, err
		}
		var p encoder.Param
		if hasValue {
			p, err = parseStepValue(enc.ID(), value)
			if err != nil {
				return nil, err
			}
		}
		steps = append(steps, compose.Step{ID: enc.ID(), Param: p})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("no steps given")
	}
	return steps, nil
}

func parseStepValue(id, value string) (encoder.Param, error) {
	kind, ok := catalog.ParamKind(id)
	if !ok {
		return nil, fmt.Errorf("%s takes no parameter", id)
	}

	switch kind {
	case wire.KindShift:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s wants a number, got %q", id, value)
		}
		return encoder.ShiftParam(n), nil
	case wire.KindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s wants a number, got %q", id, value)
		}
		return encoder.IntParam(n), nil
	case wire.KindKey:
		return encoder.KeyParam(value), nil
	case wire.KindText:
		return encoder.TextParam(value), nil
	case wire.KindDualKey:
		first, second, found := strings.Cut(value, "/")
		if !found {
			return nil, fmt.Errorf("%s wants two keys as key1/key2, got %q", id, value)
		}
		return encoder.DualKeyParam{First: first, Second: second}, nil
	case wire.KindPair:
		rawA, rawB, found := strings.Cut(value, "/")
		if !found {
			return nil, fmt.Errorf("%s wants two numbers as a/b, got %q", id, value)
		}
		a, errA := strconv.Atoi(rawA)
		b, errB := strconv.Atoi(rawB)
		if errA != nil || errB != nil {
			return nil, fmt.Errorf("%s wants two numbers as a/b, got %q", id, value)
		}
		return encoder.PairParam{A: a, B: b}, nil
	default:
		return nil, fmt.Errorf("unknown parameter kind %q", kind)
	}
}

func specFromSteps(steps []compose.Step) (wire.ChainSpec, error) {
	spec := wire.ChainSpec{Steps: make([]wire.ChainStep, 0, len(steps))}
	for _, step := range steps {
		p, err := wire.FromParam(step.Param)
		if err != nil {
			return wire.ChainSpec{}, err
		}
		spec.Steps = append(spec.Steps, wire.ChainStep{Encoder: step.ID, Param: p})
	}
	return spec, nil
}

func stepsFromSpec(spec wire.ChainSpec) ([]compose.Step, error) {
	steps := make([]compose.Step, 0, len(spec.Steps))
	for _, ws := range spec.Steps {
		p, err := ws.Param.ToParam()
		if err != nil {
			return nil, err
		}
		steps = append(steps, compose.Step{ID: ws.Encoder, Param: p})
	}
	return steps, nil
}

func specCodec(path string) wire.Codec {
	if strings.HasSuffix(strings.ToLower(path), ".cbor") {
		return wire.CBORCodec{}
	}
	return wire.JSONCodec{Indent: true}
}

func readChainSpec(path string) (wire.ChainSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return wire.ChainSpec{}, fmt.Errorf("read chain spec: %w", err)
	}
	var spec wire.ChainSpec
	if err := specCodec(path).Unmarshal(data, &spec); err != nil {
		return wire.ChainSpec{}, fmt.Errorf("parse chain spec %s: %w", path, err)
	}
	return spec, nil
}

func writeChainSpec(spec wire.ChainSpec, path string) error {
	data, err := specCodec(path).Marshal(spec)
	if err != nil {
		return fmt.Errorf("serialize chain spec: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write chain spec: %w", err)
	}
	return nil
}
