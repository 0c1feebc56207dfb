// Package compose sequences encoders into pipelines. A Chain applies
// encoders in order and reverses them back to front; a Shuffle scatters the
// input across a palette of encoders one character at a time, framing each
// unit so decode needs no external state.
package compose

import (
	"fmt"

	"github.com/harlowgray/transmute/internal/encoder"
)

// Step is one chain link: an encoder id and the parameter it runs with.
type Step struct {
	ID    string
	Param encoder.Param
}

// StepResult records one link's output for introspection.
type StepResult struct {
	ID     string
	Output string
}

// Result is the outcome of running a chain. On decode, Failed marks a run
// that stopped early; Output then holds the partial text produced up to
// (not including) FailedStep, and StepErr says why that step refused.
type Result struct {
	Output     string
	Steps      []StepResult
	Failed     bool
	FailedStep string
	StepErr    error
}

// Chain is an ordered encoder pipeline resolved against a registry.
type Chain struct {
	registry *encoder.Registry
	steps    []Step
}

// NewChain validates every step id against the registry.
func NewChain(registry *encoder.Registry, steps []Step) (*Chain, error) {
	if registry == nil {
		return nil, fmt.Errorf("chain needs a registry")
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("chain needs at least one step")
	}
	for i, step := range steps {
		if _, ok := registry.Get(step.ID); !ok {
			return nil, fmt.Errorf("step %d: unknown encoder %q", i, step.ID)
		}
	}
	return &Chain{registry: registry, steps: steps}, nil
}

// Steps returns a copy of the chain's links.
func (c *Chain) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// Reversible reports whether every link can decode.
func (c *Chain) Reversible() bool {
	for _, step := range c.steps {
		enc, _ := c.registry.Get(step.ID)
		if !enc.Reversible() {
			return false
		}
	}
	return true
}

// Encode runs the links front to back, recording each intermediate output.
func (c *Chain) Encode(text string) (Result, error) {
	result := Result{Steps: make([]StepResult, 0, len(c.steps))}

	current := text
	for _, step := range c.steps {
		enc, _ := c.registry.Get(step.ID)
		out, err := enc.Encode(current, step.Param)
		if err != nil {
			return Result{}, fmt.Errorf("step %s: %w", step.ID, err)
		}
		current = out
		result.Steps = append(result.Steps, StepResult{ID: step.ID, Output: out})
	}

	result.Output = current
	return result, nil
}

// Decode runs the links back to front. A link that cannot decode, or whose
// decode fails, stops the run: the result carries the partial output and is
// flagged rather than guessing at the remaining links.
func (c *Chain) Decode(text string) Result {
	result := Result{Steps: make([]StepResult, 0, len(c.steps))}

	current := text
	for i := len(c.steps) - 1; i >= 0; i-- {
		step := c.steps[i]
		enc, _ := c.registry.Get(step.ID)

		if !enc.Reversible() {
			result.Output = current
			result.Failed = true
			result.FailedStep = step.ID
			result.StepErr = encoder.ErrNotReversible
			return result
		}

		out, err := enc.Decode(current, step.Param)
		if err != nil {
			result.Output = current
			result.Failed = true
			result.FailedStep = step.ID
			result.StepErr = err
			return result
		}
		current = out
		result.Steps = append(result.Steps, StepResult{ID: step.ID, Output: out})
	}

	result.Output = current
	return result
}
