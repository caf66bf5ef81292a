// Package engine evaluates facet scene scripts. It wraps zygomys in a
// sandboxed environment and produces the list of shape specs a script
// places.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/facet/pkg/config"
	"github.com/chazu/facet/pkg/scene"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. Each call to Evaluate creates a
// fresh sandboxed environment. When calls overlap only the most recent one
// delivers its result.
type Engine struct {
	cfg  config.Config
	gens generations
}

// NewEngine creates an Engine using the built-in configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(config.Default())
}

// NewEngineWithConfig creates an Engine whose shape builtins take their
// default sizes and colors from cfg.
func NewEngineWithConfig(cfg config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Evaluate runs a scene script and returns the shapes it placed, in order.
// It is EvaluateContext with a background context.
func (e *Engine) Evaluate(source string) ([]scene.Spec, []EvalError, error) {
	return e.EvaluateContext(context.Background(), source)
}

// EvaluateContext runs a scene script, giving up when ctx ends or after
// EvalTimeout.
//
// Return semantics:
//   - On success: returns specs + nil errors + nil error
//   - On parse/eval failure: returns nil specs + eval errors + nil error
//   - On fatal failure (timeout, cancel, panic, superseded): returns nil + nil + error
func (e *Engine) EvaluateContext(ctx context.Context, source string) ([]scene.Spec, []EvalError, error) {
	ctx, cancel := context.WithTimeout(ctx, EvalTimeout)
	defer cancel()

	gen := e.gens.next()
	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("engine: panic during evaluation: %v", r)}
			}
		}()

		specs, evalErrs, err := e.evaluate(source)
		ch <- evalResult{specs: specs, errors: evalErrs, err: err}
	}()

	return await(ctx, ch, gen, &e.gens)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) ([]scene.Spec, []EvalError, error) {
	// Empty source is a valid program that places nothing.
	if strings.TrimSpace(source) == "" {
		return []scene.Spec{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	rec := &recorder{cfg: e.cfg}
	registerBuiltins(env, rec)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if rec.specs == nil {
		return []scene.Spec{}, nil, nil
	}
	return rec.specs, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting a line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
