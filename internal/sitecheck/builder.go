package sitecheck

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// BuildOutput is what one builder invocation produced.
type BuildOutput struct {
	Stderr   string
	ExitCode int
}

// Builder renders a documentation site from src into out. The error is reserved
// for failures to run the builder at all; a failing build is a non-zero ExitCode.
type Builder interface {
	Build(ctx context.Context, src, out string) (BuildOutput, error)
}

// ExecBuilder runs an external sphinx-build compatible generator.
type ExecBuilder struct {
	Binary string
	Format string
	// Stdout receives the builder's standard output; discarded when nil.
	Stdout io.Writer
}

// NewExecBuilder creates a builder for binary producing format output.
func NewExecBuilder(binary, format string) *ExecBuilder {
	return &ExecBuilder{Binary: binary, Format: format}
}

// Args returns the builder arguments: warnings as errors, keep going past
// errors, the output format, then source and output directories.
func (b *ExecBuilder) Args(src, out string) []string {
	return []string{"-W", "--keep-going", "-b", b.Format, src, out}
}

// Build runs the builder to completion and captures its standard error.
func (b *ExecBuilder) Build(ctx context.Context, src, out string) (BuildOutput, error) {
	cmd := exec.CommandContext(ctx, b.Binary, b.Args(src, out)...) //nolint:gosec // builder comes from local configuration
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = b.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = io.Discard
	}

	err := cmd.Run()
	res := BuildOutput{Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}
