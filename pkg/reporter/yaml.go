package reporter

import (
	"bufio"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLRenderer writes a Document as YAML.
type YAMLRenderer struct {
	opts Options
}

// NewYAMLRenderer creates a new YAML renderer.
func NewYAMLRenderer(opts Options) *YAMLRenderer {
	return &YAMLRenderer{opts: opts}
}

// Render implements Renderer.
func (r *YAMLRenderer) Render(_ context.Context, doc *Document) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := yaml.NewEncoder(bw)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close YAML encoder: %w", err)
	}

	return nil
}
