package mux

import (
	"context"

	"github.com/ytget/tubefx/internal/model"
)

// Assembler defines the interface for the muxing service.
type Assembler interface {
	Assemble(ctx context.Context, req model.AssemblyRequest) error
	AssembleJob(ctx context.Context, job *model.DownloadJob, outputPath string) error
	Probe(ctx context.Context) (string, error)
}
