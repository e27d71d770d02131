package convert

import (
	"context"

	"github.com/animatux/animatux/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, inputPath string) (string, error)
	SetUpdateCallback(func(*model.ConvertTask))
	StartConvert(inputPath string) (*model.ConvertTask, error)
	StopConvert(taskID string) error
	GetTask(taskID string) (*model.ConvertTask, bool)
}
