// Package convert turns an animated PNG into an animated WebP by shelling
// out to external tools: ffmpeg demuxes the source into a numbered frame
// sequence in a scoped temp directory, img2webp reassembles the frames into
// the output file. When img2webp is not installed at all, a single-step
// ffmpeg libwebp transcode is attempted instead. A single failed attempt is
// final; the input file is never touched.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/animatux/animatux/internal/model"
	"github.com/animatux/animatux/internal/platform"
)

// External tool and I/O constants
const (
	FFmpegTool   = "ffmpeg"
	Img2WebpTool = "img2webp"

	// FramePattern is the ffmpeg output template for demuxed frames. The
	// 5-digit zero padding keeps lexicographic order identical to numeric
	// order for up to 99999 frames, which bounds the supported animation
	// length.
	FramePattern = "f%05d.png"

	OutputExtension = ".webp"
	TaskIDPrefix    = "convert-"
)

// Service handles APNG to animated WebP conversions
type Service struct {
	tasks      map[string]*model.ConvertTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.ConvertTask) // callback for UI updates
	logger     *log.Logger
}

// NewService creates a new conversion service
func NewService(logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		tasks:  make(map[string]*model.ConvertTask),
		logger: logger,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConvertTask)) {
	s.onUpdate = callback
}

// OutputPath returns the conversion destination for an input file: the
// sibling path with the extension replaced by .webp.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + OutputExtension
}

// Convert performs a synchronous conversion and returns the output path.
// The original input is left untouched on every failure path so the caller
// can fall back to it.
func (s *Service) Convert(ctx context.Context, inputPath string) (string, error) {
	outputPath := OutputPath(inputPath)
	s.logger.Info("converting APNG to animated WebP", "input", inputPath, "output", outputPath)

	if !platform.HasTool(Img2WebpTool) && platform.HasTool(FFmpegTool) {
		return s.convertSingleStep(ctx, inputPath, outputPath)
	}

	if err := s.convertViaFrames(ctx, inputPath, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// convertViaFrames is the primary path: demux to still frames, reassemble.
func (s *Service) convertViaFrames(ctx context.Context, inputPath, outputPath string) error {
	ffmpeg := platform.FindTool(FFmpegTool)
	img2webp := platform.FindTool(Img2WebpTool)

	framesDir, err := os.MkdirTemp("", "animatux-frames-")
	if err != nil {
		return fmt.Errorf("failed to create frames directory: %w", err)
	}
	defer os.RemoveAll(framesDir)

	var stderr bytes.Buffer
	demux := exec.CommandContext(ctx, ffmpeg, "-y", "-i", inputPath, filepath.Join(framesDir, FramePattern))
	demux.Stderr = &stderr
	if err := demux.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	frames, err := filepath.Glob(filepath.Join(framesDir, "*.png"))
	if err != nil {
		return fmt.Errorf("failed to list frames: %w", err)
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames produced by ffmpeg for %s", inputPath)
	}
	sort.Strings(frames)
	s.logger.Debug("demuxed frames", "count", len(frames))

	args := append(frames, "-o", outputPath)
	stderr.Reset()
	assemble := exec.CommandContext(ctx, img2webp, args...)
	assemble.Stderr = &stderr
	if err := assemble.Run(); err != nil {
		return fmt.Errorf("img2webp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// convertSingleStep transcodes directly with ffmpeg's libwebp encoder.
func (s *Service) convertSingleStep(ctx context.Context, inputPath, outputPath string) (string, error) {
	ffmpeg := platform.FindTool(FFmpegTool)
	s.logger.Info("img2webp not installed, using single-step ffmpeg transcode")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ffmpeg,
		"-y",
		"-i", inputPath,
		"-c:v", "libwebp",
		"-lossless", "0",
		"-loop", "0",
		"-fps_mode", "vfr",
		outputPath,
	)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg transcode failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return outputPath, nil
}

// StartConvert starts a background conversion task
func (s *Service) StartConvert(inputPath string) (*model.ConvertTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Check if a conversion is already in progress for this file
	for _, task := range s.tasks {
		if task.InputPath == inputPath && task.Status.IsActive() {
			return nil, fmt.Errorf("conversion already in progress for file: %s", inputPath)
		}
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	task := &model.ConvertTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: OutputPath(inputPath),
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}

	s.tasks[task.ID] = task

	go s.runTask(task)

	return task, nil
}

// StopConvert stops a running conversion task
func (s *Service) StopConvert(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("conversion task not found: %s", taskID)
	}

	if !task.Status.IsActive() {
		return fmt.Errorf("conversion task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	s.notifyUpdate(task)

	return nil
}

// GetTask returns a conversion task by ID
func (s *Service) GetTask(taskID string) (*model.ConvertTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// runTask performs the conversion in the background
func (s *Service) runTask(task *model.ConvertTask) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitor for stop requests
	go func() {
		for {
			s.tasksMutex.RLock()
			status := task.Status
			s.tasksMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
			if status.IsFinished() {
				return
			}
			time.Sleep(100 * time.Millisecond)
		}
	}()

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusRunning
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	_, err := s.Convert(ctx, task.InputPath)

	s.tasksMutex.Lock()
	if ctx.Err() == context.Canceled {
		task.Status = model.TaskStatusStopped
		os.Remove(task.OutputPath)
	} else if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		s.logger.Warn("conversion failed", "input", task.InputPath, "err", err)
	} else {
		task.Status = model.TaskStatusCompleted
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConvertTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
