// Package workshop fetches character media from the Steam Workshop through
// the steamcmd command-line tool (anonymous login, single item per
// invocation) and validates what landed on disk. APNG entries are converted
// to animated WebP straight away; entries that fail conversion are dropped.
// A companion listing operation enumerates already-downloaded content.
package workshop

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/animatux/animatux/internal/model"
	"github.com/animatux/animatux/internal/platform"
)

// Converter turns an APNG file into an animated WebP sibling. Satisfied by
// the convert service.
type Converter interface {
	Convert(ctx context.Context, inputPath string) (string, error)
}

// appIDRaw is the Steam application whose workshop hosts the character
// media.
//
//go:embed assets/appid
var appIDRaw string

// ContentAppID returns the Steam app identifier for workshop downloads.
func ContentAppID() string {
	return strings.TrimSpace(appIDRaw)
}

// unsupportedSuffixes lists filename suffixes of workshop entries the
// renderer cannot play, one per line.
//
//go:embed assets/unsupported
var unsupportedSuffixes string

// Tool and task constants
const (
	SteamcmdTool = "steamcmd"
	TaskIDPrefix = "workshop-"
)

// Service downloads and lists workshop content.
type Service struct {
	contentDir string
	converter  Converter
	logger     *log.Logger

	tasks      map[string]*model.WorkshopTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.WorkshopTask) // callback for UI updates
}

// NewService creates a workshop service rooted at contentDir (the Steam
// workshop content directory for AppID). converter may be nil, in which
// case APNG entries are dropped rather than converted.
func NewService(contentDir string, converter Converter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		contentDir: contentDir,
		converter:  converter,
		logger:     logger,
		tasks:      make(map[string]*model.WorkshopTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.WorkshopTask)) {
	s.onUpdate = callback
}

// Download fetches one workshop item synchronously and returns the
// validated file set. Every failure path returns an error and leaves
// nothing registered; the caller decides whether to prompt again.
func (s *Service) Download(ctx context.Context, raw string) (*model.DownloadResult, error) {
	contentID := ExtractID(raw)
	s.logger.Info("downloading workshop item", "id", contentID, "raw", raw)

	if !platform.HasTool(SteamcmdTool) {
		return nil, fmt.Errorf("steamcmd not found in PATH or common install locations")
	}
	steamcmd := platform.FindTool(SteamcmdTool)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, steamcmd,
		"+login", "anonymous",
		"+workshop_download_item", ContentAppID(), contentID,
		"+quit",
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	// Diagnostics are kept regardless of outcome; steamcmd reports most
	// failures on stdout with a zero exit code.
	if stdout.Len() > 0 {
		s.logger.Debug("steamcmd stdout", "output", strings.TrimSpace(stdout.String()))
	}
	if stderr.Len() > 0 {
		s.logger.Debug("steamcmd stderr", "output", strings.TrimSpace(stderr.String()))
	}
	if runErr != nil {
		return nil, fmt.Errorf("steamcmd failed: %w", runErr)
	}

	dest := filepath.Join(s.contentDir, contentID)
	if _, err := os.Stat(dest); err != nil {
		return nil, fmt.Errorf("download folder not found: %s", dest)
	}

	return s.collectDownloaded(ctx, dest)
}

// collectDownloaded validates and converts the files of a finished download.
func (s *Service) collectDownloaded(ctx context.Context, dir string) (*model.DownloadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read download folder %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !model.IsValidMediaFile(name) {
			continue
		}

		if model.IsAPNG(name) {
			if s.converter == nil {
				s.logger.Warn("no converter available, dropping APNG entry", "file", name)
				continue
			}
			converted, err := s.converter.Convert(ctx, filepath.Join(dir, name))
			if err != nil {
				// Unlike the file-picker path there is no degraded
				// fallback here: an unconvertible download is dropped.
				s.logger.Warn("dropping APNG entry, conversion failed", "file", name, "err", err)
				continue
			}
			files = append(files, filepath.Base(converted))
			continue
		}

		files = append(files, name)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no valid media files found in %s", dir)
	}

	return &model.DownloadResult{Dir: dir, Files: files}, nil
}

// List enumerates already-downloaded content as "<contentID>/<file>"
// identifiers, one directory level deep. The content directory is created
// when absent; any failure yields an empty list, never an error.
func (s *Service) List() []string {
	if err := platform.CreateDirectoryIfNotExists(s.contentDir); err != nil {
		s.logger.Warn("failed to create workshop content dir", "path", s.contentDir, "err", err)
		return nil
	}

	entries, err := os.ReadDir(s.contentDir)
	if err != nil {
		s.logger.Warn("failed to read workshop content dir", "path", s.contentDir, "err", err)
		return nil
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		files, err := os.ReadDir(filepath.Join(s.contentDir, entry.Name()))
		if err != nil {
			continue
		}

		for _, file := range files {
			name := file.Name()
			if !model.IsValidMediaFile(name) {
				continue
			}
			if hasUnsupportedSuffix(name) {
				continue
			}
			ids = append(ids, entry.Name()+"/"+name)
		}
	}
	return ids
}

// ContentPath resolves a "<contentID>/<file>" identifier from List back to
// an absolute path.
func (s *Service) ContentPath(id string) string {
	return filepath.Join(s.contentDir, filepath.FromSlash(id))
}

// hasUnsupportedSuffix checks a file name against the embedded denylist.
func hasUnsupportedSuffix(name string) bool {
	for _, suffix := range strings.Split(unsupportedSuffixes, "\n") {
		suffix = strings.TrimSpace(suffix)
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// StartDownload starts a background download task
func (s *Service) StartDownload(raw string) (*model.WorkshopTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	contentID := ExtractID(raw)
	for _, task := range s.tasks {
		if task.ContentID == contentID && task.Status.IsActive() {
			return nil, fmt.Errorf("download already in progress for item: %s", contentID)
		}
	}

	task := &model.WorkshopTask{
		ID:        generateTaskID(),
		RawInput:  raw,
		ContentID: contentID,
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}

	s.tasks[task.ID] = task

	go s.runTask(task)

	return task, nil
}

// StopDownload stops a running download task
func (s *Service) StopDownload(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("workshop task not found: %s", taskID)
	}

	if !task.Status.IsActive() {
		return fmt.Errorf("workshop task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	s.notifyUpdate(task)

	return nil
}

// GetTask returns a workshop task by ID
func (s *Service) GetTask(taskID string) (*model.WorkshopTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// runTask performs the download in the background
func (s *Service) runTask(task *model.WorkshopTask) {
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

	result, err := s.Download(ctx, task.RawInput)

	s.tasksMutex.Lock()
	if ctx.Err() == context.Canceled {
		task.Status = model.TaskStatusStopped
	} else if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		s.logger.Warn("workshop download failed", "id", task.ContentID, "err", err)
	} else {
		task.Status = model.TaskStatusCompleted
		task.Result = result
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.WorkshopTask) {
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
