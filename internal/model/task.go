package model

import "time"

// ConvertTask represents a single APNG to animated WebP conversion
type ConvertTask struct {
	ID         string
	InputPath  string
	OutputPath string
	Status     TaskStatus
	LastError  string // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// WorkshopTask represents a single workshop content download
type WorkshopTask struct {
	ID         string
	RawInput   string // user-supplied identifier or URL
	ContentID  string // extracted numeric content ID
	Status     TaskStatus
	LastError  string
	Result     *DownloadResult // set when Status is Completed
	StartedAt  time.Time
	FinishedAt time.Time
}

// DownloadResult describes a finished workshop download: the destination
// directory and the validated, post-conversion file names found inside it.
type DownloadResult struct {
	Dir   string
	Files []string
}

// FirstFile returns the absolute path of the first validated file, or ""
// when the result is empty.
func (r *DownloadResult) FirstFile() string {
	if r == nil || len(r.Files) == 0 {
		return ""
	}
	return r.Dir + "/" + r.Files[0]
}
