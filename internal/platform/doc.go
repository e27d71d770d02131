package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, config/workshop path resolution, and lookup of the
// external binaries (ffmpeg, img2webp, steamcmd) the pipelines shell out to.
