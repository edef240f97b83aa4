// Package platform contains OS integration and external tooling glue:
// filesystem helpers, reveal-in-file-manager and playlist resolution via
// github.com/ytget/ytdlp/v2.
package platform
