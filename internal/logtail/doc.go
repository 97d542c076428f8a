// Package logtail reads the application log back for the in-console log view.
//
// # Reading Log Files
//
// Read uses a ring buffer to extract the last maxLines from a file in one
// sequential pass, using O(maxLines) memory regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// A missing file is not an error; the console starts before anything has been
// logged.
//
// # Formatting
//
// The log file holds zap JSON entries. Parse decodes one line into an Entry
// and Format renders it for display:
//
//	{"level":"info","ts":"2025-10-08T21:01:05.000Z","logger":"mirror","msg":"saved","key":"k"}
//	→ 2025-10-08 21:01:05 INFO [mirror] – saved key=k
//
// Extra fields are appended as key=value pairs in sorted order. FormatLines
// applies a minimum level and passes through any line that is not JSON, such
// as a panic trace written by the runtime.
package logtail
