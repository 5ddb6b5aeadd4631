package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/packager/internal/ui/style"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

// metadataer describes an error carrying structured key/value metadata.
type metadataer interface {
	Metadata() map[string]any
}

// batched describes a stage failure that carries several independent findings.
type batched interface {
	Kind() error
	Findings() []error
}

type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries flattens the cause chain of err into entries.
// Findings of a batched error are returned separately, in order.
// Metadata attached by a message-less wrapper is credited to the next entry.
func collectErrorEntries(err error) ([]errorEntry, []error) {
	var entries []errorEntry
	var findings []error
	var pending map[string]any

	add := func(e errorEntry) {
		if pending != nil {
			if e.metadata == nil {
				e.metadata = make(map[string]any, len(pending))
			}
			maps.Copy(e.metadata, pending)
			pending = nil
		}
		entries = append(entries, e)
	}

	var walk func(error)
	walk = func(current error) {
		for current != nil {
			if b, ok := current.(batched); ok {
				findings = append(findings, b.Findings()...)
				current = b.Kind()
				continue
			}

			if multi, ok := current.(interface{ Unwrap() []error }); ok {
				for _, member := range multi.Unwrap() {
					walk(member)
				}
				return
			}

			m, ok := current.(messager)
			if !ok {
				add(errorEntry{message: current.Error()})
				return
			}

			var meta map[string]any
			if md, ok := current.(metadataer); ok && len(md.Metadata()) > 0 {
				meta = md.Metadata()
			}
			if msg := m.Message(); msg != "" {
				add(errorEntry{message: msg, metadata: meta})
			} else if meta != nil {
				if pending == nil {
					pending = make(map[string]any, len(meta))
				}
				maps.Copy(pending, meta)
			}
			current = errors.Unwrap(current)
		}
	}
	walk(err)

	return entries, findings
}

// formatErrorEntries renders the chain as "Error:" followed by "Caused by:" arrows
// and, if present, one bullet per finding.
func formatErrorEntries(entries []errorEntry, findings []error) string {
	var lines []string

	for i, e := range entries {
		msgLines := strings.Split(e.message+formatMetadata(e.metadata), "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    "+style.Arrow+" "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}

	if len(findings) > 0 {
		lines = append(lines, "", fmt.Sprintf("  %d finding(s):", len(findings)))
		for _, f := range findings {
			lines = append(lines, "    "+style.Bullet+" "+f.Error())
		}
	}

	return strings.Join(lines, "\n")
}

func formatMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	parts := make([]string, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
