// export_test.go exports private functions for white-box testing.
package logger

// ExportErrorFormatting exports the private error formatting functions for testing.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// EntryMessages returns the messages of collected entries.
func EntryMessages(entries []errorEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.message)
	}
	return out
}

// EntryMetadata returns the metadata of collected entries.
func EntryMetadata(entries []errorEntry) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.metadata)
	}
	return out
}
