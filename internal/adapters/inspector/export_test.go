// export_test.go exports private functions for white-box testing.
package inspector

var (
	ParseCopyright   = parseCopyright
	NormalizeVersion = normalizeVersion
)
