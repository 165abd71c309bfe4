package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFix         = "fix"
	FieldDryRun      = "dry_run"
	FieldJobs        = "jobs"
	FieldConcurrency = "concurrency"
	FieldLanguage    = "language"

	// Engine fields.
	FieldRule      = "rule"
	FieldSpan      = "span"
	FieldReason    = "reason"
	FieldDirective = "directive"
	FieldPass      = "pass"
	FieldMaxPasses = "max_passes"
	FieldEdits     = "edits"
	FieldConflicts = "conflicts"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"
	FieldCacheHits        = "cache_hits"

	// Version fields.
	FieldVersion   = "version"
	FieldCommit    = "commit"
	FieldBuilt     = "built"
	FieldGo        = "go"
	FieldLanguages = "languages"
	FieldRules     = "rules"

	// Rule metadata fields.
	FieldName        = "name"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
