// Package rules provides the built-in lint rules for gotslint.
//
// # Rules
//
//   - no-null-keyword: disallows the null keyword literal outside type syntax
//   - no-var-keyword: disallows var declarations (fix: let)
//   - triple-equals: requires === and !== (fix)
//   - no-debugger: disallows debugger statements (fix: remove)
//   - no-console: disallows calls to console methods
//   - semicolon: enforces or forbids statement-ending semicolons (fix)
//   - quotemark: enforces a consistent string quote style (fix)
//   - no-trailing-whitespace: disallows trailing whitespace (fix)
//   - no-consecutive-blank-lines: limits runs of blank lines (fix)
//   - eofline: requires a newline at the end of the file (fix)
//
// # Options
//
// Rule options are read from the rule's "options" map in configuration.
// Keys use kebab-case, for example:
//
//	rules:
//	  quotemark:
//	    options:
//	      quote: single
//	      avoid-escape: true
//
// Each rule reports its defaults through DefaultOptions, which the init
// command uses to write a starter configuration.
package rules
