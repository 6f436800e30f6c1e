// Package magetasks provides organized build tasks for the flatconf project.
//
// This package contains all the build, test, lint, and quality tasks
// used by the Magefile.
package magetasks
