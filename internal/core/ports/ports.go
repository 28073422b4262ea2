// Package ports defines the capabilities the build pipeline depends on.
//
// Every external system touched by a build is reached through one of these
// interfaces so that the orchestrator can be exercised with substitutes.
package ports
