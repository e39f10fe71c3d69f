// Package types defines the stage catalog entities, the Storage persistence
// port, configuration, and the standard errors shared by every PuzzleQuest
// package.
package types
