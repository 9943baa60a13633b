// Package filesystem provides the filesystem abstraction pkgactions runs
// its actions against.
//
// FS has two implementations: NewOS talks to the host filesystem directly
// and NewAferoFS adapts any afero.Fs, which is how tests run copy and remove
// actions against an in-memory tree. Copy, Exists and WithUmask are helpers
// built on top of FS.
package filesystem
