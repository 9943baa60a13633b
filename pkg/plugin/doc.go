// Package plugin runs the file actions declared in composer extras when a
// lifecycle event fires.
//
// Three events are handled:
//
//	pre-install           root extras only, for every package they name
//	post-package-install  merged package and root extras
//	post-package-update   merged package and root extras
//
// Each package is an error boundary. A failed action is reported on the IO
// sink and the next action runs; a missing symlink origin stops the rest of
// that package. No failure stops the event.
package plugin
