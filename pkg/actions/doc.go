// Package actions runs the file actions a manifest declares.
//
// There are four actions:
//
//   - copy: {source: destination}. The source is relative to the package
//     install root, the destination to the project root. Existing
//     destinations are left alone.
//   - remove: [path]. Paths are relative to the project root and removed
//     recursively.
//   - create: {path: "0755"}. Directories are created with exactly the
//     given octal mode, the process umask being lifted for the call.
//   - symlink: {origin: link | [links]}. The origin must exist under the
//     package install root; each link is replaced and points to it with a
//     relative path.
//
// Action names are parsed into the closed ActionType set at the boundary;
// the Dispatcher maps each type to its Handler through a static table.
package actions
