// Package paths provides centralized path handling for pkgactions.
//
// It covers three concerns:
//
//   - Project layout: locating the project root (the directory holding
//     composer.json), the vendor directory and each package's install root.
//   - Manifest path rules: manifest entries must be relative; IsAbsolute
//     recognises POSIX, Windows drive and URL style absolute paths on every
//     platform.
//   - Relative path computation: Relative turns two absolute paths into the
//     link text a symlink needs so that it keeps resolving after the project
//     tree is moved or copied.
//
// # Environment Variables
//
//   - PKGACTIONS_PROJECT_ROOT: explicit project root
//   - COMPOSER: name of the manifest file (default: composer.json)
//   - COMPOSER_VENDOR_DIR: vendor directory, relative to the project root
//
// # Usage
//
//	p, err := paths.New("", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pkgDir := p.PackageDir("acme/pkg")      // /srv/app/vendor/acme/pkg
//	link, err := paths.Relative(
//	    "/srv/app/public/js/lib.js",
//	    "/srv/app/vendor/acme/pkg/dist/lib.js",
//	)                                       // ../../vendor/acme/pkg/dist/lib.js
package paths
