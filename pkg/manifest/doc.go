// Package manifest turns Composer extras into the ordered list of file
// actions to run for one package and one event.
//
// Extras have three levels: event key, action name, package name. The
// value under the package name is the action's argument:
//
//	"extra": {
//	    "post-package-install": {
//	        "symlink": {
//	            "acme/pkg": {"dist/lib.js": "public/js/lib.js"}
//	        }
//	    }
//	}
//
// The package's own extras are merged with the root project's, the root
// winning on conflicting keys. Maps merge recursively, lists merge by index
// and scalars are replaced. Keys keep the order they were declared in.
package manifest
