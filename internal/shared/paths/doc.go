// Package paths owns the drive root: where it lives and what lies inside it.
//
// # Root resolution
//
// The root is chosen once at startup by a Resolver, in order of precedence:
//
//	1. explicit override (PROTON_DRIVE_PATH, config file, --root flag)
//	2. platform discovery
//	     darwin:  ~/Library/CloudStorage/ProtonDrive-*
//	     windows: ~/Proton Drive, ~/ProtonDrive, C:\Proton Drive, ~/Documents/Proton Drive
//	     others:  ~/ProtonDrive, ~/Proton Drive, ~/Documents/ProtonDrive, /media/proton
//	3. platform default
//
// # Confinement
//
// Every caller-supplied path goes through Root.Confine before it reaches the
// filesystem. Separators of either style are accepted, segments are joined
// natively and resolved against the root, and the result must lie inside the
// root component-wise. A root of /a/b never admits /a/bb.
//
// # Usage
//
//	res := paths.NewResolver(cfg.Drive.Path).Resolve()
//	root, err := paths.NewRoot(res.Path)
//
//	full, err := root.Confine("Documents/notes.txt")
//	if errors.Is(err, paths.ErrAccessDenied) {
//	    // rejected before any filesystem call
//	}
//	display := root.Rel(full) // "Documents/notes.txt"
package paths
