// Package resolver walks the NRL catalog one question at a time.
//
// A [Resolver] keeps a stack of visited nodes and the keys advanced through
// them. Choose records a tentative answer for the current node, Advance
// commits it and Retreat undoes the most recent commit. Nodes offering a
// single option are skipped automatically when entered going forward, but
// stay visible when revealed again by Retreat, so a user can always step
// back past them.
//
//	r, err := resolver.New(catalog.FileLoader{}, catalog.RoleRoot(root, catalog.RoleSensor), catalog.RoleSensor)
//	...
//	_ = r.Choose("Guralp")
//	_ = r.Advance()
//
// The resolver never reads response payloads; a completed [Result] only
// names the chosen leaf.
package resolver
