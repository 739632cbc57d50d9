// Package resolver ties discovery, tie-breaking and extraction together.
//
// A Resolver locates descriptor files below a directory, picks exactly one
// descriptor kind using a tie-break Policy, and dispatches to the extractor
// registered for that kind in a Registry:
//
//	reg := resolver.NewRegistry(extract.Options{Logger: logger})
//	r := resolver.New(resolver.Options{Registry: reg, Policy: resolver.PolicyModTime})
//	res, err := r.Resolve(ctx, ".")
package resolver
