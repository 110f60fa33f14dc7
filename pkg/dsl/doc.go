/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing networks.

It allows developers to describe small networks using a type-safe, fluent builder pattern
instead of wiring terminals and connectivity nodes by hand. This is particularly useful for unit
testing traces and for generating synthetic networks.

Terminal references are written "id" (terminal 1) or "id:seq".

Example usage:

	b := dsl.New()

	b.Source("src", phases.PhaseCodeABC).
		Then(b.Breaker("cb", phases.PhaseCodeABC).Open()).
		Then(b.Line("acls", phases.PhaseCodeABC).Length(120)).
		Then(b.Junction("j", 2, phases.PhaseCodeABC))

	b.Clamp("acls", "clamp", 40)
	b.Feeder("fdr", "src")

	network, err := b.Build()
*/
package dsl
