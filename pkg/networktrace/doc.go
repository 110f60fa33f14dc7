/*
Package networktrace walks electrical networks terminal by terminal.

A Path is one directed hop between two terminals. Hops alternate between INTERNAL hops through a
piece of equipment (or along the interior of a line segment) and EXTERNAL hops across a
connectivity node. A Step wraps a Path with running counters and a caller payload.

StepPathProvider enumerates the legal next hops of a path for one scenario, selected by an
operators.NetworkStateOperators value. NetworkTrace plugs the provider into the generic engine of
package traversal, keyed by HopKey, so that a directed hop is queued at most once per run.

	trace := networktrace.New[struct{}](operators.Normal)
	trace.AddCondition(conditions.Downstream[struct{}](operators.Normal))
	trace.AddStepAction(func(step networktrace.Step[struct{}], ctx *traversal.StepContext) {
		fmt.Println(step.Path)
	})
	trace.AddStartTerminal(head, struct{}{})
	trace.Run(ctx)
*/
package networktrace
