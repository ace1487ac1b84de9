/*
Package observability turns conversation lifecycle hooks into structured
logs and Prometheus metrics.

Hooks from several sources are merged with Combine:

	hooks := observability.Combine(
		observability.LoggingHooks(logger),
		metrics.Hooks(),
	)
	a := agent.New(job, rec, synth, agent.WithLifecycleHooks(hooks))
*/
package observability
