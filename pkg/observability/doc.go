/*
Package observability bridges perch lifecycle hooks to Prometheus.

It provides a Metrics bundle whose Hooks method returns a
domain.LifecycleHooks that feeds the collectors, so a renderer can be
instrumented with a single option:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	r := perch.New(perch.WithLifecycleHooks(metrics.Hooks()))
*/
package observability
