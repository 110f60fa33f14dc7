/*
Package observability turns traversal lifecycle hooks into Prometheus metrics.

A Collector registers its metrics once and hands out traversal.Hooks; every traversal created
with those hooks reports runs, delivered steps, branches and run durations, labelled by the
traversal name.
*/
package observability
