// Package otel is a placeholder for an OpenTelemetry observer plugin.
// It currently provides only a no-op channel.Observer and emits nothing.
package otel
