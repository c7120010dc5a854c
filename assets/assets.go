// Package assets holds build time identity of the service.
package assets

const (
	ServiceName    = "appkeeper"
	ServiceVersion = "1.0.0"
)
