package routes

import "net/http"

// Route is a single endpoint definition. Method and Pattern combine into a
// ServeMux pattern like "GET /reports/{id}" when the route is registered.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}
