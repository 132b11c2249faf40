package routes

import "net/http"

// Group nests routes under a shared path prefix. Child group prefixes
// are appended to the parent's when registered.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register installs every route in groups onto mux using "METHOD /path"
// patterns.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		group.register(mux, "")
	}
}

func (g Group) register(mux *http.ServeMux, parent string) {
	prefix := parent + g.Prefix
	for _, route := range g.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}
