package httpinfra

import "net/http"

// DefaultHeaders are sent with every request to the plugin management API
func DefaultHeaders(version string) map[string]string {
	return map[string]string{
		"User-Agent": "braindrive-plugin-dev/" + version,
		"Accept":     "application/json",
	}
}

// MergeHeaders returns a new map with extra layered over base
func MergeHeaders(base map[string]string, extra map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// ApplyHeaders sets every header on req, replacing existing values
func ApplyHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}
