package model

import "net/http"

// RequestDescriptor describes one outbound call. It is built per call and
// not retained.
type RequestDescriptor struct {
	Method string
	Path   string
	// Body is marshaled to JSON when non-nil.
	Body any
	// Headers override the defaults (content type, request ID, bearer token).
	Headers map[string]string
}

// Get builds a GET descriptor.
func Get(path string) RequestDescriptor {
	return RequestDescriptor{Method: http.MethodGet, Path: path}
}

// Post builds a POST descriptor with a JSON body.
func Post(path string, body any) RequestDescriptor {
	return RequestDescriptor{Method: http.MethodPost, Path: path, Body: body}
}

// Put builds a PUT descriptor with a JSON body.
func Put(path string, body any) RequestDescriptor {
	return RequestDescriptor{Method: http.MethodPut, Path: path, Body: body}
}

