// Package server exposes the profile wizard over HTTP.
//
// HTTP API
//
//	POST /api/upload
//	    Multipart field "file". Stores a JPEG or PNG photo of at most 2 MiB
//	    and returns {success, filename, url}.
//
//	POST /api/profile
//	    Multipart form with every profile field plus "profilePhoto".
//	    Returns {success, id, message}; 409 when the username exists.
//
//	GET /api/username/{name}/availability
//	    Returns {success, available}. Lookup failures report unavailable.
//
//	GET /api/locations/countries
//	GET /api/locations/states/{country}
//	GET /api/locations/cities/{state}
//	    Return {success, options}. Unknown parents yield an empty list.
//
//	POST   /api/sessions
//	GET    /api/sessions/{id}
//	POST   /api/sessions/{id}/fields    {"field": "...", "value": "..."}
//	POST   /api/sessions/{id}/photo     multipart field "file"
//	POST   /api/sessions/{id}/advance
//	POST   /api/sessions/{id}/retreat
//	POST   /api/sessions/{id}/submit
//	DELETE /api/sessions/{id}
//	    Drive a server-side wizard. Every call returns {success, session}
//	    with the wizard's current view.
//
//	GET /uploads/{name}
//	    Serve a stored photo.
//
//	GET /healthz, GET /metrics
//
// Behaviour
//
//   - Responses are JSON with a "success" flag and either an "error"
//     message or the payload.
//   - Validation and upload problems are 400, conflicts 409, backend
//     failures 503 and anything else 500.
//   - Idle wizard sessions are closed after the configured timeout, and
//     POST /api/sessions answers 503 once the session limit is reached.
//   - A lightweight access log records method, path, remote, status, bytes
//     and duration for each request.
package server
