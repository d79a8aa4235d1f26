package middleware

import (
	"net/http"
	"runtime/debug"

	"event-storefront/internal/logging"

	"go.uber.org/zap"
)

// ErrorHandlingMiddleware recovers panics and answers 500
func ErrorHandlingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logging.FromContext(r.Context()).Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)

				if IsHTMXRequest(r) {
					WriteHTMXError(w, http.StatusInternalServerError, "Something went wrong!")
					return
				}
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXRequest(r) {
			WriteHTMXError(w, http.StatusNotFound, "The page you're looking for doesn't exist.")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(notFoundPage))
	})
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXRequest(r) {
			WriteHTMXError(w, http.StatusMethodNotAllowed, "Method not allowed for this endpoint.")
			return
		}
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Page Not Found</title>
	<link href="/static/css/output.css" rel="stylesheet">
</head>
<body class="bg-gray-50">
	<div class="min-h-screen flex items-center justify-center">
		<div class="text-center">
			<h1 class="text-6xl font-bold text-gray-900 mb-4">404</h1>
			<h2 class="text-2xl font-semibold text-gray-700 mb-4">Page Not Found</h2>
			<p class="text-gray-600 mb-8">The page you're looking for doesn't exist.</p>
			<a href="/" class="bg-blue-600 hover:bg-blue-700 text-white px-6 py-3 rounded-lg font-medium">Back to events</a>
		</div>
	</div>
</body>
</html>`
