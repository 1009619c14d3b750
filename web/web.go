// Package web holds the HTTP middleware used to serve a site.
package web

import (
	"io/fs"
	"net/http"
	"strings"
	"time"
)

var gmtZone *time.Location

func init() {
	var err error
	gmtZone, err = time.LoadLocation("GMT")
	if err != nil {
		gmtZone = time.UTC
	}
}

// HeaderHandler returns an http.Handler that adds the given headers to the response.
func HeaderHandler(h http.Handler, headers map[string]string) http.Handler {
	if len(headers) == 0 {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		h.ServeHTTP(w, r)
	})
}

// PageExpirer looks up the expiry a page asks for in its front matter.
type PageExpirer interface {
	Expires(urlPath string) (time.Duration, bool)
}

// ExpiresHandler adds the Expires header, choosing expires for rendered pages
// and staticExpires for everything else. A page's own expiry from pages, which
// may be nil, overrides expires. A zero duration sends no header.
func ExpiresHandler(h http.Handler, expires, staticExpires time.Duration, pages PageExpirer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expiry := staticExpires
		if isPage(r.URL.Path) {
			expiry = expires
			if pages != nil {
				if d, ok := pages.Expires(r.URL.Path); ok {
					expiry = d
				}
			}
		}
		if expiry != 0 {
			w.Header().Set("Expires", time.Now().Add(expiry).In(gmtZone).Format(time.RFC1123))
		}
		h.ServeHTTP(w, r)
	})
}

// isPage reports whether the path is served from a template.
func isPage(p string) bool {
	return strings.HasSuffix(p, "/") || strings.HasSuffix(p, ".html") || p == "/sitemap.txt"
}

// ErrorHandler replaces 404 and 500 responses with /404.html or /500.html from
// fsys when those files exist.
func ErrorHandler(h http.Handler, fsys fs.FS) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(&errorWriter{ResponseWriter: w, fsys: fsys}, r)
	})
}

// errorWriter swaps the body of error responses for a page from the file system.
type errorWriter struct {
	http.ResponseWriter
	fsys     fs.FS
	replaced bool  // the body has been written and further writes are dropped
	err      error // result of writing the replacement body
}

func (w *errorWriter) Write(b []byte) (int, error) {
	if w.replaced {
		return len(b), w.err
	}
	return w.ResponseWriter.Write(b)
}

func (w *errorWriter) WriteHeader(statusCode int) {
	var file string
	switch statusCode {
	case http.StatusNotFound:
		file = "404.html"
	case http.StatusInternalServerError:
		file = "500.html"
	default:
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	b, err := fs.ReadFile(w.fsys, file)
	if err != nil {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Del("X-Content-Type-Options")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
	w.replaced = true
	_, w.err = w.ResponseWriter.Write(b)
}
