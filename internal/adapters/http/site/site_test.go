package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestSiteHandler(t *testing.T) {
	Convey("Given the embedded frontend", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		Convey("Then the index page should be served in place", func() {
			w := get(mux, IndexPath)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Location"), ShouldBeEmpty)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "Mergington High School")
			So(w.Body.String(), ShouldContainSubstring, "signup-form")
		})

		Convey("And the script and stylesheet should be served", func() {
			js := get(mux, "/static/app.js")
			So(js.Code, ShouldEqual, http.StatusOK)
			So(js.Body.String(), ShouldContainSubstring, "/activities")

			css := get(mux, "/static/styles.css")
			So(css.Code, ShouldEqual, http.StatusOK)
			So(css.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
		})

		Convey("And the directory should serve the index", func() {
			w := get(mux, Prefix)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "<title>")
		})

		Convey("And missing assets should 404", func() {
			So(get(mux, "/static/missing.js").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And paths outside the prefix should not be handled", func() {
			So(get(mux, "/index.html").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSiteHandlerWithDir(t *testing.T) {
	Convey("Given a static directory on disk", t, func() {
		dir := t.TempDir()
		So(os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>from disk</p>"), 0o600), ShouldBeNil)
		mux := http.NewServeMux()
		Register(context.Background(), mux, WithDir(dir))

		Convey("Then files should come from the directory", func() {
			w := get(mux, IndexPath)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "from disk")
			So(get(mux, "/static/app.js").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a static directory without an index page", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux, WithDir(t.TempDir()))

		Convey("Then the index path should 404 rather than redirect", func() {
			w := get(mux, IndexPath)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Header().Get("Location"), ShouldBeEmpty)
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then registering should panic", func() {
			So(func() { Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
