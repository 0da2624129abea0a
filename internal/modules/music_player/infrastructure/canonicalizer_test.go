package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveFinalURL_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/hop", http.StatusFound)
	})
	mux.HandleFunc("/hop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	canonicalizer := NewRedirectCanonicalizer(server.Client())

	got := canonicalizer.ResolveFinalURL(testContext(t), server.URL+"/short")
	if want := server.URL + "/final"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// Some hosts reject HEAD; resolution retries with GET.
func TestResolveFinalURL_FallsBackToGet(t *testing.T) {
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	canonicalizer := NewRedirectCanonicalizer(server.Client())

	got := canonicalizer.ResolveFinalURL(testContext(t), server.URL)
	if got != server.URL {
		t.Errorf("expected %q, got %q", server.URL, got)
	}
	if len(methods) != 2 || methods[0] != http.MethodHead || methods[1] != http.MethodGet {
		t.Errorf("expected HEAD then GET, got %v", methods)
	}
}

func TestResolveFinalURL_ErrorReturnsInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	canonicalizer := NewRedirectCanonicalizer(server.Client())

	input := server.URL + "/missing"
	if got := canonicalizer.ResolveFinalURL(testContext(t), input); got != input {
		t.Errorf("expected input back, got %q", got)
	}
}

func TestResolveFinalURL_UnreachableHostReturnsInput(t *testing.T) {
	canonicalizer := NewRedirectCanonicalizer(nil)

	input := "http://127.0.0.1:1/nothing"
	if got := canonicalizer.ResolveFinalURL(testContext(t), input); got != input {
		t.Errorf("expected input back, got %q", got)
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
