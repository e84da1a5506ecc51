package facultysearch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPFetcher(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q; want test-agent", ua)
		}
		io.WriteString(w, "hello")
	})
	mux.HandleFunc("/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, "test-agent")
	b, err := f.Fetch(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("Fetch ok error: %v", err)
	}
	if !bytes.Equal(b, []byte("hello")) {
		t.Fatalf("Fetch body=%q; want %q", string(b), "hello")
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/fail"); err == nil {
		t.Fatalf("Fetch should error on non-200")
	}
}

func TestFetchDocumentWrapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, _, err := fetchDocument(context.Background(), NewHTTPFetcher(time.Second, ""), srv.URL+"/missing")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("fetchDocument err=%v; want *FetchError", err)
	}
	if fe.URL != srv.URL+"/missing" {
		t.Fatalf("FetchError.URL = %q", fe.URL)
	}
}
