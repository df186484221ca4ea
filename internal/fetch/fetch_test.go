package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "cssvars-test" {
			t.Errorf("unexpected user agent %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "cssvars-test", PerRequestTimeout: 2 * time.Second}
	body, ct, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct == "" || len(body) == 0 {
		t.Fatalf("expected content type and body")
	}
}

func TestGet_NoRetryOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(502)
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second}
	_, _, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error on 502")
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}

func TestGet_RejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second}
	_, _, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error for non-HTML content type")
	}
}

func TestGet_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	_, _, err := c.Get(context.Background(), "file:///etc/passwd")
	if err == nil {
		t.Fatalf("expected error for file scheme")
	}
}

func TestStaticFetch_Queryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><table><tr><td>cell</td></tr></table></body></html>"))
	}))
	defer srv.Close()

	s := &Static{Client: &Client{PerRequestTimeout: 2 * time.Second}}
	doc, err := s.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Find("table td").Text(); got != "cell" {
		t.Fatalf("document not queryable, got %q", got)
	}
}

func TestStaticFetch_ErrorType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer srv.Close()

	s := &Static{Client: &Client{PerRequestTimeout: 2 * time.Second}}
	_, err := s.Fetch(context.Background(), srv.URL)
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fetch.Error, got %T: %v", err, err)
	}
	if fe.URL != srv.URL || fe.Unwrap() == nil {
		t.Fatalf("error missing url or cause: %+v", fe)
	}
}

type stubFetcher struct {
	doc *goquery.Document
	err error
}

func (s *stubFetcher) Fetch(context.Context, string) (*goquery.Document, error) {
	return s.doc, s.err
}

func TestFallback_StaticWhenRenderedFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>static</p></body></html>"))
	}))
	defer srv.Close()

	f := &Fallback{
		Rendered: &stubFetcher{err: &Error{URL: srv.URL, Err: errors.New("no browser")}},
		Static:   &Static{Client: &Client{PerRequestTimeout: 2 * time.Second}},
	}
	doc, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Find("p").Text() != "static" {
		t.Fatalf("expected static document")
	}
}

func TestFallback_BothFail(t *testing.T) {
	boom := &stubFetcher{err: &Error{URL: "u", Err: errors.New("boom")}}
	f := &Fallback{Rendered: boom, Static: boom}
	_, err := f.Fetch(context.Background(), "u")
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fetch.Error, got %T", err)
	}
}

func TestNew_UnknownMode(t *testing.T) {
	if _, err := New("quantum", "", 0); err == nil {
		t.Fatalf("expected error for unknown render mode")
	}
}

func TestNew_Static(t *testing.T) {
	f, err := New(ModeStatic, "ua", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.(*Static); !ok {
		t.Fatalf("expected *Static, got %T", f)
	}
}
