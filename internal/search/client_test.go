package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"financebot/internal/config"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New(config.SearchConfig{BaseURL: srv.URL})
	return c, srv
}

func TestSearchExtractsProductLinks(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Chrome") {
			t.Errorf("user agent = %q, expected a browser string", ua)
		}
		if kw := r.URL.Query().Get("keyword"); kw != "fone bluetooth" {
			t.Errorf("keyword = %q", kw)
		}
		fmt.Fprint(w, `<html><body>
			<a href="/about">Sobre</a>
			<a href="/product/123/456">Fone A</a>
			<a href="https://cdn.example.com/product/789">Fone B</a>
			<a href="/cart">Carrinho</a>
		</body></html>`)
	})
	defer srv.Close()

	result, err := c.Search(context.Background(), "fone bluetooth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback() {
		t.Fatal("expected extracted links, got fallback")
	}
	if len(result.Links) != 2 {
		t.Fatalf("links = %v", result.Links)
	}
	if result.Links[0] != srv.URL+"/product/123/456" {
		t.Fatalf("relative link not resolved: %q", result.Links[0])
	}
	if result.Links[1] != "https://cdn.example.com/product/789" {
		t.Fatalf("absolute link rewritten: %q", result.Links[1])
	}
}

func TestSearchCapsAtThreeLinks(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		var b strings.Builder
		b.WriteString("<html><body>")
		for i := 0; i < 10; i++ {
			fmt.Fprintf(&b, `<a href="/product/%d/0">Item %d</a>`, i, i)
		}
		b.WriteString("</body></html>")
		fmt.Fprint(w, b.String())
	})
	defer srv.Close()

	result, err := c.Search(context.Background(), "item")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Links) != 3 {
		t.Fatalf("got %d links, expected 3", len(result.Links))
	}
}

func TestSearchFallbackOnEmptyPage(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><div id="app"></div></body></html>`)
	})
	defer srv.Close()

	result, err := c.Search(context.Background(), "cadeira gamer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Fallback() {
		t.Fatal("expected fallback on a page without product links")
	}
	if result.Term != "cadeira gamer" {
		t.Fatalf("term = %q", result.Term)
	}
	if want := srv.URL + "/search?keyword=cadeira%20gamer"; result.SearchURL != want {
		t.Fatalf("search URL = %q, expected %q", result.SearchURL, want)
	}
}

func TestSearchHTTPError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "blocked", http.StatusTooManyRequests)
	})
	defer srv.Close()

	if _, err := c.Search(context.Background(), "tv"); err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestBuildURLEncodesSpacesAsPercent20(t *testing.T) {
	c := New(config.SearchConfig{BaseURL: "https://shopee.com.br"})
	got := c.buildURL("Xiaomi 14 & capa")
	want := "https://shopee.com.br/search?keyword=Xiaomi%2014%20%26%20capa"
	if got != want {
		t.Fatalf("buildURL = %q, expected %q", got, want)
	}
}
