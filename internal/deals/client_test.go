package deals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"financebot/internal/config"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New(config.DealsConfig{BaseURL: srv.URL, APIKey: "test-key", Limit: 5})
	return c, srv
}

func TestTop(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/deals" {
			t.Errorf("path = %q", got)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "test-key" {
			t.Errorf("api_key = %q", q.Get("api_key"))
		}
		if q.Get("limit") != "5" {
			t.Errorf("limit = %q", q.Get("limit"))
		}
		w.Write([]byte(`{"deals":[
			{"deal":{"title":"SSD 1TB","price":59.99,"discount_percentage":40,"provider":"Amazon","url":"https://example.com/ssd"}},
			{"deal":{"price":"19.99"}}
		]}`))
	})
	defer srv.Close()

	listings, err := c.Top(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("got %d listings", len(listings))
	}

	first := listings[0]
	if first.Title != "SSD 1TB" || first.Price != "59.99" || first.DiscountPct != 40 ||
		first.Provider != "Amazon" || first.URL != "https://example.com/ssd" {
		t.Fatalf("first listing = %+v", first)
	}

	// Absent fields are replaced with placeholders.
	second := listings[1]
	if second.Title != "Sem Título" {
		t.Fatalf("default title = %q", second.Title)
	}
	if second.Price != "19.99" {
		t.Fatalf("price = %q", second.Price)
	}
	if second.Provider != "Loja Desconhecida" || second.URL != "#" || second.DiscountPct != 0 {
		t.Fatalf("second listing = %+v", second)
	}
}

func TestTopEmpty(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"deals":[]}`))
	})
	defer srv.Close()

	listings, err := c.Top(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("got %d listings, expected none", len(listings))
	}
}

func TestTopHTTPError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	defer srv.Close()

	if _, err := c.Top(context.Background()); err == nil {
		t.Fatal("expected error on 403 response")
	}
}

func TestTopBadJSON(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"deals": not json`))
	})
	defer srv.Close()

	if _, err := c.Top(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
