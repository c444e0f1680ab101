package jora

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixturePage = `<html><body>
<article class="job-card">
  <h2 class="job-title"><a class="job-link" href="/job/12345">Chef - Sponsorship Available</a></h2>
  <span class="job-company">Harbour Bistro</span>
  <div class="job-location">Sydney NSW</div>
  <div class="job-salary">$70,000 - $80,000</div>
  <div class="job-abstract">Busy waterfront kitchen, 482 visa sponsorship on offer.</div>
</article>
<article class="job-card">
  <h2 class="job-title"><a class="job-link" href="/job/67890">Farm Hand</a></h2>
  <span class="job-company">Riverland Orchards</span>
  <div class="job-location">Mildura VIC</div>
</article>
<article class="job-card">
  <h2 class="job-title"><a class="job-link" href="/job/12345">Chef - Sponsorship Available</a></h2>
</article>
</body></html>`

func TestProduceParsesListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/j", r.URL.Path)
		require.Equal(t, "sponsorship available", r.URL.Query().Get("q"))
		if r.URL.Query().Get("p") != "1" {
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		fmt.Fprint(w, fixturePage)
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, Query: "sponsorship available"}, nil)

	recs, err := s.Produce(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recs, 2) // duplicate href collapsed

	first := recs[0]
	require.Equal(t, "Jora", first.Get("source"))
	require.Equal(t, "Chef - Sponsorship Available", first.Get("title"))
	require.Equal(t, "Harbour Bistro", first.Get("company"))
	require.Equal(t, "Sydney NSW", first.Get("location"))
	require.Equal(t, "$70,000 - $80,000", first.Get("salary"))
	require.Equal(t, srv.URL+"/job/12345", first.Get("job_url"))

	// salary absent on the second card: left unset for the merger
	require.False(t, recs[1].Has("salary"))
}

func TestProduceFirstPageErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, Query: "q"}, nil)

	_, err := s.Produce(context.Background(), 1)
	require.Error(t, err)
}

func TestProduceLaterPageErrorKeepsPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("p") == "1" {
			fmt.Fprint(w, fixturePage)
			return
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, Query: "q"}, nil)

	recs, err := s.Produce(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, recs, 2)
}
