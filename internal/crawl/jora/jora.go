package jora

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"joblists/internal/crawl/util"
	"joblists/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const DefaultBaseURL = "https://au.jora.com"

type Config struct {
	BaseURL  string
	Query    string
	Location string
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "Jora" }

// Produce scrapes up to maxPages of search results. A bad page logs and
// stops pagination; listings gathered so far are still returned.
func (s *Scraper) Produce(ctx context.Context, maxPages int) ([]*domain.Record, error) {
	var out []*domain.Record
	seen := map[string]bool{}

	for page := 1; page <= maxPages; page++ {
		recs, err := s.fetchPage(ctx, page, seen)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			log.Printf("[jora] page %d: %v", page, err)
			break
		}
		if len(recs) == 0 {
			break
		}
		out = append(out, recs...)
	}

	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, page int, seen map[string]bool) ([]*domain.Record, error) {
	q := url.Values{}
	q.Set("sp", "search")
	q.Set("q", s.cfg.Query)
	if s.cfg.Location != "" {
		q.Set("l", s.cfg.Location)
	}
	q.Set("p", strconv.Itoa(page))
	pageURL := s.cfg.BaseURL + "/j?" + q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; joblists/1.0)")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, pageURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jora get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("jora status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("jora parse: %w", err)
	}

	var recs []*domain.Record
	doc.Find("article.job-card, div.job-card").Each(func(_ int, card *goquery.Selection) {
		link := card.Find("a.job-link, h2 a").First()
		href, _ := link.Attr("href")
		jobURL := util.AbsoluteURL(s.cfg.BaseURL, href)
		if jobURL == "" || seen[jobURL] {
			return
		}
		seen[jobURL] = true

		rec := domain.NewRecord()
		rec.Set("source", s.Name())
		if t := util.CleanText(link.Text()); t != "" {
			rec.Set("title", t)
		}
		if c := util.CleanText(card.Find(".job-company, span.company").First().Text()); c != "" {
			rec.Set("company", c)
		}
		if l := util.CleanText(card.Find(".job-location, div.location").First().Text()); l != "" {
			rec.Set("location", l)
		}
		if sal := util.CleanText(card.Find(".job-salary, div.salary").First().Text()); sal != "" {
			rec.Set("salary", sal)
		}
		if d := util.CleanText(card.Find(".job-abstract, div.summary").First().Text()); d != "" {
			rec.Set("description", d)
		}
		rec.Set("job_url", jobURL)

		recs = append(recs, rec)
	})

	return recs, nil
}
