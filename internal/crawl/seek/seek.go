package seek

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"joblists/internal/crawl/util"
	"joblists/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const DefaultBaseURL = "https://www.seek.com.au"

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

func (s *Scraper) Name() string { return "Seek" }

func (s *Scraper) Produce(ctx context.Context, maxPages int) ([]*domain.Record, error) {
	var out []*domain.Record
	seen := map[string]bool{}

	for page := 1; page <= maxPages; page++ {
		recs, err := s.fetchPage(ctx, page, seen)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			log.Printf("[seek] page %d: %v", page, err)
			break
		}
		if len(recs) == 0 {
			break
		}
		out = append(out, recs...)
	}

	return out, nil
}

// Seek search URLs look like /<query-slug>-jobs?page=N.
func (s *Scraper) pageURL(page int) string {
	slug := strings.ToLower(strings.Join(strings.Fields(s.cfg.Query), "-"))
	path := "/" + slug + "-jobs"

	q := url.Values{}
	if s.cfg.Location != "" {
		q.Set("where", s.cfg.Location)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if enc := q.Encode(); enc != "" {
		return s.cfg.BaseURL + path + "?" + enc
	}
	return s.cfg.BaseURL + path
}

func (s *Scraper) fetchPage(ctx context.Context, page int, seen map[string]bool) ([]*domain.Record, error) {
	pageURL := s.pageURL(page)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; joblists/1.0)")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, pageURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seek get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("seek status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("seek parse: %w", err)
	}

	var recs []*domain.Record
	doc.Find(`article[data-card-type="JobCard"], article[data-automation="normalJob"]`).Each(func(_ int, card *goquery.Selection) {
		link := card.Find(`a[data-automation="jobTitle"]`).First()
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
		if c := util.CleanText(card.Find(`a[data-automation="jobCompany"]`).First().Text()); c != "" {
			rec.Set("company", c)
		}
		if l := util.CleanText(card.Find(`[data-automation="jobLocation"], [data-automation="jobCardLocation"]`).First().Text()); l != "" {
			rec.Set("location", l)
		}
		if sal := util.CleanText(card.Find(`[data-automation="jobSalary"]`).First().Text()); sal != "" {
			rec.Set("salary", sal)
		}
		if d := util.CleanText(card.Find(`[data-automation="jobShortDescription"]`).First().Text()); d != "" {
			rec.Set("description", d)
		}
		rec.Set("job_url", jobURL)

		recs = append(recs, rec)
	})

	return recs, nil
}
