package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"mndotbids/internal/config"
)

// Client enumerates the contract ids posted on the letting results
// page for one year. The page is a WebForms app: selecting a year and
// a page size are form postbacks carrying the page's hidden state
// fields, so each step re-reads those from the previous response.
type Client struct {
	listURL    string
	httpClient *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		listURL:    cfg.AbstractListURL,
		httpClient: &http.Client{Timeout: time.Duration(cfg.AbstractTimeoutMs) * time.Millisecond},
	}
}

func (c *Client) ContractIDs(ctx context.Context, year int) ([]int, error) {
	doc, err := c.get(ctx)
	if err != nil {
		return nil, err
	}

	// Submit the letting-year form.
	form := formState(doc)
	form.Set("ctl00$MainContent$drpLettingYear", strconv.Itoa(year))
	form.Set("ctl00$MainContent$btnByLettingYear", "Go")
	doc, err = c.post(ctx, form)
	if err != nil {
		return nil, err
	}

	// Switch records-per-page to all; the dropdown change is a postback.
	form = formState(doc)
	form.Set("ctl00$MainContent$drpLettingYear", strconv.Itoa(year))
	form.Set("ctl00$MainContent$drpPage", "20000")
	form.Set("__EVENTTARGET", "ctl00$MainContent$drpPage")
	doc, err = c.post(ctx, form)
	if err != nil {
		return nil, err
	}

	ids := ExtractContractIDs(doc)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no contract ids found for year %d", year)
	}
	return ids, nil
}

func (c *Client) get(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, form url.Values) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.listURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*goquery.Document, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("letting results page: status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// formState collects the page's hidden form fields (__VIEWSTATE and
// friends) that every postback must echo back.
func formState(doc *goquery.Document) url.Values {
	form := url.Values{}
	doc.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok || name == "" {
			return
		}
		value, _ := input.Attr("value")
		form.Set(name, value)
	})
	return form
}

// ExtractContractIDs pulls the contract ids out of the abstract
// download links of the results table.
func ExtractContractIDs(doc *goquery.Document) []int {
	seen := map[int]struct{}{}
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.Contains(href, "ContractId") {
			return
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		id, err := strconv.Atoi(parsed.Query().Get("ContractId"))
		if err != nil {
			return
		}
		seen[id] = struct{}{}
	})

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
