// internal/datasets/hub.go
package datasets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mwiater/mteb/internal/logging"
	"github.com/mwiater/mteb/internal/util"
)

const (
	// DefaultHubURL is the public HuggingFace datasets-server.
	DefaultHubURL = "https://datasets-server.huggingface.co"
	// MaxHubPageSize is the largest page the /rows endpoint serves.
	MaxHubPageSize = 100

	maxErrorBody = 200
)

// HubError reports a non-200 response from the datasets-server.
type HubError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HubError) Error() string {
	body := util.Truncate(strings.TrimSpace(e.Body), maxErrorBody)
	return fmt.Sprintf("hub request %s: status %d: %s", e.URL, e.StatusCode, body)
}

// HubSource pages rows out of the datasets-server /rows endpoint.
type HubSource struct {
	BaseURL  string
	Token    string
	PageSize int
	Client   *http.Client
	Limiter  *rate.Limiter
}

// NewHubSource builds a HubSource. A non-positive rps disables rate limiting.
func NewHubSource(baseURL, token string, pageSize int, rps float64, timeout time.Duration) *HubSource {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultHubURL
	}
	if pageSize <= 0 || pageSize > MaxHubPageSize {
		pageSize = MaxHubPageSize
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &HubSource{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Token:    token,
		PageSize: pageSize,
		Client:   &http.Client{Timeout: timeout},
		Limiter:  limiter,
	}
}

type hubRowsResponse struct {
	Rows []struct {
		RowIdx int             `json:"row_idx"`
		Row    json.RawMessage `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

func (s *HubSource) Load(ctx context.Context, req Request) (*Table, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.Revision != "" {
		logging.LogDebug("hub rows API serves the default ref; revision %s of %s is not pinned", req.Revision, req.Path)
	}

	var rows []Row
	offset := 0
	for {
		page, err := s.fetchPage(ctx, req, offset)
		if err != nil {
			return nil, err
		}
		for _, r := range page.Rows {
			row, err := decodeRow(r.Row)
			if err != nil {
				return nil, fmt.Errorf("decode %s row %d: %w", req, r.RowIdx, err)
			}
			rows = append(rows, row)
		}
		offset += len(page.Rows)
		logging.LogDataset("get", "hub", req.Path, req.Subset, req.Split, map[string]int{"offset": offset, "total": page.NumRowsTotal})
		if len(page.Rows) == 0 || offset >= page.NumRowsTotal {
			break
		}
	}
	return FromRows(rows), nil
}

func (s *HubSource) fetchPage(ctx context.Context, req Request, offset int) (*hubRowsResponse, error) {
	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("dataset", req.Path)
	q.Set("config", req.subsetName())
	q.Set("split", req.Split)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("length", strconv.Itoa(s.PageSize))
	endpoint := s.BaseURL + "/rows?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if s.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.Token)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HubError{StatusCode: resp.StatusCode, URL: endpoint, Body: string(body)}
	}

	var page hubRowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode %s page at offset %d: %w", req, offset, err)
	}
	return &page, nil
}
