package finlife

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"youthBanking/domain"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const successCode = "000"

type Config struct {
	BaseURL        string
	APIKey         string
	TopFinGrpNo    string
	RequestsPerSec float64
	Timeout        time.Duration
}

// Client talks to the FSS finlife open API.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

type envelope struct {
	Result Page `json:"result"`
}

// Page is one page of a product search.
type Page struct {
	ErrCode    string       `json:"err_cd"`
	ErrMessage string       `json:"err_msg"`
	TotalCount int          `json:"total_count"`
	MaxPageNo  int          `json:"max_page_no"`
	NowPageNo  int          `json:"now_page_no"`
	BaseList   []BaseItem   `json:"baseList"`
	OptionList []OptionItem `json:"optionList"`
}

type BaseItem struct {
	DisclosureMonth  string `json:"dcls_month"`
	FinCoNo          string `json:"fin_co_no"`
	KorCoNm          string `json:"kor_co_nm"`
	FinPrdtCd        string `json:"fin_prdt_cd"`
	FinPrdtNm        string `json:"fin_prdt_nm"`
	JoinWay          string `json:"join_way"`
	MaturityInterest string `json:"mtrt_int"`
	SpecialCondition string `json:"spcl_cnd"`
}

type OptionItem struct {
	FinCoNo        string   `json:"fin_co_no"`
	FinPrdtCd      string   `json:"fin_prdt_cd"`
	IntrRateType   string   `json:"intr_rate_type"`
	IntrRateTypeNm string   `json:"intr_rate_type_nm"`
	SaveTrm        string   `json:"save_trm"`
	IntrRate       *float64 `json:"intr_rate"`
	IntrRate2      *float64 `json:"intr_rate2"`
	RsrvType       string   `json:"rsrv_type,omitempty"`
	RsrvTypeNm     string   `json:"rsrv_type_nm,omitempty"`
}

func endpoint(kind domain.ProductKind) (string, error) {
	switch kind {
	case domain.ProductKindDeposit:
		return "depositProductsSearch.json", nil
	case domain.ProductKindSaving:
		return "savingProductsSearch.json", nil
	default:
		return "", fmt.Errorf("unknown product kind %q", kind)
	}
}

func (c *Client) FetchPage(ctx context.Context, kind domain.ProductKind, pageNo int) (*Page, error) {
	path, err := endpoint(kind)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("auth", c.cfg.APIKey)
	q.Set("topFinGrpNo", c.cfg.TopFinGrpNo)
	q.Set("pageNo", strconv.Itoa(pageNo))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/"+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finlife request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read finlife response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("finlife returned status %d", res.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode finlife response: %w", err)
	}

	if env.Result.ErrCode != successCode {
		return nil, fmt.Errorf("finlife error %s: %s", env.Result.ErrCode, env.Result.ErrMessage)
	}

	return &env.Result, nil
}
