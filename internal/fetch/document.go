package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Fetcher retrieves a URL and returns a parsed, queryable document. The two
// implementations are equivalent from the caller's point of view: Rendered
// lets a browser engine load and normalize the page (including client-side
// rendering), Static parses the raw markup without script execution.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Render mode names accepted by New.
const (
	ModeAuto    = "auto"
	ModeBrowser = "browser"
	ModeStatic  = "static"
)

// New selects a Fetcher for the given render mode. "auto" probes for a
// browser binary at startup and falls back to the static path when none is
// found; "browser" and "static" force one path.
func New(mode, userAgent string, timeout time.Duration) (Fetcher, error) {
	client := &Client{UserAgent: userAgent, PerRequestTimeout: timeout}
	static := &Static{Client: client}
	rendered := &Rendered{UserAgent: userAgent, Timeout: timeout}
	switch mode {
	case ModeStatic:
		return static, nil
	case ModeBrowser:
		if !BrowserAvailable() {
			return nil, errors.New("render mode \"browser\" requested but no browser binary found")
		}
		return rendered, nil
	case ModeAuto, "":
		if BrowserAvailable() {
			return &Fallback{Rendered: rendered, Static: static}, nil
		}
		log.Debug().Msg("no browser binary found; using static fetch")
		return static, nil
	default:
		return nil, fmt.Errorf("unknown render mode %q", mode)
	}
}

// browserBinaries mirrors the executables chromedp itself looks for.
var browserBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"chrome",
}

// BrowserAvailable reports whether a Chrome-compatible binary is on PATH.
func BrowserAvailable() bool {
	for _, name := range browserBinaries {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

// Static fetches raw markup over HTTP and parses it into a document. No
// script execution; the markup is decoded per the response charset first.
type Static struct {
	Client *Client
}

func (s *Static) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	body, contentType, err := s.Client.Get(ctx, url)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("decode charset: %w", err)}
	}
	node, err := html.Parse(r)
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("parse html: %w", err)}
	}
	return goquery.NewDocumentFromNode(node), nil
}

// Rendered loads the page in a headless browser and parses the serialized
// DOM, so markup produced by client-side rendering is visible too.
type Rendered struct {
	UserAgent string
	// Timeout bounds the whole navigate-and-serialize step. Zero means no
	// bound beyond ctx.
	Timeout time.Duration
	// ExecPath forces a specific browser binary. Empty lets chromedp probe.
	ExecPath string
}

func (r *Rendered) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if r.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.UserAgent))
	}
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var markup string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &markup),
	)
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("render: %w", err)}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("parse html: %w", err)}
	}
	return doc, nil
}

// Fallback tries the rendered path first and falls back to the static path
// when it fails. Both failing yields one Error joining both causes.
type Fallback struct {
	Rendered Fetcher
	Static   Fetcher
}

func (f *Fallback) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	doc, rerr := f.Rendered.Fetch(ctx, url)
	if rerr == nil {
		return doc, nil
	}
	log.Debug().Err(rerr).Str("url", url).Msg("rendered fetch failed; falling back to static")
	doc, serr := f.Static.Fetch(ctx, url)
	if serr == nil {
		return doc, nil
	}
	return nil, &Error{URL: url, Err: errors.Join(rerr, serr)}
}
