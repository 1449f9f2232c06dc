package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mangasrc"
	"github.com/fwojciec/mangasrc/gjson"
	"github.com/fwojciec/mangasrc/goquery"
	"github.com/fwojciec/mangasrc/htmltomarkdown"
	srchttp "github.com/fwojciec/mangasrc/http"
	"github.com/fwojciec/mangasrc/rod"
	srcslog "github.com/fwojciec/mangasrc/slog"
	"github.com/fwojciec/mangasrc/source"
	srcyaml "github.com/fwojciec/mangasrc/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// OpenSource builds the source serving a site. Set before calling Run()
	// to replace the network-backed sources.
	OpenSource func(site *mangasrc.Site) (mangasrc.Source, error)

	// Fetcher is used by the probe command. Set before calling Run() to
	// replace the HTTP fetcher.
	Fetcher mangasrc.Fetcher

	cli     *CLI
	proxy   *url.URL
	logger  *slog.Logger
	browser *rod.Fetcher
	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases fetchers opened while running.
func (m *Main) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mangasrc"),
		kong.Description("Browse manga catalog sites from the command line"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mangasrc --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	m.cli = cli

	if cli.Proxy != "" {
		u, err := url.Parse(cli.Proxy)
		if err != nil || u.Host == "" {
			return mangasrc.Errorf(mangasrc.EINVALID, "invalid proxy URL %q", cli.Proxy)
		}
		m.proxy = u
	}

	m.logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		m.logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	sites, err := m.loadSites(cli.SitesFile)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Site = cli.Site
	deps.Sites = sites
	deps.JSON = cli.JSON
	deps.Concurrency = cli.Concurrency
	deps.Open = func(name string) (mangasrc.Source, error) {
		site, err := sites.Site(name)
		if err != nil {
			return nil, err
		}
		return m.openSource(site)
	}
	deps.Fetcher = m.probeFetcher()
	deps.Profiles = srcslog.NewLoggingRegistry(goquery.NewDefaultRegistry(), goquery.NewDetector(), m.logger)
	deps.Structured = gjson.NewExtractor()

	return kongCtx.Run(deps)
}

// loadSites builds the site registry from the presets and an optional
// YAML file layered over them.
func (m *Main) loadSites(path string) (*source.Registry, error) {
	sites := source.NewDefaultRegistry()
	if path == "" {
		return sites, nil
	}
	extra, err := srcyaml.LoadSitesFile(path, source.Presets(), goquery.NewDefaultRegistry())
	if err != nil {
		return nil, err
	}
	for _, s := range extra {
		if err := sites.Add(s); err != nil {
			return nil, err
		}
	}
	return sites, nil
}

func (m *Main) openSource(site *mangasrc.Site) (mangasrc.Source, error) {
	if m.OpenSource != nil {
		return m.OpenSource(site)
	}

	fetcher, err := m.siteFetcher(site)
	if err != nil {
		return nil, err
	}
	adapter := &source.Adapter{
		Site:       site,
		Fetcher:    fetcher,
		Structured: gjson.NewExtractor(),
		Markup:     goquery.NewExtractor(goquery.WithConverter(htmltomarkdown.NewConverter())),
		Embedded:   goquery.NewEmbeddedExtractor(),
		Logger:     m.logger,
	}
	if !m.cli.Verbose {
		return adapter, nil
	}
	return srcslog.NewLoggingSource(adapter, site.Name, m.logger), nil
}

// siteFetcher returns the fetcher for a site: a shared headless browser
// for rendered sites, otherwise an HTTP fetcher tuned by the site's limits.
func (m *Main) siteFetcher(site *mangasrc.Site) (mangasrc.Fetcher, error) {
	var fetcher mangasrc.Fetcher
	if site.Render {
		if m.browser == nil {
			b, err := rod.NewFetcher(rod.WithFetchTimeout(m.timeout(site)))
			if err != nil {
				return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
			}
			m.browser = b
			m.closers = append(m.closers, b)
		}
		fetcher = m.browser
	} else {
		fetcher = m.httpFetcher(site)
	}
	if m.cli.Verbose {
		fetcher = srcslog.NewLoggingFetcher(fetcher, m.logger)
	}
	return fetcher, nil
}

func (m *Main) httpFetcher(site *mangasrc.Site) *srchttp.Fetcher {
	rps := m.cli.RPS
	if site != nil && site.RateLimit > 0 {
		rps = site.RateLimit
	}
	opts := []srchttp.Option{
		srchttp.WithTimeout(m.timeout(site)),
		srchttp.WithRateLimit(rps),
	}
	if m.cli.UserAgent != "" {
		opts = append(opts, srchttp.WithUserAgent(m.cli.UserAgent))
	}
	if len(m.cli.Headers) > 0 {
		opts = append(opts, srchttp.WithInterceptor(srchttp.HeaderInterceptor(m.cli.Headers)))
	}
	if m.proxy != nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.Proxy = http.ProxyURL(m.proxy)
		opts = append(opts, srchttp.WithTransport(t))
	}
	if m.cli.Cloudflare {
		opts = append(opts, srchttp.WithCloudflareBypass())
	}
	f := srchttp.NewFetcher(opts...)
	m.closers = append(m.closers, f)
	return f
}

func (m *Main) probeFetcher() mangasrc.Fetcher {
	if m.Fetcher != nil {
		return m.Fetcher
	}
	var f mangasrc.Fetcher = m.httpFetcher(nil)
	if m.cli.Verbose {
		f = srcslog.NewLoggingFetcher(f, m.logger)
	}
	return f
}

func (m *Main) timeout(site *mangasrc.Site) time.Duration {
	if site != nil && site.Timeout > 0 {
		return site.Timeout
	}
	return m.cli.Timeout
}
