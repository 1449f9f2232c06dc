package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/mangasrc"
	"github.com/fwojciec/mangasrc/source"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// Site is the site selected with --site.
	Site  string
	Sites *source.Registry
	Open  func(name string) (mangasrc.Source, error)

	Fetcher    mangasrc.Fetcher
	Profiles   mangasrc.ProfileRegistry
	Structured mangasrc.StructuredExtractor

	JSON        bool
	Concurrency int
}

// source opens the selected site.
func (d *Dependencies) source() (mangasrc.Source, error) {
	return d.Open(d.Site)
}

// print writes v as indented JSON when --json is set, otherwise text.
func (d *Dependencies) print(v any, text string) error {
	if d.JSON {
		enc := json.NewEncoder(d.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(d.Stdout, text)
	return err
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Site        string            `short:"s" default:"kagane" env:"MANGASRC_SITE" help:"Site to query"`
	SitesFile   string            `name:"sites" type:"path" env:"MANGASRC_SITES" help:"YAML file with site definitions layered over the presets"`
	Timeout     time.Duration     `short:"t" default:"15s" env:"MANGASRC_TIMEOUT" help:"Request timeout"`
	RPS         float64           `name:"rps" default:"3" env:"MANGASRC_RPS" help:"Requests per second per host"`
	Concurrency int               `short:"c" default:"3" env:"MANGASRC_CONCURRENCY" help:"Sites loaded at once by home --all"`
	Cloudflare  bool              `env:"MANGASRC_CLOUDFLARE" help:"Send browser-like TLS and headers to pass Cloudflare checks"`
	Headers     map[string]string `name:"header" short:"H" mapsep:"none" env:"MANGASRC_HEADERS" help:"Extra HTTP request header as KEY=VALUE, overriding site headers"`
	UserAgent   string            `name:"user-agent" env:"MANGASRC_USER_AGENT" help:"User-Agent for HTTP requests that set none"`
	Proxy       string            `env:"MANGASRC_PROXY" help:"Proxy URL for HTTP requests"`
	JSON        bool              `short:"j" name:"json" env:"MANGASRC_JSON" help:"Print JSON instead of text"`
	Verbose     bool              `short:"v" env:"MANGASRC_VERBOSE" help:"Log requests and operations to stderr"`

	List     SitesCmd    `cmd:"" name:"sites" help:"List configured sites"`
	Home     HomeCmd     `cmd:"" help:"Show the home sections of a site"`
	Details  DetailsCmd  `cmd:"" help:"Show manga details"`
	Chapters ChaptersCmd `cmd:"" help:"List the chapters of a manga"`
	Pages    PagesCmd    `cmd:"" help:"List the page images of a chapter"`
	Search   SearchCmd   `cmd:"" help:"Search a site by title"`
	Probe    ProbeCmd    `cmd:"" help:"Detect the theme and response kind of a URL"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// HomeCmd is the "home" subcommand.
type HomeCmd struct {
	All bool `short:"a" help:"Load every configured site concurrently"`
}

// DetailsCmd is the "details" subcommand.
type DetailsCmd struct {
	ID string `arg:"" help:"Manga ID"`
}

// ChaptersCmd is the "chapters" subcommand.
type ChaptersCmd struct {
	ID string `arg:"" help:"Manga ID"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	MangaID   string `arg:"" help:"Manga ID"`
	ChapterID string `arg:"" help:"Chapter ID"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Title to search for"`
	Token string `help:"Continuation token from a previous search"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL string `arg:"" help:"Page or API URL to inspect"`
}
