package rod

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// instance is one running Chrome process.
type instance struct {
	rod      *rod.Browser
	pid      int
	stop     func() error
	inflight int
}

// browser owns a headless Chrome process and replaces it after maxPages
// pages, since Chrome's memory baseline grows with every page rendered.
// A replaced instance keeps running until its in-flight pages are released.
// browser is safe for concurrent use.
type browser struct {
	mu       sync.Mutex
	start    func() (*instance, error)
	current  *instance
	retired  []*instance
	pages    int
	maxPages int
	closed   bool
}

func newBrowser(maxPages int, start func() (*instance, error)) (*browser, error) {
	in, err := start()
	if err != nil {
		return nil, err
	}
	return &browser{start: start, current: in, maxPages: maxPages}, nil
}

// acquire returns the current instance, recycling it first when it has
// served maxPages pages. Every successful acquire must be paired with a
// release. It fails once the browser is closed.
func (b *browser) acquire() (*instance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, errClosed
	}
	if b.maxPages > 0 && b.pages >= b.maxPages {
		b.recycle()
	}
	b.pages++
	b.current.inflight++
	return b.current, nil
}

// release marks a page of in as done and stops in when it was replaced
// and this was its last page.
func (b *browser) release(in *instance) {
	b.mu.Lock()
	defer b.mu.Unlock()
	in.inflight--
	if b.closed || in == b.current || in.inflight > 0 {
		return
	}
	b.retired = slices.DeleteFunc(b.retired, func(r *instance) bool { return r == in })
	_ = in.stop()
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	errs := []error{b.current.stop()}
	for _, in := range b.retired {
		errs = append(errs, in.stop())
	}
	b.current, b.retired = nil, nil
	return errors.Join(errs...)
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return 0
	}
	return b.current.pid
}

// recycle swaps in a fresh instance. The old one is kept if the start
// fails. Must be called with mu held.
func (b *browser) recycle() {
	next, err := b.start()
	if err != nil {
		return
	}
	old := b.current
	b.current = next
	b.pages = 0
	if old.inflight > 0 {
		b.retired = append(b.retired, old)
		return
	}
	_ = old.stop()
}

// launch starts Chrome with flags that keep background pages rendering.
func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	r := rod.New().ControlURL(u)
	if err := r.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{
		rod: r,
		pid: l.PID(),
		stop: func() error {
			err := r.Close()
			l.Kill()
			return err
		},
	}, nil
}
