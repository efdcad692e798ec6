package helpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/adactin-qa/hotelsuite/internal/browser"
	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/internal/finalize"
	"github.com/adactin-qa/hotelsuite/internal/report"
)

// BrowserHelper provides browser setup and teardown for tests
type BrowserHelper struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Session    *browser.PlaywrightSession
	Env        *config.Environment
	ResultsDir string
	t          *testing.T
}

// NewBrowserHelper creates a new browser helper instance
func NewBrowserHelper(t *testing.T, env *config.Environment) *BrowserHelper {
	return &BrowserHelper{
		Env:        env,
		ResultsDir: config.Get().ResultsDir,
		t:          t,
	}
}

// Setup initializes the browser and creates a new page
func (b *BrowserHelper) Setup() error {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("could not start playwright: %w", err)
	}
	b.Playwright = pw

	br, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.Env.Headless),
		SlowMo:   playwright.Float(float64(b.Env.SlowMo)),
	})
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}
	b.Browser = br

	ctx, err := br.NewContext(playwright.BrowserNewContextOptions{
		Viewport:          &playwright.Size{Width: 1280, Height: 720},
		IgnoreHttpsErrors: playwright.Bool(true),
		RecordVideo: &playwright.RecordVideo{
			Dir: filepath.Join(b.ResultsDir, "videos"),
		},
	})
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	b.Context = ctx

	page, err := ctx.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	b.Page = page
	page.SetDefaultTimeout(float64(b.Env.Timeout.Milliseconds()))

	b.Session = browser.NewPlaywrightSession(page)
	return nil
}

// Screenshot captures the page when the test failed and attaches it to sink
func (b *BrowserHelper) Screenshot(sink report.Sink) {
	if !b.t.Failed() || !b.Env.Screenshots || b.Page == nil {
		return
	}
	path := filepath.Join(b.ResultsDir, "screenshots",
		fmt.Sprintf("%s_%d.png", finalize.SanitizeName(b.t.Name()), time.Now().Unix()))
	if _, err := b.Page.Screenshot(playwright.PageScreenshotOptions{Path: playwright.String(path)}); err != nil {
		b.t.Logf("screenshot failed: %v", err)
		return
	}
	attachScreenshot(b.t.Logf, sink, path)
}

func attachScreenshot(logf func(format string, args ...any), sink report.Sink, path string) {
	if sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sink.Attach(ctx, report.Attachment{Name: "Screenshot", Path: path, ContentType: "image/png"}); err != nil {
		logf("screenshot attach failed: %v", err)
	}
}

// TearDown closes the browser and cleans up resources
func (b *BrowserHelper) TearDown() {
	if b.Session != nil {
		b.Session.Close()
	}
	if b.Page != nil {
		b.Page.Close()
	}
	if b.Context != nil {
		b.Context.Close()
	}
	if b.Browser != nil {
		b.Browser.Close()
	}
	if b.Playwright != nil {
		b.Playwright.Stop()
	}
}
