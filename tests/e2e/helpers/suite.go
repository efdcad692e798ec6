package helpers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adactin-qa/hotelsuite/internal/bookingdata"
	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/internal/hooks"
	"github.com/adactin-qa/hotelsuite/internal/metrics"
	"github.com/adactin-qa/hotelsuite/internal/pages"
	"github.com/adactin-qa/hotelsuite/internal/report"
)

// Registry collects the capture metrics of a whole run
var Registry = prometheus.NewRegistry()

var collector = metrics.NewCollector(Registry)

// Suite is everything a hotel test needs: the page objects, the capture hooks and the data set
type Suite struct {
	*hooks.Hooks
	Browser  *BrowserHelper
	Env      *config.Environment
	Data     *bookingdata.Data
	Validate *pages.Validations

	Home   *pages.HomePage
	Search *pages.SearchHotelPage
	Select *pages.SelectHotelPage
}

// Start launches a browser for t, starts API capture and opens the base URL.
// The test is skipped when no browser environment is available.
func Start(t *testing.T, prefix string) *Suite {
	t.Helper()
	if os.Getenv("SKIP_BROWSER") == "true" {
		t.Skip("Skipping browser test")
	}
	env, err := config.GetEnvironment()
	if errors.Is(err, config.ErrBaseURLMissing) {
		t.Skipf("Skipping browser test: %v", err)
	}
	data, err := bookingdata.Resolve()
	if err != nil {
		t.Fatalf("could not load booking data: %v", err)
	}

	b := NewBrowserHelper(t, env)
	t.Cleanup(b.TearDown)
	if err := b.Setup(); err != nil {
		t.Skipf("Could not start Playwright: %v", err)
	}

	sink, err := report.NewDirSink(filepath.Join(b.ResultsDir, "allure-results"), t.Name())
	if err != nil {
		t.Fatalf("could not create report sink: %v", err)
	}

	h := hooks.Setup(t, b.Session, hooks.Options{
		BaseURL: env.BaseURL,
		Prefix:  prefix,
		Sink:    sink,
		Metrics: collector,
	})
	// Registered last so it runs before the report is finished
	t.Cleanup(func() { b.Screenshot(sink) })

	actions := pages.NewActions(h.Log)
	return &Suite{
		Hooks:    h,
		Browser:  b,
		Env:      env,
		Data:     data,
		Validate: pages.NewValidations(h.Log, float64(env.Timeout.Milliseconds())),
		Home:     pages.NewHomePage(b.Page, actions),
		Search:   pages.NewSearchHotelPage(b.Page, actions),
		Select:   pages.NewSelectHotelPage(b.Page, actions),
	}
}

// Login signs in with the configured credentials and waits for the search form
func (s *Suite) Login(t *testing.T) {
	t.Helper()
	if !s.Env.HasCredentials() {
		t.Skip("APP_USERNAME and APP_PASSWORD are not configured")
	}
	s.Check(s.Validate.Visible(s.Home.AppLogo))
	s.Check(s.Home.Login(s.Env.Username, s.Env.Password))
	s.Check(s.Validate.Visible(s.Search.Heading))
}

// SearchHotels fills and submits the search form with the suite data
func (s *Suite) SearchHotels(t *testing.T) {
	t.Helper()
	s.Check(s.Search.FillSearch(s.Data.SearchPage))
	s.Check(s.Search.ClickSearch())
}
