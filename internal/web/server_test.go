package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/clock"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
	"github.com/Zachkp/portfolio/internal/typewriter"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *fakeMailer) Send(name, email, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, name+"|"+email+"|"+message)
	return nil
}

type testServer struct {
	*Server
	sched  *clock.Manual
	mailer *fakeMailer
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = "test"
	p, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	ts := &testServer{sched: clock.NewManual(), mailer: &fakeMailer{}}
	opts = append([]Option{WithScheduler(ts.sched), WithMailer(ts.mailer)}, opts...)
	s, err := New(cfg, p, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.views.CloseAll)
	ts.Server = s
	return ts
}

func (ts *testServer) do(method, target string, form url.Values, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	ts.Router().ServeHTTP(rec, req)
	return rec
}

// openView loads the home page and returns the id of the view it opened.
func (ts *testServer) openView(t *testing.T) string {
	t.Helper()
	before := ts.views.Len()
	rec := ts.do(http.MethodGet, "/", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /: %d", rec.Code)
	}
	if ts.views.Len() != before+1 {
		t.Fatalf("expected a new view")
	}
	body := rec.Body.String()
	const marker = `data-view="`
	i := strings.Index(body, marker)
	if i < 0 {
		t.Fatalf("page has no view id")
	}
	rest := body[i+len(marker):]
	return rest[:strings.Index(rest, `"`)]
}

// measurements describes a 6000px page with sections every 1000px.
func measurements(y int, skip ...nav.SectionID) url.Values {
	v := url.Values{}
	v.Set("y", strconv.Itoa(y))
	v.Set("vh", "800")
	v.Set("dh", "6000")
	for i, id := range nav.Sections() {
		skipped := false
		for _, s := range skip {
			if s == id {
				skipped = true
			}
		}
		if !skipped {
			v.Set("offset_"+string(id), strconv.Itoa(i*1000))
		}
	}
	return v
}

func activeIn(body string) string {
	const marker = `data-active="`
	i := strings.Index(body, marker)
	if i < 0 {
		return "<missing>"
	}
	rest := body[i+len(marker):]
	return rest[:strings.Index(rest, `"`)]
}

func TestIndexRendersContent(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Featured Creations",
		"<strong>e-commerce</strong>",
		`id="journey"`,
		`id="contact"`,
		"hover:bg-orange-500/20",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if got := activeIn(body); got != "" {
		t.Errorf("fresh view should have no active section, got %q", got)
	}
}

func TestIndexReportsSettledScroll(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/", nil, nil)
	body := rec.Body.String()
	i := strings.Index(body, `id="scroll-settle"`)
	if i < 0 {
		t.Fatalf("page has no trailing scroll reporter")
	}
	settle := body[i:]
	settle = settle[:strings.Index(settle, "</div>")]
	for _, want := range []string{
		"/scroll",
		"scroll from:window delay:150ms",
		"resize from:window delay:300ms",
		`hx-target="#site-header"`,
	} {
		if !strings.Contains(settle, want) {
			t.Errorf("scroll-settle missing %q", want)
		}
	}

	// A fast flick posts a mid-page y, then the settled report lands at the bottom.
	id := ts.openView(t)
	rec = ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(2300), nil)
	if got := activeIn(rec.Body.String()); got != "projects" {
		t.Fatalf("mid-scroll active %q", got)
	}
	rec = ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(5200), nil)
	if got := activeIn(rec.Body.String()); got != "contact" {
		t.Fatalf("settled active %q, want contact", got)
	}
}

func TestIndexPacesTypingLikeTypewriter(t *testing.T) {
	ts := newTestServer(t)
	body := ts.do(http.MethodGet, "/", nil, nil).Body.String()
	quote := ts.portfolio.Quote.Text
	ms := typewriter.Duration(quote, 0).Milliseconds()
	want := "--type-ms: " + strconv.FormatInt(ms, 10) + "ms"
	if !strings.Contains(body, want) {
		t.Errorf("page missing %q", want)
	}
	steps := "--type-steps: " + strconv.Itoa(len([]rune(quote)))
	if !strings.Contains(body, steps) {
		t.Errorf("page missing %q", steps)
	}
}

func TestScrollMountsTrackerAndHighlights(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)

	v, _ := ts.views.Get(id)
	if v.tracker.Mounted() {
		t.Fatalf("tracker must not mount before measurements arrive")
	}

	tests := []struct {
		y    int
		want string
	}{
		{0, "hero"},
		{2300, "projects"},
		{3900, "journey"},
		{5200, "contact"},
		{700, "about"},
	}
	for _, tt := range tests {
		rec := ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(tt.y), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("y=%d: status %d", tt.y, rec.Code)
		}
		if got := activeIn(rec.Body.String()); got != tt.want {
			t.Errorf("y=%d: active %q, want %q", tt.y, got, tt.want)
		}
	}
	if !v.tracker.Mounted() || v.feed.Listeners() != 1 {
		t.Fatalf("expected a single mounted listener, got %d", v.feed.Listeners())
	}
}

func TestScrollHeaderClass(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)

	rec := ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(10), nil)
	if !strings.Contains(rec.Body.String(), headerClass(false)) {
		t.Errorf("expected transparent header at the top")
	}
	rec = ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(120), nil)
	if !strings.Contains(rec.Body.String(), headerClass(true)) {
		t.Errorf("expected scrolled header")
	}
}

func TestScrollWithoutMeasurementsKeepsState(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)
	ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(2300), nil)

	rec := ts.do(http.MethodPost, "/views/"+id+"/scroll", url.Values{}, nil)
	if got := activeIn(rec.Body.String()); got != "projects" {
		t.Errorf("active %q, want projects", got)
	}
}

func TestNavTriggersBrowserScroll(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)
	ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(0), nil)
	ts.do(http.MethodPost, "/views/"+id+"/menu", nil, nil)

	rec := ts.do(http.MethodPost, "/views/"+id+"/nav/skills", measurements(0), nil)
	if got := rec.Header().Get("HX-Trigger"); got != `{"scrollToSection":"skills"}` {
		t.Errorf("HX-Trigger = %q", got)
	}
	if strings.Contains(rec.Body.String(), `id="mobile-menu"`) {
		t.Errorf("navigation must close the mobile menu")
	}
}

func TestNavToMissingSectionIsNoop(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)
	ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(0, nav.Contact), nil)
	ts.do(http.MethodPost, "/views/"+id+"/menu", nil, nil)

	for _, section := range []string{"contact", "blog"} {
		rec := ts.do(http.MethodPost, "/views/"+id+"/nav/"+section, measurements(0, nav.Contact), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", section, rec.Code)
		}
		if got := rec.Header().Get("HX-Trigger"); got != "" {
			t.Errorf("%s: unexpected trigger %q", section, got)
		}
		if strings.Contains(rec.Body.String(), `id="mobile-menu"`) {
			t.Errorf("%s: menu should still close", section)
		}
	}
}

func TestMenuToggle(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)

	rec := ts.do(http.MethodPost, "/views/"+id+"/menu", nil, nil)
	if !strings.Contains(rec.Body.String(), `id="mobile-menu"`) {
		t.Fatalf("menu should open")
	}
	rec = ts.do(http.MethodPost, "/views/"+id+"/menu", nil, nil)
	if strings.Contains(rec.Body.String(), `id="mobile-menu"`) {
		t.Fatalf("menu should close")
	}
}

func pageOf(t *testing.T, body string) (page, total int) {
	t.Helper()
	grab := func(attr string) int {
		marker := attr + `="`
		i := strings.Index(body, marker)
		if i < 0 {
			t.Fatalf("missing %s in %q", attr, body)
		}
		rest := body[i+len(marker):]
		n, err := strconv.Atoi(rest[:strings.Index(rest, `"`)])
		if err != nil {
			t.Fatalf("%s: %v", attr, err)
		}
		return n
	}
	return grab("data-page"), grab("data-total")
}

func TestJourneyPaging(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)
	base := "/views/" + id + "/journey"

	rec := ts.do(http.MethodGet, base+"?width=1024", nil, nil)
	if page, total := pageOf(t, rec.Body.String()); page != 0 || total != 9 {
		t.Fatalf("page %d of %d, want 0 of 9", page, total)
	}

	rec = ts.do(http.MethodPost, base+"/next", nil, nil)
	if !strings.Contains(rec.Body.String(), "load delay:150ms") {
		t.Fatalf("expected the transition spinner")
	}
	ts.do(http.MethodPost, base+"/next", nil, nil)
	ts.do(http.MethodPost, base+"/goto/5", nil, nil)

	ts.sched.Advance(150 * time.Millisecond)
	rec = ts.do(http.MethodGet, base, nil, nil)
	if page, _ := pageOf(t, rec.Body.String()); page != 1 {
		t.Fatalf("page %d, want 1", page)
	}

	ts.do(http.MethodPost, base+"/goto/0", nil, nil)
	ts.sched.Advance(150 * time.Millisecond)
	ts.do(http.MethodPost, base+"/prev", nil, nil)
	ts.sched.Advance(150 * time.Millisecond)
	rec = ts.do(http.MethodGet, base, nil, nil)
	if page, _ := pageOf(t, rec.Body.String()); page != 8 {
		t.Fatalf("prev from 0: page %d, want 8", page)
	}

	ts.do(http.MethodPost, base+"/goto/abc", nil, nil)
	if ts.sched.Pending() != 0 {
		t.Fatalf("invalid page must not start a transition")
	}
}

func TestJourneyMobileAndResize(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)
	base := "/views/" + id + "/journey"

	ts.do(http.MethodGet, base+"?width=1024", nil, nil)
	ts.do(http.MethodPost, base+"/goto/3", nil, nil)
	ts.sched.Advance(150 * time.Millisecond)

	rec := ts.do(http.MethodGet, base+"?width=500", nil, nil)
	page, total := pageOf(t, rec.Body.String())
	if page != 6 || total != 18 {
		t.Fatalf("page %d of %d, want 6 of 18", page, total)
	}
}

func TestJourneyLastMobilePage(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)
	base := "/views/" + id + "/journey"

	ts.do(http.MethodGet, base+"?width=375", nil, nil)
	ts.do(http.MethodPost, base+"/goto/17", nil, nil)
	ts.sched.Advance(150 * time.Millisecond)
	body := ts.do(http.MethodGet, base, nil, nil).Body.String()
	for _, want := range []string{"May 2025", "Present Day", "📍"} {
		if !strings.Contains(body, want) {
			t.Errorf("last page missing %q", want)
		}
	}
}

func TestSkillsTabs(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)
	base := "/views/" + id + "/skills"

	rec := ts.do(http.MethodGet, base, nil, nil)
	if !strings.Contains(rec.Body.String(), `data-tab="Frontend"`) {
		t.Fatalf("expected Frontend tab")
	}

	rec = ts.do(http.MethodPost, base+"/Backend", nil, nil)
	if !strings.Contains(rec.Body.String(), "load delay:200ms") {
		t.Fatalf("expected the loading state")
	}
	ts.do(http.MethodPost, base+"/DevOps", nil, nil)
	ts.sched.Advance(200 * time.Millisecond)

	rec = ts.do(http.MethodGet, base, nil, nil)
	if !strings.Contains(rec.Body.String(), `data-tab="Backend"`) {
		t.Fatalf("expected Backend tab, got %s", rec.Body.String())
	}

	ts.do(http.MethodPost, base+"/Cooking", nil, nil)
	if ts.sched.Pending() != 0 {
		t.Fatalf("unknown tab must be ignored")
	}
}

func TestUnknownViewIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	for _, target := range []string{"/views/nope/scroll", "/views/nope/menu", "/views/nope/journey/next"} {
		rec := ts.do(http.MethodPost, target, nil, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status %d", target, rec.Code)
		}
	}
	rec := ts.do(http.MethodGet, "/no/such/page", nil, nil)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Page Not Found") {
		t.Errorf("NoRoute: %d", rec.Code)
	}
}

func TestCloseTearsDownView(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)
	v, _ := ts.views.Get(id)
	ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(0), nil)
	ts.do(http.MethodGet, "/views/"+id+"/journey", nil, nil)
	ts.do(http.MethodPost, "/views/"+id+"/journey/next", nil, nil)

	rec := ts.do(http.MethodPost, "/views/"+id+"/close", nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	if ts.views.Len() != 0 {
		t.Fatalf("view still registered")
	}
	if v.feed.Listeners() != 0 || v.tracker.Mounted() {
		t.Fatalf("listener leaked after close")
	}
	ts.sched.Advance(time.Second)
	if v.journey.Page() != 0 {
		t.Fatalf("closed carousel must not commit")
	}
	rec = ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(0), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("closed view should be gone, got %d", rec.Code)
	}
}

func TestRegistrySweep(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(30*time.Minute, func(v *view) {
		v.tracker = nav.New(v.layout, v.scroller)
	})
	r.now = func() time.Time { return now }

	stale := r.Open("192.0.2.1")
	stale.tracker.Mount(&stale.feed)
	now = now.Add(20 * time.Minute)
	fresh := r.Open("192.0.2.2")
	now = now.Add(15 * time.Minute)

	if n := r.Sweep(); n != 1 {
		t.Fatalf("swept %d views, want 1", n)
	}
	if _, ok := r.Get(stale.id); ok {
		t.Fatalf("stale view survived")
	}
	if stale.feed.Listeners() != 0 {
		t.Fatalf("stale view kept its listener")
	}
	if _, ok := r.Get(fresh.id); !ok {
		t.Fatalf("fresh view was swept")
	}
	if r.Close(stale.id) {
		t.Fatalf("closing twice should report false")
	}
}

func TestRegistryRunStopsWithContext(t *testing.T) {
	r := NewRegistry(time.Minute, func(v *view) { v.tracker = nav.New(v.layout, v.scroller) })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestContactForm(t *testing.T) {
	ts := newTestServer(t)
	form := url.Values{"fullName": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"}}

	rec := ts.do(http.MethodPost, "/contact", form, nil)
	if !strings.Contains(rec.Body.String(), "Thank you for your message") {
		t.Fatalf("unexpected response %q", rec.Body.String())
	}
	if len(ts.mailer.sent) != 1 || ts.mailer.sent[0] != "Ada|ada@example.com|Hello" {
		t.Fatalf("sent %v", ts.mailer.sent)
	}

	rec = ts.do(http.MethodPost, "/contact", url.Values{"fullName": {"Ada"}}, nil)
	if !strings.Contains(rec.Body.String(), "contact-result error") {
		t.Fatalf("missing fields should fail")
	}

	ts.mailer.err = errors.New("relay down")
	rec = ts.do(http.MethodPost, "/contact", form, nil)
	if !strings.Contains(rec.Body.String(), "Please try again later") {
		t.Fatalf("mailer failure should surface, got %q", rec.Body.String())
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/admin/dashboard", nil, nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect to login, got %d", rec.Code)
	}

	rec = ts.do(http.MethodPost, "/admin/login", url.Values{"username": {"admin"}, "password": {"nope"}}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad credentials: status %d", rec.Code)
	}

	rec = ts.do(http.MethodPost, "/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}}, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("login: status %d", rec.Code)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == adminCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("no admin cookie set")
	}

	rec = ts.do(http.MethodGet, "/admin/api/stats", nil, http.Header{"Cookie": {cookie.Name + "=" + cookie.Value}})
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: status %d", rec.Code)
	}
	rec = ts.do(http.MethodGet, "/admin/dashboard", nil, http.Header{"Cookie": {cookie.Name + "=" + cookie.Value}})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Open views") {
		t.Fatalf("dashboard: status %d", rec.Code)
	}
}

func TestAnalyticsRecordsVisitsAndSections(t *testing.T) {
	store, err := analytics.Open(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("analytics.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	ts := newTestServer(t, WithStore(store))

	id := ts.openView(t)
	ts.do(http.MethodGet, "/", nil, http.Header{"Dnt": {"1"}})
	ts.do(http.MethodGet, "/privacy", nil, nil)
	ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(0), nil)
	ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(100), nil)
	ts.do(http.MethodPost, "/views/"+id+"/scroll", measurements(2300), nil)
	ts.Wait()

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 1 {
		t.Errorf("visitors = %d, want 1", stats.TotalVisitors)
	}
	views := map[string]int64{}
	for _, sc := range stats.SectionViews {
		views[sc.Section] = sc.Views
	}
	if views["hero"] != 1 || views["projects"] != 1 || len(views) != 2 {
		t.Errorf("section views = %v", views)
	}

	raw, _ := json.Marshal(stats)
	if strings.Contains(string(raw), "192.0.2.1") {
		t.Errorf("raw client address leaked into stats")
	}
}

func TestRequestAfterTeardownIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	id := ts.openView(t)
	v, _ := ts.views.Get(id)

	// The registry still hands out v, as it does for a request that looked
	// it up just before Close ran.
	v.teardown()

	for _, tt := range []struct{ method, target string }{
		{http.MethodPost, "/views/" + id + "/scroll"},
		{http.MethodGet, "/views/" + id + "/journey"},
		{http.MethodGet, "/views/" + id + "/skills"},
	} {
		var form url.Values
		if tt.target == "/views/"+id+"/scroll" {
			form = measurements(0)
		}
		rec := ts.do(tt.method, tt.target, form, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s: status %d", tt.method, tt.target, rec.Code)
		}
	}
	if v.tracker.Mounted() || v.feed.Listeners() != 0 {
		t.Fatalf("closed view was mounted")
	}
	if v.journey != nil || v.skills != nil {
		t.Fatalf("closed view grew a carousel")
	}
	if ts.sched.Pending() != 0 {
		t.Fatalf("closed view scheduled %d timers", ts.sched.Pending())
	}
}
