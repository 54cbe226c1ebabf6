// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	htmltemplate "html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labwise/templates"
	"github.com/humaidq/labwise/wizard"
)

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

type testCSRF struct {
	token string
}

func (c testCSRF) Token() string {
	return c.token
}

func (c testCSRF) ValidToken(string) bool {
	return true
}

func (c testCSRF) Error(http.ResponseWriter) {}

func (c testCSRF) Validate(flamego.Context) {}

// instantAnalyzer returns the canned result without waiting.
var instantAnalyzer = wizard.CannedAnalyzer{}

func validHairValues() wizard.FormValues {
	return wizard.FormValues{
		{Test: wizard.TestHair, Section: "essentialMinerals", Field: "calcium"}:   500,
		{Test: wizard.TestHair, Section: "essentialMinerals", Field: "magnesium"}: 50,
		{Test: wizard.TestHair, Section: "essentialMinerals", Field: "zinc"}:      10,
		{Test: wizard.TestHair, Section: "essentialMinerals", Field: "iron"}:      2,
		{Test: wizard.TestHair, Section: "toxicMetals", Field: "mercury"}:         0.1,
		{Test: wizard.TestHair, Section: "toxicMetals", Field: "lead"}:            0.5,
		{Test: wizard.TestHair, Section: "ratios", Field: "caToMg"}:               8,
	}
}

func validHairForm() url.Values {
	form := url.Values{}
	for path, v := range validHairValues() {
		form.Set(path.String(), formatValue(v))
	}

	return form
}

// controllerAt walks a fresh hair-test controller forward to step.
func controllerAt(t *testing.T, step wizard.Step) *wizard.Controller {
	t.Helper()

	ctl := wizard.NewController("wizard-test", instantAnalyzer)
	t.Cleanup(ctl.Close)

	advance := []struct {
		step wizard.Step
		fn   func() error
	}{
		{wizard.StepTestSelection, ctl.Start},
		{wizard.StepDataInput, func() error { return ctl.ConfirmTests(wizard.NewTestSet(wizard.TestHair)) }},
		{wizard.StepPersonalAttributes, func() error {
			_, err := ctl.ConfirmData(validHairValues())
			return err
		}},
		{wizard.StepAnalysis, func() error { return ctl.ConfirmAttributes(wizard.DefaultPersonalAttributes()) }},
		{wizard.StepResults, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			return ctl.AwaitAnalysis(ctx)
		}},
		{wizard.StepSupplements, ctl.ViewSupplements},
	}

	for _, a := range advance {
		if ctl.Step() == step {
			break
		}

		if err := a.fn(); err != nil {
			t.Fatalf("failed to reach %s: %v", a.step, err)
		}

		if got := ctl.Step(); got != a.step {
			t.Fatalf("expected step %s, got %s", a.step, got)
		}
	}

	if got := ctl.Step(); got != step {
		t.Fatalf("expected step %s, got %s", step, got)
	}

	return ctl
}

// newRoutesTestApp maps the fake session, a registry and ctl the way
// WizardLoader does, and renders with the embedded templates.
func newRoutesTestApp(t *testing.T, s session.Session, ctl *wizard.Controller) *flamego.Flame {
	t.Helper()

	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	catalog, err := wizard.DefaultCatalog()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	registry := wizard.NewRegistry(instantAnalyzer)

	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.MapTo(s, (*session.Session)(nil))
		c.Map(registry, ctl, catalog)
		c.Next()
	})
	f.Use(template.Templater(template.Options{
		FileSystem: fs,
		FuncMaps: []htmltemplate.FuncMap{{
			"join": strings.Join,
		}},
	}))

	return f
}

func performGET(t *testing.T, f *flamego.Flame, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func performFormPOST(t *testing.T, f *flamego.Flame, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Fatalf("expected redirect %q, got %q", wantLocation, got)
	}
}

func assertFlash(t *testing.T, s *testSession, wantType FlashType, wantMessage string) {
	t.Helper()

	msg, ok := s.flash.(FlashMessage)
	if !ok {
		t.Fatalf("expected flash message, got %T", s.flash)
	}

	if msg.Type != wantType || msg.Message != wantMessage {
		t.Fatalf("unexpected flash message: %#v", msg)
	}
}

func assertNoFlash(t *testing.T, s *testSession) {
	t.Helper()

	if s.flash != nil {
		t.Fatalf("expected no flash message, got %#v", s.flash)
	}
}
