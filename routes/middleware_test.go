// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labwise/wizard"
)

func TestSetFlashHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		set     func(session.Session, string)
		wantTyp FlashType
	}{
		{name: "error", set: SetErrorFlash, wantTyp: FlashError},
		{name: "info", set: SetInfoFlash, wantTyp: FlashInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession()
			tt.set(s, "hello")

			assertFlash(t, s, tt.wantTyp, "hello")
		})
	}
}

func TestFlashInjector(t *testing.T) {
	t.Parallel()

	handler, ok := FlashInjector().(func(session.Flash, template.Data))
	if !ok {
		t.Fatalf("unexpected FlashInjector handler type")
	}

	data := template.Data{}
	handler(nil, data)

	if _, ok := data["Flash"]; ok {
		t.Fatalf("expected no Flash without a pending message, got %#v", data["Flash"])
	}

	handler(FlashMessage{Type: FlashInfo, Message: "saved"}, data)

	msg, ok := data["Flash"].(FlashMessage)
	if !ok || msg.Message != "saved" || msg.Type != FlashInfo {
		t.Fatalf("unexpected Flash value: %#v", data["Flash"])
	}
}

func TestCSRFInjector(t *testing.T) {
	t.Parallel()

	handler, ok := CSRFInjector().(func(csrf.CSRF, template.Data))
	if !ok {
		t.Fatalf("unexpected CSRFInjector handler type")
	}

	data := template.Data{}
	handler(testCSRF{token: "csrf-123"}, data)

	if got, ok := data["csrf_token"].(string); !ok || got != "csrf-123" {
		t.Fatalf("unexpected csrf_token value: %#v", data["csrf_token"])
	}
}

func TestNoCacheHeaders(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.Use(NoCacheHeaders())
	f.Get("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})
	f.Post("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	getRec := performGET(t, f, "/")

	if got := getRec.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control for GET: %q", got)
	}

	if got := getRec.Header().Get("Pragma"); got != "no-cache" {
		t.Fatalf("unexpected Pragma for GET: %q", got)
	}

	if got := getRec.Header().Get("X-Robots-Tag"); got == "" {
		t.Fatal("expected X-Robots-Tag header")
	}

	postReq := httptest.NewRequest(http.MethodPost, "/", nil)
	postRec := httptest.NewRecorder()
	f.ServeHTTP(postRec, postReq)

	if got := postRec.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no Cache-Control for POST, got %q", got)
	}
}

func newWizardLoaderTestApp(s session.Session, registry *wizard.Registry, seen *[]string) *flamego.Flame {
	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.MapTo(s, (*session.Session)(nil))
		c.Next()
	})
	f.Use(WizardLoader(registry))
	f.Get("/", func(c flamego.Context, ctl *wizard.Controller, _ *wizard.Registry) {
		*seen = append(*seen, ctl.ID())
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	return f
}

func TestWizardLoaderCreatesAndReusesController(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	registry := wizard.NewRegistry(instantAnalyzer)

	var seen []string

	f := newWizardLoaderTestApp(s, registry, &seen)

	performGET(t, f, "/")
	performGET(t, f, "/")

	if len(seen) != 2 || seen[0] != seen[1] {
		t.Fatalf("expected the same controller on both requests, got %v", seen)
	}

	if got, _ := s.Get(wizardSessionKey).(string); got != seen[0] {
		t.Fatalf("expected session to hold %q, got %q", seen[0], got)
	}

	if registry.Len() != 1 {
		t.Fatalf("expected one registered controller, got %d", registry.Len())
	}
}

func TestWizardLoaderReplacesUnknownController(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.Set(wizardSessionKey, "evicted-id")

	registry := wizard.NewRegistry(instantAnalyzer)

	var seen []string

	f := newWizardLoaderTestApp(s, registry, &seen)
	performGET(t, f, "/")

	if len(seen) != 1 || seen[0] == "evicted-id" {
		t.Fatalf("expected a new controller, got %v", seen)
	}

	if got, _ := s.Get(wizardSessionKey).(string); got != seen[0] {
		t.Fatalf("expected session to hold the new id %q, got %q", seen[0], got)
	}
}

func TestRequireStep(t *testing.T) {
	t.Parallel()

	ctl := controllerAt(t, wizard.StepDataInput)

	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.Map(ctl)
		c.Next()
	})
	f.Get("/data", RequireStep(wizard.StepDataInput), func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})
	f.Get("/results", RequireStep(wizard.StepResults), func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})
	f.Get("/", RequireStep(wizard.StepLanding), func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	if rec := performGET(t, f, "/data"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected current step to render, got %d", rec.Code)
	}

	assertRedirect(t, performGET(t, f, "/results"), "/data")
	assertRedirect(t, performGET(t, f, "/"), "/data")
}
