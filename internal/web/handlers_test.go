package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"github.com/JulianB-Git/nicolash-frontend/internal/apiclient"
	"github.com/JulianB-Git/nicolash-frontend/internal/dto"
	"github.com/JulianB-Git/nicolash-frontend/internal/report"
)

type upstream struct {
	status  int
	body    string
	lastReq *http.Request
	lastRaw []byte
}

func (u *upstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		u.lastReq = r.Clone(r.Context())
		u.lastRaw = raw
		w.WriteHeader(u.status)
		_, _ = w.Write([]byte(u.body))
	}
}

func newTestApp(t *testing.T, up *upstream) *ginext.Engine {
	t.Helper()
	srv := httptest.NewServer(up.handler())
	t.Cleanup(srv.Close)

	nop := zerolog.Nop()
	reports := report.NewLogger(&nop, nil)
	t.Cleanup(reports.Close)

	service := NewService(apiclient.Config{
		BaseURL:  srv.URL,
		Logger:   &nop,
		Reporter: reports,
	}, reports, nil, &nop)
	return NewRouters(&Routers{Service: service})
}

func doRequest(app *ginext.Engine, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func TestSubmitRSVPRejectsPendingStatus(t *testing.T) {
	up := &upstream{status: 200, body: `{}`}
	app := newTestApp(t, up)

	rec := doRequest(app, http.MethodPost, "/v1/rsvp/a1/respond", `{"rsvpStatus":"pending"}`, nil)

	if rec.Code != 400 {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Error == nil || resp.Error.Code != dto.FieldIncorrect {
		t.Errorf("response = %+v", resp)
	}
	if up.lastReq != nil {
		t.Error("invalid form must never reach the backend")
	}
}

func TestSubmitRSVPForwardsToBackend(t *testing.T) {
	up := &upstream{status: 200, body: `{}`}
	app := newTestApp(t, up)

	rec := doRequest(app, http.MethodPost, "/v1/rsvp/a1/respond", `{"rsvpStatus":"accepted"}`, nil)

	if rec.Code != 200 {
		t.Fatalf("code = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if up.lastReq == nil {
		t.Fatal("backend was not called")
	}
	if up.lastReq.URL.Path != "/rsvp/a1/respond" {
		t.Errorf("backend path = %q", up.lastReq.URL.Path)
	}
	if got := up.lastReq.Header.Get("Authorization"); got != "" {
		t.Errorf("public flow must stay unauthenticated, got %q", got)
	}
	if !strings.Contains(string(up.lastRaw), `"rsvpStatus":"accepted"`) {
		t.Errorf("backend body = %s", up.lastRaw)
	}
}

func TestAdminListForwardsBearerToken(t *testing.T) {
	up := &upstream{status: 200, body: `{"attendees":[],"total":0,"page":1,"limit":20}`}
	app := newTestApp(t, up)

	rec := doRequest(app, http.MethodGet, "/v1/admin/attendees?page=1&limit=20", "", map[string]string{
		"Authorization": "Bearer admin-token",
	})

	if rec.Code != 200 {
		t.Fatalf("code = %d (%s)", rec.Code, rec.Body.String())
	}
	if up.lastReq == nil {
		t.Fatal("backend was not called")
	}
	if got := up.lastReq.Header.Get("Authorization"); got != "Bearer admin-token" {
		t.Errorf("forwarded Authorization = %q", got)
	}
}

func TestUpstream401MapsToSignInPrompt(t *testing.T) {
	up := &upstream{status: 401, body: `{}`}
	app := newTestApp(t, up)

	rec := doRequest(app, http.MethodGet, "/v1/admin/attendees", "", nil)

	if rec.Code != 401 {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Error == nil || resp.Error.Code != dto.AuthRequired {
		t.Errorf("response = %+v", resp)
	}
}

func TestUpstream403MapsToAllowlistMessage(t *testing.T) {
	up := &upstream{status: 403, body: `{}`}
	app := newTestApp(t, up)

	rec := doRequest(app, http.MethodGet, "/v1/admin/attendees", "", nil)

	if rec.Code != 403 {
		t.Fatalf("code = %d, want 403", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Error == nil || resp.Error.Code != dto.AccessDenied {
		t.Errorf("response = %+v", resp)
	}
	if resp.Error != nil && !strings.Contains(resp.Error.Desc, "allowlist") {
		t.Errorf("desc = %q, want allowlist hint", resp.Error.Desc)
	}
}

func TestMemberConflictGetsItsOwnCode(t *testing.T) {
	up := &upstream{status: 400, body: `{"error":{"message":"Some attendees are already in other groups"}}`}
	app := newTestApp(t, up)

	rec := doRequest(app, http.MethodPut, "/v1/admin/groups/g1/members",
		`{"action":"add","attendeeIds":["a1"]}`, nil)

	if rec.Code != 409 {
		t.Fatalf("code = %d, want 409 (%s)", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	if resp.Error == nil || resp.Error.Code != dto.MemberInGroup {
		t.Errorf("response = %+v", resp)
	}
	if resp.Error != nil && !strings.Contains(resp.Error.Desc, "already in other groups") {
		t.Errorf("desc = %q", resp.Error.Desc)
	}
}

func TestInternalErrorsWithoutSink(t *testing.T) {
	up := &upstream{status: 200, body: `{}`}
	app := newTestApp(t, up)

	rec := doRequest(app, http.MethodGet, "/internal/errors", "", nil)
	if rec.Code != 200 {
		t.Fatalf("code = %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
}
