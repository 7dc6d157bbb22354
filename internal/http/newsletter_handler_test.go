package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"newsletter-api/internal/auth"
	"newsletter-api/internal/domain"
)

func seedPublisher(t *testing.T, creds *mockCredentialRepo, username, password string) {
	t.Helper()
	hash, err := auth.HashPassword(domain.Secret(password))
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	creds.byUsername[username] = domain.Credential{
		UserID:       "8f1c5cbb-7a43-4f23-9d6f-94e2f6be4a10",
		Username:     username,
		PasswordHash: hash,
	}
}

func basicAuthHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func performPublish(r http.Handler, body []byte, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/newsletters", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func issueBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"title": "Issue #1",
		"content": map[string]string{
			"html": "<p>Newsletter body</p>",
			"text": "Newsletter body",
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return body
}

func TestPublish_RequiresAuthentication(t *testing.T) {
	r := setupRouter(newMockSubscriberRepo(), &mockEmailSender{}, newMockCredentialRepo())

	rec := performPublish(r, issueBody(t), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="publish"` {
		t.Fatalf("expected Basic challenge, got %q", got)
	}
}

func TestPublish_RejectionsAreUniform(t *testing.T) {
	creds := newMockCredentialRepo()
	seedPublisher(t, creds, "admin", "everythinghastostartsomewhere")
	r := setupRouter(newMockSubscriberRepo(), &mockEmailSender{}, creds)

	// Usuario desconocido y contraseña incorrecta deben producir exactamente
	// la misma respuesta para no permitir enumerar usuarios.
	wrongPassword := performPublish(r, issueBody(t), basicAuthHeader("admin", "wrong"))
	unknownUser := performPublish(r, issueBody(t), basicAuthHeader("nobody", "wrong"))

	if wrongPassword.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownUser.Code)
	}
	if wrongPassword.Header().Get("WWW-Authenticate") != unknownUser.Header().Get("WWW-Authenticate") {
		t.Fatalf("challenge headers must match")
	}
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("response bodies must match: %q vs %q", wrongPassword.Body.String(), unknownUser.Body.String())
	}
}

func TestPublish_MalformedHeadersAreUnauthorized(t *testing.T) {
	r := setupRouter(newMockSubscriberRepo(), &mockEmailSender{}, newMockCredentialRepo())

	for label, header := range map[string]string{
		"wrong scheme": "Bearer abc",
		"bad base64":   "Basic !!!",
		"no colon":     "Basic " + base64.StdEncoding.EncodeToString([]byte("justausername")),
	} {
		rec := performPublish(r, issueBody(t), header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", label, rec.Code)
		}
		if rec.Header().Get("WWW-Authenticate") != auth.BasicChallenge {
			t.Errorf("%s: missing Basic challenge", label)
		}
	}
}

func TestPublish_MalformedJSON(t *testing.T) {
	creds := newMockCredentialRepo()
	seedPublisher(t, creds, "admin", "everythinghastostartsomewhere")
	r := setupRouter(newMockSubscriberRepo(), &mockEmailSender{}, creds)

	rec := performPublish(r, []byte(`{"title": "no content"}`), basicAuthHeader("admin", "everythinghastostartsomewhere"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPublish_EndToEndScenario(t *testing.T) {
	repo := newMockSubscriberRepo()
	sender := &mockEmailSender{}
	creds := newMockCredentialRepo()
	seedPublisher(t, creds, "admin", "everythinghastostartsomewhere")
	r := setupRouter(repo, sender, creds)

	// Alta.
	rec := performForm(r, "/subscriptions", url.Values{
		"name":  {"le guin"},
		"email": {"ursula_le_guin@gmail.com"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d", rec.Code)
	}

	// Confirmación con el token del correo.
	var token string
	for tok := range repo.idByToken {
		token = tok
	}
	req := httptest.NewRequest(http.MethodGet, "/subscriptions/confirm?subscription_token="+token, nil)
	confirmRec := httptest.NewRecorder()
	r.ServeHTTP(confirmRec, req)
	if confirmRec.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d", confirmRec.Code)
	}

	// Publicación: un solo correo al suscriptor confirmado.
	emailsBefore := len(sender.sent)
	pubRec := performPublish(r, issueBody(t), basicAuthHeader("admin", "everythinghastostartsomewhere"))
	if pubRec.Code != http.StatusOK {
		t.Fatalf("publish: expected 200, got %d: %s", pubRec.Code, pubRec.Body.String())
	}
	if got := len(sender.sent) - emailsBefore; got != 1 {
		t.Fatalf("expected exactly one newsletter email, got %d", got)
	}
	last := sender.sent[len(sender.sent)-1]
	if last.to != "ursula_le_guin@gmail.com" || last.subject != "Issue #1" {
		t.Fatalf("unexpected delivery: %+v", last)
	}
}

func TestPublish_StoreFailure(t *testing.T) {
	repo := newMockSubscriberRepo()
	repo.listErr = context.DeadlineExceeded
	creds := newMockCredentialRepo()
	seedPublisher(t, creds, "admin", "everythinghastostartsomewhere")
	r := setupRouter(repo, &mockEmailSender{}, creds)

	rec := performPublish(r, issueBody(t), basicAuthHeader("admin", "everythinghastostartsomewhere"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
