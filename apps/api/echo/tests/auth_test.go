package tests

import (
	"net/http"
	"testing"

	. "github.com/trezcool/darasa/apps/api/echo"
)

func Test_authApi_login(t *testing.T) {
	app, env := setup(t)
	ann := createStudent(t, env, "ann", "Ann Lee", "ann@example.com", "password123")
	admin := createAdmin(t, env, "Root", "root@example.com", "rootpass123")

	tests := []httpTest{
		{
			name: "bad password", body: []byte(`{"email":"ann@example.com","password":"wrongpass123"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errBadCredentials),
		},
		{
			name: "unknown email", body: []byte(`{"email":"ghost@example.com","password":"password123"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errBadCredentials),
		},
		{
			// never leaks whether the account exists
			name: "malformed email", body: []byte(`{"email":"not-an-email","password":"password123"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errBadCredentials),
		},
		{
			name: "short password", body: []byte(`{"email":"ann@example.com","password":"short"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errBadCredentials),
		},
		{
			name: "empty payload", body: []byte(`{}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errBadCredentials),
		},
		{
			name: "student ok", body: []byte(`{"email":"ann@example.com","password":"password123"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{
				"success": true,
				"message": "Login successful",
				"user": map[string]interface{}{
					"id": ann.ID, "name": ann.Name, "email": ann.Email, "is_admin": false,
				},
			}),
		},
		{
			name: "admin ok", body: []byte(`{"email":"root@example.com","password":"rootpass123"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{
				"success": true,
				"message": "Login successful",
				"user": map[string]interface{}{
					"id": admin.ID, "name": admin.Name, "email": admin.Email, "is_admin": true,
				},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			var sessCookie *http.Cookie
			for _, c := range rec.Result().Cookies() {
				if c.Name == SessionCookieName {
					sessCookie = c
				}
			}
			if tt.wantCode == http.StatusOK {
				if sessCookie == nil || sessCookie.Value == "" {
					t.Error("no session cookie set on successful login")
				}
			} else if sessCookie != nil {
				t.Error("session cookie set on failed login")
			}
		})
	}
}

func Test_authApi_login_methodNotAllowed(t *testing.T) {
	app, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/login")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusMethodNotAllowed, wantData: marchallObj(t, errMethodNotAllowed)}, rec)
}

func Test_authApi_logout(t *testing.T) {
	app, env := setup(t)
	createAdmin(t, env, "Root", "root@example.com", "rootpass123")
	token := login(t, env, "root@example.com", "rootpass123")

	// the session works before logout
	req, rec := newAuthRequest(http.MethodGet, "/students", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("pre-logout admin request failed: code %d", rec.Code)
	}

	req, rec = newAuthRequest(http.MethodPost, "/logout", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, okResp(nil, "Logout successful")),
	}, rec)

	// the session is gone after logout
	req, rec = newAuthRequest(http.MethodGet, "/students", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("post-logout admin request: code = %d; want 403", rec.Code)
	}
}

func Test_authApi_logout_anonymous(t *testing.T) {
	app, _ := setup(t)

	// logging out without a session is a no-op, not an error
	req, rec := newRequest(http.MethodPost, "/logout")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, okResp(nil, "Logout successful")),
	}, rec)
}
