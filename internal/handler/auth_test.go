package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"birdai/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

func adminToken(t *testing.T, r http.Handler) string {
	t.Helper()
	return loginToken(t, r, "/api/admin/auth/login", `{"username":"admin","password":"birdai2025"}`)
}

func demoToken(t *testing.T, r http.Handler) string {
	t.Helper()
	return loginToken(t, r, "/api/demo/auth/login", `{"accessCode":"earlybird"}`)
}

func loginToken(t *testing.T, r http.Handler, path, body string) string {
	t.Helper()
	w := postJSON(r, path, body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login at %s failed: %d %s", path, w.Code, w.Body.String())
	}
	var resp struct {
		Data auth.Session `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("login response has no token")
	}
	return resp.Data.Token
}

func TestAdminLoginAndVerify(t *testing.T) {
	r, _ := newTestRouter(t)

	token := adminToken(t, r)
	w := getPath(r, "/api/admin/auth/verify", map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			User struct {
				Role     string `json:"role"`
				Username string `json:"username"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse verify response: %v", err)
	}
	if resp.Data.User.Role != "admin" || resp.Data.User.Username != "admin" {
		t.Fatalf("unexpected verify payload: %+v", resp.Data)
	}
}

func TestAdminLoginWrongCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/api/admin/auth/login", `{"username":"admin","password":"nope"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestDemoLoginAndVerify(t *testing.T) {
	r, _ := newTestRouter(t)

	token := demoToken(t, r)
	w := getPath(r, "/api/demo/auth/verify", map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d", w.Code)
	}
}

func TestVerifyWithoutToken(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/admin/auth/verify", "/api/demo/auth/verify"} {
		if w := getPath(r, path, nil); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestVerifyExpiredTokenRejected(t *testing.T) {
	// Correctly signed token whose exp has already passed.
	claims := auth.Claims{
		Role:     auth.RoleAdmin,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "birdai",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	r, _ := newTestRouter(t)
	w := getPath(r, "/api/admin/auth/verify", map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestVerifyCrossRoleRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	demo := demoToken(t, r)
	w := getPath(r, "/api/admin/auth/verify", map[string]string{"Authorization": "Bearer " + demo})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("demo token must not verify as admin, got %d", w.Code)
	}
}
