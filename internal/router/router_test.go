package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai4local/internal/database"
	"ai4local/internal/handlers"
	"ai4local/internal/repository"
	"ai4local/internal/services"
	"ai4local/pkg/config"
	"ai4local/pkg/errors"
	"ai4local/pkg/jwt"
	"ai4local/pkg/textgen"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T, generatorURL string) *testServer {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}, "warn")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log, _ := test.NewNullLogger()
	users := repository.NewGormUserRepository(db)
	orgs := repository.NewGormOrganizationRepository(db)
	customers := repository.NewGormCustomerRepository(db)
	campaigns := repository.NewGormCampaignRepository(db)
	tokens := jwt.NewJWTManager("router-test-secret", time.Hour)

	engine := SetupRouter(&Dependencies{
		AuthService:         services.NewAuthService(users, tokens),
		OrganizationService: services.NewOrganizationService(orgs),
		CustomerService:     services.NewCustomerService(customers, orgs),
		CampaignService: services.NewCampaignService(campaigns, orgs, customers,
			textgen.NewClient(generatorURL, time.Second), services.CampaignOptions{}, log),
		Tokens:        tokens,
		TokenDuration: time.Hour,
		HealthChecks: map[string]handlers.Pinger{
			"database": handlers.PingerFunc(func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}),
		},
	})
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.Equal(s.t, w.Code, env.Code)
	return w.Code, env
}

func (s *testServer) register(email string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email": email, "password": "s3cret-pass", "first_name": "Nirina", "last_name": "Randria",
	})
	require.Equal(s.t, http.StatusOK, code, env.Message)
	var data handlers.LoginResponse
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func (s *testServer) createOrg(token, name string) uint {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/organizations", token, map[string]interface{}{"name": name})
	require.Equal(s.t, http.StatusOK, code, env.Message)
	var org struct {
		ID uint `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &org))
	return org.ID
}

func decode(t *testing.T, raw json.RawMessage) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")

	code, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email": "flow@example.mg", "password": "s3cret-pass", "first_name": "A", "last_name": "B",
	})
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "$2a$")

	code, env = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email": "flow@example.mg", "password": "s3cret-pass", "first_name": "A", "last_name": "B",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, errors.MsgEmailTaken, env.Message)

	code, wrong := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{"email": "flow@example.mg", "password": "bad-password"})
	assert.Equal(t, http.StatusUnauthorized, code)
	_, unknown := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{"email": "nobody@example.mg", "password": "bad-password"})
	assert.Equal(t, wrong.Message, unknown.Message)

	code, env = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{"email": "flow@example.mg", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, code)
	var login handlers.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))

	code, env = s.do(http.MethodGet, "/api/v1/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "flow@example.mg", decode(t, env.Data)["email"])

	code, _ = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{"email": "bad", "password": "1"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")

	for _, path := range []string{"/api/v1/campaigns", "/api/v1/customers", "/api/v1/organizations", "/api/v1/campaigns/1"} {
		code, env := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.Equal(t, errors.MsgLoginRequired, env.Message)
	}

	code, _ := s.do(http.MethodPost, "/api/v1/campaigns/generate-content", "garbage", map[string]string{"prompt": "p", "type": "sms"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCampaignFlow(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")
	owner := s.register("owner@example.mg")
	intruder := s.register("intruder@example.mg")
	orgID := s.createOrg(owner, "Boutique")

	code, env := s.do(http.MethodPost, "/api/v1/organizations/999999/campaigns", owner, map[string]interface{}{"name": "n", "type": "sms"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Organization with ID 999999 not found", env.Message)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%d/campaigns", orgID), intruder, map[string]interface{}{"name": "n", "type": "sms"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%d/campaigns", orgID), owner, map[string]interface{}{
		"name": "Été", "type": "sms", "content": "Promo", "target_tags": []string{"vip"},
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	campaign := decode(t, env.Data)
	id := uint(campaign["id"].(float64))
	assert.Equal(t, "draft", campaign["status"])
	path := fmt.Sprintf("/api/v1/campaigns/%d", id)

	code, env = s.do(http.MethodPut, path, owner, `{"name":"X"}`)
	require.Equal(t, http.StatusOK, code, env.Message)
	updated := decode(t, env.Data)
	assert.Equal(t, "X", updated["name"])
	assert.Equal(t, "Promo", updated["content"])
	assert.Equal(t, []interface{}{"vip"}, updated["target_tags"])

	code, env = s.do(http.MethodPut, path, owner, `{"name":null}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "name cannot be null")

	code, _ = s.do(http.MethodGet, path, intruder, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodGet, "/api/v1/campaigns", intruder, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decodeList(t, env.Data))

	code, env = s.do(http.MethodGet, "/api/v1/campaigns", owner, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeList(t, env.Data), 1)

	code, env = s.do(http.MethodGet, path+"/preview", owner, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), decode(t, env.Data)["total"])

	code, env = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/organizations/%d", orgID), owner, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, errors.MsgOrganizationInUse, env.Message)

	code, _ = s.do(http.MethodDelete, path, owner, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodGet, path, owner, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, fmt.Sprintf("Campaign with ID %d not found", id), env.Message)
	code, _ = s.do(http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/organizations/%d", orgID), owner, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCampaignTemplates(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")
	owner := s.register("owner@example.mg")
	intruder := s.register("intruder@example.mg")
	orgID := s.createOrg(owner, "Boutique")
	path := fmt.Sprintf("/api/v1/organizations/%d/campaigns/templates", orgID)

	code, env := s.do(http.MethodGet, path, owner, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var data struct {
		Templates map[string][]config.ContentTemplate `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	for _, channel := range []string{"facebook", "sms", "email", "whatsapp"} {
		require.NotEmpty(t, data.Templates[channel], channel)
		assert.Contains(t, data.Templates[channel][0].Template, "{prompt}")
	}

	code, _ = s.do(http.MethodGet, path, intruder, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/v1/organizations/999999/campaigns/templates", owner, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func decodeList(t *testing.T, raw json.RawMessage) []interface{} {
	t.Helper()
	var list []interface{}
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

func TestCustomerFlow(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")
	owner := s.register("owner@example.mg")
	orgID := s.createOrg(owner, "Boutique")

	code, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%d/customers", orgID), owner, map[string]interface{}{
		"name": "Koto", "email": "koto@example.mg", "tags": []string{"vip"}, "notes": "fidèle",
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	id := uint(decode(t, env.Data)["id"].(float64))

	code, env = s.do(http.MethodPut, fmt.Sprintf("/api/v1/customers/%d", id), owner, `{"notes":null}`)
	require.Equal(t, http.StatusOK, code, env.Message)
	customer := decode(t, env.Data)
	assert.Nil(t, customer["notes"])
	assert.Equal(t, "Koto", customer["name"])

	code, env = s.do(http.MethodGet, "/api/v1/customers?tags=vip", owner, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeList(t, env.Data), 1)

	code, _ = s.do(http.MethodGet, "/api/v1/customers/999999", owner, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGenerateContent(t *testing.T) {
	var gotPrompt string
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Prompt    string `json:"prompt"`
			MaxTokens int    `json:"max_tokens"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotPrompt = body.Prompt
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"generated_text":"Soldes d'été -20%"}`))
	}))
	defer ok.Close()

	s := newTestServer(t, ok.URL)
	token := s.register("gen@example.mg")

	code, env := s.do(http.MethodPost, "/api/v1/campaigns/generate-content", token, map[string]string{"prompt": "promo été", "type": "sms"})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "Soldes d'été -20%", decode(t, env.Data)["content"])
	assert.Equal(t, "Créez un contenu de sms pour: promo été", gotPrompt)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded at layer 12", http.StatusInternalServerError)
	}))
	defer failing.Close()

	s = newTestServer(t, failing.URL)
	token = s.register("gen@example.mg")
	code, env = s.do(http.MethodPost, "/api/v1/campaigns/generate-content", token, map[string]string{"prompt": "promo été", "type": "sms"})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, errors.MsgGenerationFailed, env.Message)
	assert.NotContains(t, string(env.Data), "exploded")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")

	code, env := s.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "up", decode(t, env.Data)["database"])

	code, env = s.do(http.MethodGet, "/api/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", env.Message)
}
