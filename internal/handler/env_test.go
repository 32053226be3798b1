package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/cart"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/internal/service"
	"github.com/jamalparfum/storefront/internal/session"
	"github.com/jamalparfum/storefront/internal/view"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	customer = &domain.User{ID: 1, Name: "Budi", Email: "budi@example.com", Role: domain.RoleUser}
	admin    = &domain.User{ID: 2, Name: "Siti", Email: "siti@example.com", Role: domain.RoleAdmin}
)

// testEnv is the storefront wired against a fake backend
type testEnv struct {
	router   *gin.Engine
	sessions *session.Manager
	carts    *cart.MemoryStorage
	backend  *httptest.Server
}

type envOption func(*Handlers)

func newTestEnv(t *testing.T, backend http.Handler, guard gin.HandlerFunc, opts ...envOption) *testEnv {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := apiclient.New(apiclient.Config{BaseURL: srv.URL}, nil)
	sessions := session.NewManager(session.DefaultConfig("test-secret"), nil)
	storage := cart.NewMemoryStorage()
	pages := NewPages(func(session.Jar) cart.Storage { return storage }, srv.URL, nil)

	api := BindBackend(client)
	catalog := service.NewCatalogService()
	h := &Handlers{
		Health:        NewHealthHandler(nil, client),
		Catalog:       NewCatalogHandler(pages, api, catalog),
		Auth:          NewAuthHandler(pages, BindGuest(client), service.NewAuthService()),
		Cart:          NewCartHandler(pages, api, catalog, service.NewCheckoutService(nil)),
		Orders:        NewOrderHandler(pages, api, service.NewOrderService(nil)),
		AdminOrders:   NewAdminOrderHandler(pages, api, service.NewAdminOrderService(nil)),
		AdminPerfumes: NewAdminPerfumeHandler(pages, api, service.NewAdminPerfumeService(nil)),
		AdminUsers:    NewAdminUserHandler(pages, api, service.NewAdminUserService(nil)),
		Reports:       NewReportHandler(pages, api, service.NewReportService()),
	}
	for _, opt := range opts {
		opt(h)
	}

	router := gin.New()
	router.SetHTMLTemplate(view.MustTemplates())
	router.Use(session.Middleware(sessions))
	RegisterRoutes(router, h, guard)

	return &testEnv{router: router, sessions: sessions, carts: storage, backend: srv}
}

// login returns the cookies of a signed in session
func (e *testEnv) login(user *domain.User) []*http.Cookie {
	jar := session.MapJar{}
	e.sessions.Store(jar).Login("token-"+string(user.Role), user)

	cookies := make([]*http.Cookie, 0, len(jar))
	for name, value := range jar {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value})
	}
	return cookies
}

func (e *testEnv) fillCart(t *testing.T, products ...cart.Product) {
	t.Helper()
	store := cart.Open(context.Background(), e.carts, nil)
	for _, p := range products {
		require.NoError(t, store.Add(context.Background(), p))
	}
}

func (e *testEnv) cartItems() []cart.Item {
	return cart.Open(context.Background(), e.carts, nil).Items()
}

type call struct {
	method  string
	path    string
	form    url.Values
	json    bool
	user    *domain.User
	cookies []*http.Cookie
}

func (e *testEnv) do(c call) *httptest.ResponseRecorder {
	var req *http.Request
	if c.form != nil {
		req = httptest.NewRequest(c.method, c.path, strings.NewReader(c.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(c.method, c.path, nil)
	}
	if c.json {
		req.Header.Set("Accept", "application/json")
	}
	if c.user != nil {
		for _, ck := range e.login(c.user) {
			req.AddCookie(ck)
		}
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func perfumeFixture() []domain.Perfume {
	return []domain.Perfume{
		{ID: 1, Name: "Oud Royal", Brand: "Jamal", Price: decimal.NewFromInt(250000), Stock: 10},
		{ID: 2, Name: "Amber Night", Brand: "Noir", Price: decimal.NewFromInt(90000), Stock: 0},
	}
}

// catalogBackend serves the public perfume endpoints
func catalogBackend() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/perfumes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": perfumeFixture()})
	})
	mux.HandleFunc("/api/perfumes/", func(w http.ResponseWriter, r *http.Request) {
		for _, p := range perfumeFixture() {
			if r.URL.Path == "/api/perfumes/"+strconv.FormatInt(p.ID, 10) {
				writeJSON(w, http.StatusOK, map[string]interface{}{"data": p})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Perfume not found"})
	})
	return mux
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func newFlashCookie(message string) *http.Cookie {
	jar := session.MapJar{}
	setFlash(jar, message)
	return &http.Cookie{Name: flashCookie, Value: jar[flashCookie]}
}
