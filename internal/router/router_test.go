package router_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Community_Portal/internal/app"
	"Community_Portal/internal/model"
	"Community_Portal/internal/pkg"
	"Community_Portal/internal/repository/cache"
	"Community_Portal/internal/repository/mysql"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool             `json:"status"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Errors  []pkg.FieldError `json:"errors"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := mysql.Open(sqlite.Open(":memory:"), mysql.PoolConfig{MaxOpenConns: 1}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))

	tokens := cache.NewTokenStore()
	engine := app.NewEngine(app.Deps{
		StoreName: "sqlite",
		Stores:    app.SQLStores(db),
		Sessions:  tokens,
		Resets:    tokens,
		Publisher: pkg.NopPublisher{},
		Mailer:    pkg.LogMailer{},
		JWT:       pkg.NewJWTManager("test-secret", time.Hour),
		AppURL:    "http://portal.test",
		ResetTTL:  time.Minute,
		HashCost:  bcrypt.MinCost,
	})
	return &testServer{t: t, engine: engine, db: db}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
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
	return w.Code, env
}

// register 注册用户并按需提升角色，返回令牌与 id
func (s *testServer) register(username, role string) (string, string) {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret1",
	})
	require.Equal(s.t, http.StatusCreated, code, env.Message)

	var res struct {
		Token string           `json:"token"`
		User  model.PublicUser `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &res))
	if role != model.RoleUser {
		require.NoError(s.t, s.db.Model(&model.User{}).Where("id = ?", res.User.ID).Update("role", role).Error)
	}
	return res.Token, res.User.ID
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func fieldSet(errs []pkg.FieldError) map[string]bool {
	out := map[string]bool{}
	for _, e := range errs {
		out[e.Field] = true
	}
	return out
}

var eventDate = time.Date(2031, 7, 4, 0, 0, 0, 0, time.UTC)

func eventBody(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "Fireworks and a barbecue by the lake",
		"date":        eventDate,
		"location":    "Lakeside Park",
		"type":        "Cultural",
		"startTime":   eventDate.Add(18 * time.Hour),
		"endTime":     eventDate.Add(22 * time.Hour),
	}
}

func TestRegisterExample(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/auth/register", "", `{"username":"alice","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Status)

	data := decode[map[string]any](t, env.Data)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.True(t, model.IsValidID(user["id"].(string)))
	assert.NotContains(t, user, "password")
	assert.NotContains(t, string(env.Data), "secret1")

	code, env = s.do(http.MethodPost, "/api/auth/register", "", `{"username":"alice","email":"b@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Status)
}

func TestLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	s.register("alice", model.RoleUser)

	code, env := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"wrong12"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", env.Message)

	code, env = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"nobody@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", env.Message)

	code, env = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, code)
	token := decode[map[string]any](t, env.Data)["token"].(string)

	code, env = s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[model.PublicUser](t, env.Data)
	assert.Equal(t, "alice", me.Username)

	code, _ = s.do(http.MethodPost, "/api/auth/change-password", token, `{"oldPassword":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = s.do(http.MethodPost, "/api/auth/change-password", token, `{"oldPassword":"nope123","newPassword":"secret2"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodPost, "/api/auth/change-password", token, `{"oldPassword":"secret1","newPassword":"secret2"}`)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)
	userToken, _ := s.register("user1", model.RoleUser)
	modToken, _ := s.register("mod1", model.RoleModerator)
	adminToken, _ := s.register("admin1", model.RoleAdmin)
	link := `{"title":"City","link":"https://city.example"}`

	code, env := s.do(http.MethodPost, "/api/links", "", link)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Status)

	code, _ = s.do(http.MethodPost, "/api/links", "not-a-jwt", link)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(http.MethodPost, "/api/links", userToken, link)
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, env.Status)

	code, _ = s.do(http.MethodPost, "/api/links", adminToken, link)
	assert.Equal(t, http.StatusCreated, code)

	code, _ = s.do(http.MethodDelete, "/api/schools/"+model.NewID(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodDelete, "/api/schools/"+model.NewID(), modToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodDelete, "/api/schools/"+model.NewID(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodPost, "/api/events", userToken, eventBody("Independence Day"))
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodPost, "/api/events", modToken, eventBody("Independence Day"))
	assert.Equal(t, http.StatusCreated, code)

	code, _ = s.do(http.MethodPost, "/api/issues", userToken, `{"title":"Streetlight out","description":"Corner of Oak and 3rd"}`)
	assert.Equal(t, http.StatusCreated, code)

	code, _ = s.do(http.MethodGet, "/api/user", userToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, env = s.do(http.MethodGet, "/api/user", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]model.PublicUser](t, env.Data), 3)

	code, _ = s.do(http.MethodGet, "/api/links", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCreateThenGet(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.register("admin1", model.RoleAdmin)

	cases := []struct {
		path string
		body map[string]any
	}{
		{"/api/schools", map[string]any{
			"name": "Oak Elementary", "type": "elementary", "address": "12 Oak Street, Springfield",
			"phone": "555-123-4567", "email": "office@oak.example", "website": "https://oak.example",
			"direction": "Behind the library", "district": "North",
		}},
		{"/api/faqs", map[string]any{
			"question": "When is trash collected?", "answer": "Every Tuesday morning before 7am.", "category": "general",
		}},
		{"/api/news", map[string]any{
			"title": "Park reopens", "type": "news", "image": "https://img.example/park.png",
			"description": "The central park reopens this weekend after a long renovation of the playground.",
		}},
		{"/api/events", eventBody("Lake Fireworks")},
		{"/api/hoa", map[string]any{"fName": "Ann", "lName": "Lee", "imgUrl": "/img/ann.png", "title": "President"}},
		{"/api/links", map[string]any{"title": "City", "link": "https://city.example"}},
		{"/api/issues", map[string]any{"title": "Pothole", "description": "Deep pothole on Elm"}},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			code, env := s.do(http.MethodPost, tc.path, admin, tc.body)
			require.Equal(t, http.StatusCreated, code, "%s %+v", env.Message, env.Errors)
			created := decode[map[string]any](t, env.Data)
			id := created["id"].(string)
			require.True(t, model.IsValidID(id))

			code, env = s.do(http.MethodGet, tc.path+"/"+id, "", nil)
			require.Equal(t, http.StatusOK, code)
			got := decode[map[string]any](t, env.Data)

			submitted := decode[map[string]any](t, mustJSON(t, tc.body))
			for field, want := range submitted {
				assert.Equal(t, want, got[field], field)
			}
			assert.Equal(t, id, got["id"])
			assert.NotEmpty(t, got["createdAt"])
			assert.Equal(t, created["createdAt"], got["createdAt"])
			assert.Equal(t, created["updatedAt"], got["updatedAt"])
		})
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestDuplicateUniqueField(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.register("admin1", model.RoleAdmin)
	school := `{"name":"Pine High","type":"high","address":"1 Pine Road, Springfield","phone":"5551234567","website":"https://pine.example","direction":"North gate","district":"East"}`

	code, env := s.do(http.MethodPost, "/api/schools", admin, school)
	require.Equal(t, http.StatusCreated, code)
	id := decode[map[string]any](t, env.Data)["id"].(string)

	code, env = s.do(http.MethodPost, "/api/schools", admin, school)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Status)

	code, _ = s.do(http.MethodGet, "/api/schools/"+id, "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestDeleteMissing(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.register("admin1", model.RoleAdmin)

	code, env := s.do(http.MethodDelete, "/api/links/"+model.NewID(), admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Status)

	code, env = s.do(http.MethodDelete, "/api/links/not-an-id", admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid ID format", env.Message)

	code, env = s.do(http.MethodPost, "/api/links", admin, `{"title":"City","link":"https://city.example"}`)
	require.Equal(t, http.StatusCreated, code)
	id := decode[map[string]any](t, env.Data)["id"].(string)

	code, env = s.do(http.MethodDelete, "/api/links/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(env.Data))

	code, _ = s.do(http.MethodDelete, "/api/links/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestEventTimeValidation(t *testing.T) {
	s := newTestServer(t)
	mod, _ := s.register("mod1", model.RoleModerator)

	code, env := s.do(http.MethodPost, "/api/events", mod, eventBody("Lake Fireworks"))
	require.Equal(t, http.StatusCreated, code)
	id := decode[map[string]any](t, env.Data)["id"].(string)

	code, env = s.do(http.MethodPatch, "/api/events/"+id, mod, map[string]any{"endTime": eventDate.Add(17 * time.Hour)})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, fieldSet(env.Errors)["endTime"], "%+v", env.Errors)
	assert.Contains(t, env.Errors[0].Message, "startTime")

	code, _ = s.do(http.MethodPatch, "/api/events/"+id, mod, map[string]any{"location": "Town Square"})
	assert.Equal(t, http.StatusOK, code)
}

func TestEventRepeatRule(t *testing.T) {
	s := newTestServer(t)
	mod, _ := s.register("mod1", model.RoleModerator)

	weekly := eventBody("Weekly Market")
	weekly["repeat"] = "weekly"
	weekly["repeatUntil"] = eventDate
	code, env := s.do(http.MethodPost, "/api/events", mod, weekly)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, fieldSet(env.Errors)["repeatUntil"])

	weekly["repeat"] = "none"
	code, _ = s.do(http.MethodPost, "/api/events", mod, weekly)
	assert.Equal(t, http.StatusCreated, code)

	monthly := eventBody("Monthly Meetup")
	monthly["repeat"] = "monthly"
	monthly["repeatUntil"] = eventDate.AddDate(1, 0, 0)
	code, _ = s.do(http.MethodPost, "/api/events", mod, monthly)
	assert.Equal(t, http.StatusCreated, code)
}

func TestEventHistoryAndDate(t *testing.T) {
	s := newTestServer(t)
	mod, _ := s.register("mod1", model.RoleModerator)

	past := eventBody("Last Year Fair")
	pastDate := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	past["date"], past["startTime"], past["endTime"] = pastDate, pastDate.Add(9*time.Hour), pastDate.Add(12*time.Hour)
	code, _ := s.do(http.MethodPost, "/api/events", mod, past)
	require.Equal(t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, "/api/events", mod, eventBody("Lake Fireworks"))
	require.Equal(t, http.StatusCreated, code)

	code, env := s.do(http.MethodGet, "/api/events/history", "", nil)
	require.Equal(t, http.StatusOK, code)
	history := decode[[]model.Event](t, env.Data)
	require.Len(t, history, 1)
	assert.Equal(t, "Last Year Fair", history[0].Title)

	code, _ = s.do(http.MethodGet, "/api/events/history?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = s.do(http.MethodGet, "/api/events/history?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/events/date/"+eventDate.Format("2006-01-02"), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]model.Event](t, env.Data), 1)

	code, env = s.do(http.MethodGet, "/api/events/date/07-04-2031", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD", env.Message)

	code, env = s.do(http.MethodGet, "/api/events?upcoming=true", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]model.Event](t, env.Data), 1)
}

func TestNewsPagination(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.register("admin1", model.RoleAdmin)
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		code, env := s.do(http.MethodPost, "/api/news", admin, map[string]any{
			"title":       fmt.Sprintf("Neighbourhood update %02d", i),
			"description": "Notes from the monthly residents meeting about parking, parks and safety.",
			"date":        base.AddDate(0, 0, i),
			"type":        "news",
		})
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	code, env := s.do(http.MethodGet, "/api/news?page=2&limit=5", "", nil)
	require.Equal(t, http.StatusOK, code)

	var page struct {
		Items      []model.News `json:"items"`
		Pagination struct {
			CurrentPage  int  `json:"currentPage"`
			TotalPages   int  `json:"totalPages"`
			TotalItems   int  `json:"totalItems"`
			ItemsPerPage int  `json:"itemsPerPage"`
			HasNext      bool `json:"hasNext"`
			HasPrev      bool `json:"hasPrev"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 12, page.Pagination.TotalItems)
	assert.Equal(t, 5, page.Pagination.ItemsPerPage)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestUserRoleUpdate(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.register("admin1", model.RoleAdmin)
	userToken, userID := s.register("user1", model.RoleUser)

	code, _ := s.do(http.MethodPatch, "/api/user/"+userID, userToken, `{"role":"admin"}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := s.do(http.MethodPatch, "/api/user/"+userID, admin, `{"role":"moderator"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.RoleModerator, decode[model.PublicUser](t, env.Data).Role)

	code, _ = s.do(http.MethodPost, "/api/news", userToken, map[string]any{
		"title": "Promoted post", "type": "news",
		"description": "Moderators can publish news for the whole neighbourhood right away.",
	})
	assert.Equal(t, http.StatusCreated, code)
}

func TestMalformedBodiesAndRoutes(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.register("admin1", model.RoleAdmin)

	code, env := s.do(http.MethodPost, "/api/links", admin, `{"title":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Status)

	code, env = s.do(http.MethodPost, "/api/links", admin, `{"title":"x","link":"https://x.example","extra":true}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.True(t, fieldSet(env.Errors)["extra"])

	code, env = s.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Status)

	code, env = s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)
}

func TestForgotAndResetFlow(t *testing.T) {
	s := newTestServer(t)
	s.register("alice", model.RoleUser)

	code, known := s.do(http.MethodPost, "/api/auth/forgot-password", "", `{"email":"alice@example.com"}`)
	assert.Equal(t, http.StatusOK, code)
	code, unknown := s.do(http.MethodPost, "/api/auth/forgot-password", "", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, known.Message, unknown.Message)

	code, _ = s.do(http.MethodPost, "/api/auth/reset-password/bogus", "", `{"newPassword":"secret9"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}
