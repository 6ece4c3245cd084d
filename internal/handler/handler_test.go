package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/config"
	"finance-tracker/internal/domain"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/storage/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() (*gin.Engine, *memory.Storage) {
	store := memory.NewStorage()
	tokenService := auth.NewTokenService(config.Config{
		JWTSecret:    "test-secret",
		JWTExpiresIn: time.Hour,
	})
	router := NewRouter(
		NewAuthHandler(store, tokenService),
		NewTransactionHandler(store),
		NewCalculatorHandler(),
		middleware.NewAuthMiddleware(tokenService),
	)
	return router, store
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := doJSON(router, http.MethodPost, "/api/register", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createTransaction(t *testing.T, router *gin.Engine, token, description string, amount float64, category, date string) int64 {
	t.Helper()

	w := doJSON(router, http.MethodPost, "/api/transactions", token, map[string]any{
		"description": description, "amount": amount, "category": category, "date": date,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func listTransactions(t *testing.T, router *gin.Engine, token string) []domain.Transaction {
	t.Helper()

	w := doJSON(router, http.MethodGet, "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []domain.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

// --- auth ---

func TestRegister_DuplicateUsername(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice", "password": "pw1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice", "password": "pw2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// the original row is untouched: the first password still works
	w = doJSON(router, http.MethodPost, "/api/login", "", map[string]string{
		"username": "alice", "password": "pw1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	router, _ := newTestRouter()

	for name, body := range map[string]map[string]string{
		"missing password": {"username": "bob"},
		"missing username": {"password": "pw"},
		"blank username":   {"username": "   ", "password": "pw"},
	} {
		w := doJSON(router, http.MethodPost, "/api/register", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestLogin_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	router, _ := newTestRouter()
	registerAndLogin(t, router, "alice", "correct")

	wrongPw := doJSON(router, http.MethodPost, "/api/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	unknownUser := doJSON(router, http.MethodPost, "/api/login", "", map[string]string{
		"username": "nobody", "password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPw.Body.String(), unknownUser.Body.String())
}

func TestCurrentUser(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")

	w := doJSON(router, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)
}

func TestProtectedRoutes_RejectMissingOrBadToken(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(router, http.MethodGet, "/api/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	w = doJSON(router, http.MethodGet, "/api/transactions", "garbage.token.here", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")

	w := doJSON(router, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- transactions ---

func TestCreateThenList(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")

	id := createTransaction(t, router, token, "Groceries", 42.50, "Food", "2024-06-01")

	list := listTransactions(t, router, token)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "Groceries", list[0].Description)
	assert.Equal(t, 42.50, list[0].Amount)
	assert.Equal(t, "Food", list[0].Category)
	assert.Equal(t, "2024-06-01", list[0].Date)
}

func TestList_EmptyIsJSONArray(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")

	w := doJSON(router, http.MethodGet, "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreate_Validation(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")

	for name, body := range map[string]map[string]any{
		"missing description": {"amount": 1.0, "category": "Food", "date": "2024-06-01"},
		"blank description":   {"description": " ", "amount": 1.0, "category": "Food", "date": "2024-06-01"},
		"missing amount":      {"description": "x", "category": "Food", "date": "2024-06-01"},
		"bad category":        {"description": "x", "amount": 1.0, "category": "Bribes", "date": "2024-06-01"},
		"bad date":            {"description": "x", "amount": 1.0, "category": "Food", "date": "yesterday"},
		"missing date":        {"description": "x", "amount": 1.0, "category": "Food"},
	} {
		w := doJSON(router, http.MethodPost, "/api/transactions", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestUpdate_ChangesFieldsButNotDate(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")
	id := createTransaction(t, router, token, "Taxi", 10, "Transport", "2024-06-01")

	w := doJSON(router, http.MethodPut, fmt.Sprintf("/api/transactions/%d", id), token, map[string]any{
		"description": "Bus", "amount": 2.5, "category": "Transport",
	})
	require.Equal(t, http.StatusOK, w.Code)

	list := listTransactions(t, router, token)
	require.Len(t, list, 1)
	assert.Equal(t, "Bus", list[0].Description)
	assert.Equal(t, 2.5, list[0].Amount)
	assert.Equal(t, "2024-06-01", list[0].Date)
}

func TestUpdate_NotFound(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")

	w := doJSON(router, http.MethodPut, "/api/transactions/999", token, map[string]any{
		"description": "x", "amount": 1.0, "category": "Other",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete_ThenRepeatFails(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")
	id := createTransaction(t, router, token, "Cinema", 15, "Entertainment", "2024-06-02")

	w := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listTransactions(t, router, token))

	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnershipIsolation(t *testing.T) {
	router, _ := newTestRouter()
	tokenA := registerAndLogin(t, router, "alice", "pw")
	tokenB := registerAndLogin(t, router, "bob", "pw")

	id := createTransaction(t, router, tokenA, "Secret dinner", 99, "Food", "2024-06-01")

	// B never sees A's row
	assert.Empty(t, listTransactions(t, router, tokenB))

	// B cannot update or delete it; the response is the same 404 used for
	// rows that do not exist at all
	missing := doJSON(router, http.MethodDelete, "/api/transactions/424242", tokenB, nil)
	notOwned := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, notOwned.Code)
	assert.Equal(t, missing.Body.String(), notOwned.Body.String())

	w := doJSON(router, http.MethodPut, fmt.Sprintf("/api/transactions/%d", id), tokenB, map[string]any{
		"description": "hijacked", "amount": 0.01, "category": "Other",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A's row is intact
	list := listTransactions(t, router, tokenA)
	require.Len(t, list, 1)
	assert.Equal(t, "Secret dinner", list[0].Description)
}

func TestClearAll_ScopedToCaller(t *testing.T) {
	router, _ := newTestRouter()
	tokenA := registerAndLogin(t, router, "alice", "pw")
	tokenB := registerAndLogin(t, router, "bob", "pw")

	createTransaction(t, router, tokenA, "a1", 1, "Food", "2024-06-01")
	createTransaction(t, router, tokenA, "a2", 2, "Other", "2024-06-02")
	createTransaction(t, router, tokenB, "b1", 3, "Food", "2024-06-03")

	w := doJSON(router, http.MethodDelete, "/api/transactions", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Deleted)

	assert.Empty(t, listTransactions(t, router, tokenA))
	assert.Len(t, listTransactions(t, router, tokenB), 1)

	// clearing an already empty set still succeeds
	w = doJSON(router, http.MethodDelete, "/api/transactions", tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategorySummary_MatchesListTotals(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")

	createTransaction(t, router, token, "Groceries", 40, "Food", "2024-06-01")
	createTransaction(t, router, token, "Restaurant", 25.5, "Food", "2024-06-02")
	createTransaction(t, router, token, "Bus", 2.5, "Transport", "2024-06-03")
	createTransaction(t, router, token, "Refund", -10, "Other", "2024-06-04")

	w := doJSON(router, http.MethodGet, "/api/category-summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary []domain.CategorySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))

	got := make(map[string]float64)
	for _, cs := range summary {
		got[cs.Category] = cs.Amount
	}

	want := make(map[string]float64)
	for _, tx := range listTransactions(t, router, token) {
		want[tx.Category] += tx.Amount
	}
	assert.Equal(t, want, got)
}

func TestCategorySummary_Empty(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")

	w := doJSON(router, http.MethodGet, "/api/category-summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

// --- calculators ---

func TestCalculateInterest_Public(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(router, http.MethodPost, "/api/calculate-interest", "", map[string]float64{
		"principal": 1000, "rate": 5, "years": 10,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		FutureValue float64 `json:"futureValue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 1628.89, resp.FutureValue, 0.01)
}

func TestCalculateInterest_BadInput(t *testing.T) {
	router, _ := newTestRouter()

	for name, body := range map[string]map[string]any{
		"missing principal": {"rate": 5, "years": 10},
		"negative years":    {"principal": 1000, "rate": 5, "years": -1},
		"non-numeric":       {"principal": "lots", "rate": 5, "years": 10},
	} {
		w := doJSON(router, http.MethodPost, "/api/calculate-interest", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestCheckBudget(t *testing.T) {
	router, _ := newTestRouter()
	token := registerAndLogin(t, router, "alice", "pw")

	w := doJSON(router, http.MethodPost, "/api/check-budget", token, map[string]float64{
		"budget": 100, "totalSpent": 150,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Budget exceeded by $50.00")

	w = doJSON(router, http.MethodPost, "/api/check-budget", token, map[string]float64{
		"budget": 150, "totalSpent": 100,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Within budget by $50.00")

	w = doJSON(router, http.MethodPost, "/api/check-budget", "", map[string]float64{
		"budget": 100, "totalSpent": 150,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
