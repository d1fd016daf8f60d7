package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"order-system-api/internal/config"
	"order-system-api/internal/dto"
	"order-system-api/internal/model"
	"order-system-api/internal/repository"
	"order-system-api/internal/server"
	"order-system-api/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestEnv(t *testing.T) (*server.Server, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Usuario{},
		&model.Pedido{},
		&model.ItemPedido{},
	))

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	tokenService := service.NewTokenService(&config.Auth{
		SecretKey:          "test-secret",
		AccessTokenMinutes: 120,
	})
	authService := service.NewAuthService(userRepo, tokenService)
	orderService := service.NewOrderService(orderRepo, userRepo)

	return server.NewServer(authService, orderService, tokenService, userRepo, ""), db
}

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	srv, db := newTestEnv(t)
	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)

	return ts, db
}

func doJSON(t *testing.T, method, url, bearer string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, raw
}

func registerAndLogin(t *testing.T, ts *httptest.Server, nome, email string, admin bool) (uint, dto.LoginResponse) {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/criar_conta", "", map[string]interface{}{
		"nome":  nome,
		"email": email,
		"senha": "senha123",
		"admin": admin,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]string{
		"email": email,
		"senha": "senha123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &login))
	require.Equal(t, "Bearer", login.TokenType)

	tokenService := service.NewTokenService(&config.Auth{
		SecretKey:          "test-secret",
		AccessTokenMinutes: 120,
	})
	userID, err := tokenService.Verify(login.AccessToken)
	require.NoError(t, err)

	return userID, login
}

func TestEndToEndOrderFlow(t *testing.T) {
	ts, _ := newTestServer(t)

	userID, login := registerAndLogin(t, ts, "Ana", "a@x.com", false)

	// create order for self
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/pedidos/pedido", login.AccessToken, map[string]uint{
		"usuario": userID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// add 2 × 5.0
	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/pedidos/pedido/adicionar-item/1", login.AccessToken, map[string]interface{}{
		"quantidade":     2,
		"sabor":          "calabresa",
		"tamanho":        "grande",
		"preco_unitario": 5.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var added dto.AdicionarItemResponse
	require.NoError(t, json.Unmarshal(raw, &added))
	assert.True(t, added.PrecoPedido.Equal(decimal.RequireFromString("10.0")), "got %s", added.PrecoPedido)

	// finalize
	resp, raw = doJSON(t, http.MethodPost, ts.URL+"/pedidos/pedido/finalizar/1", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var finalized dto.PedidoResponse
	require.NoError(t, json.Unmarshal(raw, &finalized))
	assert.Equal(t, model.StatusFinalizado, finalized.Pedido.Status)

	// adding to a finalized order fails with 400
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/pedidos/pedido/adicionar-item/1", login.AccessToken, map[string]interface{}{
		"quantidade":     1,
		"sabor":          "mussarela",
		"tamanho":        "média",
		"preco_unitario": 9.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRemoveItemFlow(t *testing.T) {
	ts, _ := newTestServer(t)

	userID, login := registerAndLogin(t, ts, "Ana", "a@x.com", false)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/pedidos/pedido", login.AccessToken, map[string]uint{"usuario": userID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/pedidos/pedido/adicionar-item/1", login.AccessToken, map[string]interface{}{
		"quantidade":     1,
		"sabor":          "portuguesa",
		"tamanho":        "média",
		"preco_unitario": 8.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var added dto.AdicionarItemResponse
	require.NoError(t, json.Unmarshal(raw, &added))

	resp, raw = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/pedidos/pedido/remover-item/%d", ts.URL, added.ItemID), login.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var removed dto.RemoverItemResponse
	require.NoError(t, json.Unmarshal(raw, &removed))
	assert.Equal(t, 0, removed.QuantidadeItensPedido)
	assert.True(t, removed.Pedido.Preco.IsZero())

	// unknown item → 404
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/pedidos/pedido/remover-item/999", login.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDuplicateEmailRegistration(t *testing.T) {
	ts, _ := newTestServer(t)

	body := map[string]string{"nome": "A", "email": "dup@x.com", "senha": "senha123"}
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/criar_conta", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/criar_conta", "", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthorizationOverHTTP(t *testing.T) {
	ts, _ := newTestServer(t)

	ownerID, ownerLogin := registerAndLogin(t, ts, "Dona", "dona@x.com", false)
	_, strangerLogin := registerAndLogin(t, ts, "Outro", "outro@x.com", false)
	_, adminLogin := registerAndLogin(t, ts, "Admin", "admin@x.com", true)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/pedidos/pedido", ownerLogin.AccessToken, map[string]uint{"usuario": ownerID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// stranger cannot view someone else's order
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/pedidos/pedido/1", strangerLogin.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// admin can
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/pedidos/pedido/1", adminLogin.AccessToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// admin listing is admin only
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/pedidos/pedidos/listar", strangerLogin.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/pedidos/pedidos/listar", adminLogin.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all dto.ListarPedidosResponse
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all.Pedidos, 1)

	// own-orders listing is a bare array
	resp, raw = doJSON(t, http.MethodGet, ts.URL+"/pedidos/listar/pedidos-usuario", strangerLogin.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var own []*model.Pedido
	require.NoError(t, json.Unmarshal(raw, &own))
	assert.Empty(t, own)
}

func TestMissingAndBadTokens(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/pedidos/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/pedidos/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshOverHTTP(t *testing.T) {
	ts, _ := newTestServer(t)

	_, login := registerAndLogin(t, ts, "Ana", "a@x.com", false)

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/auth/refresh?refresh_token="+login.RefreshToken, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed dto.RefreshResponse
	require.NoError(t, json.Unmarshal(raw, &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "Bearer", refreshed.TokenType)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/refresh?refresh_token=garbage", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshRejectsDeletedUserOverHTTP(t *testing.T) {
	ts, db := newTestServer(t)

	userID, login := registerAndLogin(t, ts, "Ana", "a@x.com", false)

	require.NoError(t, db.Delete(&model.Usuario{}, userID).Error)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/refresh?refresh_token="+login.RefreshToken, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServerShutdownHonorsContext(t *testing.T) {
	srv, _ := newTestEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))
}
