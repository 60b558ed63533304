package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/middleware"
	"seguimiento-noticias/internal/mocks"
	"seguimiento-noticias/internal/pkg/i18n"
	"seguimiento-noticias/internal/service/meta"
	"seguimiento-noticias/internal/service/noticia"
)

func TestMain(m *testing.M) {
	if err := i18n.LoadTranslations(filepath.Join("..", "..", "locales")); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var (
	adminActor = domain.Actor{ID: 1, Nombre: "Jefa", Role: domain.RoleAdmin}
	agentActor = domain.Actor{ID: 7, Nombre: "Ana", Role: domain.RoleReportero}
)

type testEnv struct {
	app        *fiber.App
	auth       *mocks.AuthService
	noticias   *mocks.NoticiaService
	reporteros *mocks.ReporteroService
	clientes   *mocks.ClienteService
	avisos     *mocks.AvisoService
	metas      *mocks.MetaService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		auth:       new(mocks.AuthService),
		noticias:   new(mocks.NoticiaService),
		reporteros: new(mocks.ReporteroService),
		clientes:   new(mocks.ClienteService),
		avisos:     new(mocks.AvisoService),
		metas:      new(mocks.MetaService),
	}
	env.auth.On("Authenticate", mock.Anything, "admin-token").Return(&adminActor, nil)
	env.auth.On("Authenticate", mock.Anything, "agent-token").Return(&agentActor, nil)

	h := &Handlers{
		Auth:      NewAuthHandler(env.auth, env.reporteros),
		Noticia:   NewNoticiaHandler(env.noticias),
		Reportero: NewReporteroHandler(env.reporteros),
		Cliente:   NewClienteHandler(env.clientes, env.noticias),
		Aviso:     NewAvisoHandler(env.avisos),
		Meta:      NewMetaHandler(env.metas),
	}

	env.app = fiber.New(fiber.Config{ErrorHandler: middleware.NewErrorHandler(true)})
	SetupRoutes(env.app, h, env.auth, nil)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (int, middleware.Response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out middleware.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestClaim(t *testing.T) {
	env := newTestEnv(t)
	env.noticias.On("Claim", mock.Anything, agentActor, int64(5), domain.ClaimInput{}).
		Return(&domain.Noticia{ID: 5, ReporteroID: int64Ptr(7)}, nil).Once()
	env.noticias.On("Claim", mock.Anything, agentActor, int64(6), domain.ClaimInput{}).
		Return(nil, noticia.ErrAlreadyClaimed).Once()

	status, body := env.do(t, http.MethodPost, "/api/v1/noticias/5/tomar", "agent-token", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)
	assert.Equal(t, i18n.Translate("es", "noticia.claimed"), body.Message)

	status, body = env.do(t, http.MethodPost, "/api/v1/noticias/6/tomar", "agent-token", "")
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, body.Success)
	assert.Equal(t, i18n.Translate("es", "noticia.already_claimed"), body.Message)
}

func TestClaim_AdminOnBehalf(t *testing.T) {
	env := newTestEnv(t)
	input := domain.ClaimInput{ReporteroID: int64Ptr(7)}
	env.noticias.On("Claim", mock.Anything, adminActor, int64(5), input).
		Return(&domain.Noticia{ID: 5, ReporteroID: int64Ptr(7)}, nil)

	_, body := env.do(t, http.MethodPost, "/api/v1/noticias/5/tomar", "admin-token", `{"reportero_id":7}`)
	assert.True(t, body.Success)
	env.noticias.AssertExpectations(t)
}

func TestEdit_PatchAndPostAlias(t *testing.T) {
	env := newTestEnv(t)
	input := domain.UpdateNoticiaInput{RutaIniciada: intPtr(1)}
	env.noticias.On("Edit", mock.Anything, agentActor, int64(9), input).
		Return(&domain.EditResult{Noticia: &domain.Noticia{ID: 9, RutaIniciada: true}, Message: noticia.MessageRouteAlreadyStarted}, nil)

	for _, method := range []string{http.MethodPatch, http.MethodPost} {
		status, body := env.do(t, method, "/api/v1/noticias/9", "agent-token", `{"ruta_iniciada":1}`)
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, body.Success)
		assert.Equal(t, i18n.Translate("es", noticia.MessageRouteAlreadyStarted), body.Message)
	}
	env.noticias.AssertNumberOfCalls(t, "Edit", 2)
}

func TestEdit_RuleErrorWithArgument(t *testing.T) {
	env := newTestEnv(t)
	env.noticias.On("Edit", mock.Anything, agentActor, int64(9), mock.Anything).
		Return(nil, domain.NewRuleError("noticia.field_forbidden", "domicilio"))

	_, body := env.do(t, http.MethodPatch, "/api/v1/noticias/9", "agent-token", `{"domicilio":"Centro"}`)
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "domicilio")
}

func TestStartRoute_DefaultMessage(t *testing.T) {
	env := newTestEnv(t)
	env.noticias.On("StartRoute", mock.Anything, agentActor, int64(3)).
		Return(&domain.EditResult{Noticia: &domain.Noticia{ID: 3}, Changed: true}, nil)

	_, body := env.do(t, http.MethodPost, "/api/v1/noticias/3/trayecto", "agent-token", "")
	assert.True(t, body.Success)
	assert.Equal(t, i18n.Translate("es", noticia.MessageRouteStarted), body.Message)
}

func TestAdminRoutesRejectAgents(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/noticias"},
		{http.MethodDelete, "/api/v1/noticias/4"},
		{http.MethodPost, "/api/v1/noticias/reasignar"},
		{http.MethodPost, "/api/v1/reporteros"},
		{http.MethodPost, "/api/v1/avisos"},
		{http.MethodPut, "/api/v1/metas/minimo"},
	} {
		status, body := env.do(t, tc.method, tc.path, "agent-token", "")
		assert.Equal(t, http.StatusForbidden, status, tc.path)
		assert.False(t, body.Success)
	}
}

func TestListWithFilter(t *testing.T) {
	env := newTestEnv(t)
	pendiente := true
	page := domain.NewPaginatedResponse([]domain.Noticia{{ID: 1}}, 2, 10, 11)
	env.noticias.On("List", mock.Anything, domain.NoticiaFilter{Pendiente: &pendiente}, domain.PaginationParams{Page: 2, PageSize: 10}).
		Return(page, nil)

	status, body := env.do(t, http.MethodGet, "/api/v1/noticias?pendiente=1&page=2&page_size=10", "admin-token", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)

	_, body = env.do(t, http.MethodGet, "/api/v1/noticias?pendiente=tal-vez", "admin-token", "")
	assert.False(t, body.Success)
}

func TestReassignMessageCarriesCount(t *testing.T) {
	env := newTestEnv(t)
	input := domain.ReassignInput{NoticiaIDs: []int64{1, 2, 3}, NuevoReporteroID: int64Ptr(7)}
	env.noticias.On("Reassign", mock.Anything, input).Return(int64(3), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/noticias/reasignar", strings.NewReader(`{"noticia_ids":[1,2,3],"nuevo_reportero_id":7}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set("Accept-Language", "en")
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	var body middleware.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "3 assignments reassigned", body.Message)
}

func TestInvalidIDAndUnknownMethod(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodGet, "/api/v1/noticias/abc", "agent-token", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPut, "/api/v1/noticias/5/tomar", "agent-token", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/noticias/mias", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLogin_RegistersDeviceBestEffort(t *testing.T) {
	env := newTestEnv(t)
	reportero := &domain.Reportero{ID: 7, Nombre: "Ana", Role: domain.RoleReportero}
	input := domain.LoginInput{Nombre: "Ana", Password: "secreto1", FCMToken: "device"}
	env.auth.On("Login", mock.Anything, input).
		Return(&domain.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), Reportero: reportero}, nil)
	env.reporteros.On("RegisterDevice", mock.Anything, reportero.Actor(), domain.RegisterDeviceInput{Token: "device"}).
		Return(nil, errors.New("firebase down"))

	status, body := env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"nombre":"Ana","password":"secreto1","fcm_token":"device"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "tok", data["ws_token"])
	env.reporteros.AssertExpectations(t)
}

func TestMetaExportUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.metas.On("Export", mock.Anything, 2026, 2).Return(nil, meta.ErrExportUnavailable)

	status, body := env.do(t, http.MethodPost, "/api/v1/metas/empleado-destacado/export?anio=2026&mes=2", "admin-token", "")
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, body.Success)
	assert.Equal(t, i18n.Translate("es", "meta.export_unavailable"), body.Message)
}

func TestClienteNoticiasEmptyList(t *testing.T) {
	env := newTestEnv(t)
	env.noticias.On("ListByCliente", mock.Anything, int64(3)).Return(nil, nil)

	_, body := env.do(t, http.MethodGet, "/api/v1/clientes/3/noticias", "agent-token", "")
	assert.True(t, body.Success)
	assert.Equal(t, []interface{}{}, body.Data)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
