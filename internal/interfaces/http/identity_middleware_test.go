package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
	apphttp "github.com/jhoicas/FarmaPOS-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/FarmaPOS-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testBranchID  = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "farmapos-test"
	testExpMin    = 60
)

// fakeResolver resuelve sucursal → empresa para validar overrides.
type fakeResolver struct {
	companyByBranch map[string]string
}

func (f *fakeResolver) CompanyOfBranch(_ context.Context, branchID string) (string, error) {
	companyID, ok := f.companyByBranch[branchID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return companyID, nil
}

// buildTestApp construye una aplicación Fiber mínima con el middleware de
// identidad y un handler que devuelve la identidad armada.
func buildTestApp() *fiber.App {
	app := fiber.New()
	resolver := &fakeResolver{companyByBranch: map[string]string{
		testBranchID: testCompanyID,
	}}
	app.Get("/protected",
		apphttp.IdentityMiddleware(testJWTSecret, resolver),
		func(c *fiber.Ctx) error {
			id := apphttp.IdentityFromCtx(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"user_id":           id.UserID,
				"role":              string(id.Role),
				"acting_company_id": id.ActingCompanyID,
				"acting_branch_id":  id.ActingBranchID,
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, testBranchID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected con los headers dados.
func doRequest(t *testing.T, app *fiber.App, authHeader string, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests IdentityMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: sin token → 401.
func TestIdentityMiddleware_SinToken(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

// Caso 2: token mal formado → 401.
func TestIdentityMiddleware_TokenInvalido(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer no-es-un-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: token válido → la identidad queda en Locals.
func TestIdentityMiddleware_IdentidadCompleta(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenForRole(t, string(authz.RoleCashier)), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "cashier", body["role"])
}

// Caso 4: rol desconocido en el token → 401.
func TestIdentityMiddleware_RolDesconocido(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenForRole(t, "root"), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: superadmin con override de empresa → la identidad lo transporta.
func TestIdentityMiddleware_OverrideDeEmpresa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenForRole(t, string(authz.RoleSuperAdmin)), map[string]string{
		apphttp.HeaderActingCompany: testCompanyID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, testCompanyID, body["acting_company_id"])
}

// Caso 6: override de sucursal sin empresa → 400.
func TestIdentityMiddleware_OverrideDeSucursalSinEmpresa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenForRole(t, string(authz.RoleSuperAdmin)), map[string]string{
		apphttp.HeaderActingBranch: testBranchID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_OVERRIDE", body["code"])
}

// Caso 7: la sucursal de override no pertenece a la empresa indicada → 400.
func TestIdentityMiddleware_OverrideInconsistente(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenForRole(t, string(authz.RoleSuperAdmin)), map[string]string{
		apphttp.HeaderActingCompany: "otra-empresa",
		apphttp.HeaderActingBranch:  testBranchID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Caso 8: override coherente de empresa + sucursal → pasa.
func TestIdentityMiddleware_OverrideCoherente(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenForRole(t, string(authz.RoleSuperAdmin)), map[string]string{
		apphttp.HeaderActingCompany: testCompanyID,
		apphttp.HeaderActingBranch:  testBranchID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, testBranchID, body["acting_branch_id"])
}

// Caso 9: un cajero no puede acotar su vista con headers de override → 403.
func TestIdentityMiddleware_OverrideDeRolOperativo(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenForRole(t, string(authz.RoleCashier)), map[string]string{
		apphttp.HeaderActingCompany: testCompanyID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
