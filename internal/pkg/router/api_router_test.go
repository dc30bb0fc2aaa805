package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/app/models"
	"github.com/ManuelReschke/PayPlan/app/repository"
	"github.com/ManuelReschke/PayPlan/internal/pkg/accounts"
	"github.com/ManuelReschke/PayPlan/internal/pkg/cache"
	"github.com/ManuelReschke/PayPlan/internal/pkg/config"
	"github.com/ManuelReschke/PayPlan/internal/pkg/database"
)

type testAPI struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

type jsonObject = map[string]interface{}

func newTestAPI(t *testing.T, rateLimit int) *testAPI {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	repository.InitializeFactory(db)
	cache.SetClient(nil)

	app := fiber.New(fiber.Config{StrictRouting: true})
	InstallRouter(app, &config.Config{RateLimitMax: rateLimit, RateLimitWindow: time.Minute})
	return &testAPI{t: t, app: app, db: db}
}

func (a *testAPI) register(username string) *accounts.Registration {
	a.t.Helper()
	reg, err := accounts.NewService(a.db).Register(context.Background(), username, username+"@example.com", "secret123")
	require.NoError(a.t, err)
	return reg
}

// do sends a JSON request. An empty token sends no Authorization header.
func (a *testAPI) do(method, path, token string, body interface{}) *http.Response {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

// call sends a request and decodes the JSON object in the response.
func (a *testAPI) call(method, path, token string, body interface{}, wantStatus int) jsonObject {
	a.t.Helper()
	resp := a.do(method, path, token, body)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	require.Equal(a.t, wantStatus, resp.StatusCode, "%s %s: %s", method, path, raw)
	if len(raw) == 0 {
		return nil
	}
	var out jsonObject
	require.NoError(a.t, json.Unmarshal(raw, &out))
	return out
}

func idOf(obj jsonObject) uint {
	return uint(obj["id"].(float64))
}

func path(route string, id uint) string {
	return fmt.Sprintf("/api%s%d/", route, id)
}

func payerBody(planID uint, venmo string) jsonObject {
	return jsonObject{
		"first_name":     "John",
		"last_name":      "Doe",
		"payment_plan":   planID,
		"venmo_username": venmo,
		"email":          "john@doe.com",
		"phone_number":   "5129874563",
	}
}

// seeded is one account with a plan, payment, payer and transaction, all
// created through the API.
type seeded struct {
	reg         *accounts.Registration
	token       string
	plan        uint
	payment     uint
	payer       uint
	transaction uint
}

func (a *testAPI) seed(username string) seeded {
	a.t.Helper()
	reg := a.register(username)
	token := reg.Token.Key

	plan := a.call("POST", "/api/paymentplan/create/", token, jsonObject{"option_name": username + " plan"}, fiber.StatusCreated)
	payment := a.call("POST", "/api/payment/create/", token, jsonObject{
		"date_due":     "2017-03-10",
		"amount_due":   100,
		"payment_plan": idOf(plan),
	}, fiber.StatusCreated)
	payer := a.call("POST", "/api/payer/create/", token, payerBody(idOf(plan), username+"_venmo"), fiber.StatusCreated)
	transaction := a.call("POST", "/api/transaction/create/", token, jsonObject{
		"date":   "2017-03-10T12:00:00Z",
		"amount": "25.5",
		"payer":  idOf(payer),
	}, fiber.StatusCreated)

	return seeded{
		reg:         reg,
		token:       token,
		plan:        idOf(plan),
		payment:     idOf(payment),
		payer:       idOf(payer),
		transaction: idOf(transaction),
	}
}

func TestPing(t *testing.T) {
	api := newTestAPI(t, 100)

	body := api.call("GET", "/api/", "", nil, fiber.StatusOK)
	assert.Equal(t, "Hello from api", body["message"])

	resp := api.do("GET", "/api/user", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestObtainToken(t *testing.T) {
	api := newTestAPI(t, 100)
	reg := api.register("alice")

	first := api.call("POST", "/api/auth/", "", jsonObject{"username": "alice", "password": "secret123"}, fiber.StatusOK)
	second := api.call("POST", "/api/auth/", "", jsonObject{"username": "alice", "password": "secret123"}, fiber.StatusOK)
	assert.Equal(t, reg.Token.Key, first["token"])
	assert.Equal(t, first["token"], second["token"])

	bad := api.call("POST", "/api/auth/", "", jsonObject{"username": "alice", "password": "wrong"}, fiber.StatusBadRequest)
	assert.Equal(t, "invalid_credentials", bad["error"])

	missing := api.call("POST", "/api/auth/", "", jsonObject{"username": "alice"}, fiber.StatusBadRequest)
	assert.Equal(t, "validation_failed", missing["error"])
	assert.Contains(t, missing["fields"], "password")

	form := url.Values{"username": {"alice"}, "password": {"secret123"}}
	req := httptest.NewRequest("POST", "/api/auth/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, 100)
	api.register("alice")

	routes := []struct{ method, path string }{
		{"GET", "/api/user/"},
		{"GET", "/api/user/survey-code/qr/"},
		{"POST", "/api/paymentplan/create/"},
		{"GET", "/api/paymentplan/1/"},
		{"POST", "/api/payment/create/"},
		{"DELETE", "/api/payment/1/"},
		{"POST", "/api/transaction/create/"},
		{"PATCH", "/api/transaction/1/"},
		{"PUT", "/api/payer/1/"},
	}
	for _, r := range routes {
		body := api.call(r.method, r.path, "", nil, fiber.StatusUnauthorized)
		assert.Equal(t, "unauthorized", body["error"], "%s %s", r.method, r.path)

		api.call(r.method, r.path, "not-a-real-token", nil, fiber.StatusUnauthorized)
	}
}

// Account "alice" creates a plan, an anonymous payer enrolls with alice's
// survey code and shows up in alice's profile.
func TestEnrollmentScenario(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.register("alice")
	token := alice.Token.Key

	plan := api.call("POST", "/api/paymentplan/create/", token, jsonObject{"option_name": "Plan A"}, fiber.StatusCreated)
	assert.Equal(t, "Plan A", plan["option_name"])
	assert.NotContains(t, plan, "user_profile")
	assert.NotContains(t, plan, "profile")

	body := payerBody(idOf(plan), "")
	body["survey_code"] = alice.Profile.SurveyCode
	payer := api.call("POST", "/api/payer/create/", "", body, fiber.StatusCreated)
	assert.NotContains(t, payer, "survey_code")
	assert.Nil(t, payer["venmo_username"])
	assert.Equal(t, "0.00", payer["total_paid"])

	profile := api.call("GET", "/api/user/", token, nil, fiber.StatusOK)
	assert.Equal(t, alice.Profile.SurveyCode, profile["survey_code"])
	assert.Equal(t, float64(alice.Account.ID), profile["user"])
	payers := profile["payers"].([]interface{})
	require.Len(t, payers, 1)
	assert.Equal(t, float64(idOf(payer)), payers[0].(jsonObject)["id"])
	plans := profile["payment_plans"].([]interface{})
	require.Len(t, plans, 1)
	assert.Equal(t, "Plan A", plans[0].(jsonObject)["option_name"])
}

func TestPayerCreationMatrix(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.register("alice")
	bob := api.register("bob")
	alicePlan := idOf(api.call("POST", "/api/paymentplan/create/", alice.Token.Key, jsonObject{"option_name": "A"}, fiber.StatusCreated))
	bobPlan := idOf(api.call("POST", "/api/paymentplan/create/", bob.Token.Key, jsonObject{"option_name": "B"}, fiber.StatusCreated))

	// Owner: a survey code in the payload is ignored.
	body := payerBody(alicePlan, "owner_made")
	body["survey_code"] = bob.Profile.SurveyCode
	api.call("POST", "/api/payer/create/", alice.Token.Key, body, fiber.StatusCreated)

	// Anonymous with a valid code.
	body = payerBody(bobPlan, "enrolled")
	body["survey_code"] = bob.Profile.SurveyCode
	api.call("POST", "/api/payer/create/", "", body, fiber.StatusCreated)

	// Anonymous with a code whose profile does not own the plan.
	body = payerBody(alicePlan, "wrong_plan")
	body["survey_code"] = bob.Profile.SurveyCode
	rejected := api.call("POST", "/api/payer/create/", "", body, fiber.StatusBadRequest)
	assert.Contains(t, rejected["fields"], "payment_plan")

	// Anonymous with an unknown code.
	body = payerBody(alicePlan, "unknown_code")
	body["survey_code"] = "ZZZZZZZZZZ"
	notFound := api.call("POST", "/api/payer/create/", "", body, fiber.StatusNotFound)
	assert.Equal(t, "not_found", notFound["error"])

	// Anonymous without a code.
	api.call("POST", "/api/payer/create/", "", payerBody(alicePlan, "no_code"), fiber.StatusNotFound)

	// An invalid token is never treated as anonymous.
	body = payerBody(alicePlan, "bad_token")
	body["survey_code"] = alice.Profile.SurveyCode
	api.call("POST", "/api/payer/create/", "0000000000000000000000000000000000000000", body, fiber.StatusUnauthorized)

	var count int64
	require.NoError(t, api.db.Model(&models.Payer{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	aliceProfile := api.call("GET", "/api/user/", alice.Token.Key, nil, fiber.StatusOK)
	bobProfile := api.call("GET", "/api/user/", bob.Token.Key, nil, fiber.StatusOK)
	require.Len(t, aliceProfile["payers"], 1)
	require.Len(t, bobProfile["payers"], 1)
	assert.Equal(t, "owner_made", aliceProfile["payers"].([]interface{})[0].(jsonObject)["venmo_username"])
	assert.Equal(t, "enrolled", bobProfile["payers"].([]interface{})[0].(jsonObject)["venmo_username"])
}

func TestCrossProfileAccessIsNotFound(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.seed("alice")
	bob := api.seed("bob")

	resources := []struct {
		route string
		id    uint
	}{
		{"/paymentplan/", bob.plan},
		{"/payment/", bob.payment},
		{"/payer/", bob.payer},
		{"/transaction/", bob.transaction},
	}
	for _, r := range resources {
		p := path(r.route, r.id)
		api.call("GET", p, alice.token, nil, fiber.StatusNotFound)
		api.call("PATCH", p, alice.token, jsonObject{}, fiber.StatusNotFound)
		api.call("PUT", p, alice.token, jsonObject{}, fiber.StatusNotFound)
		api.call("DELETE", p, alice.token, nil, fiber.StatusNotFound)
		api.call("GET", p, bob.token, nil, fiber.StatusOK)
	}

	api.call("GET", "/api/payment/999999/", alice.token, nil, fiber.StatusNotFound)
	api.call("GET", "/api/payment/abc/", alice.token, nil, fiber.StatusNotFound)
}

func TestForeignReferencesAreRejected(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.seed("alice")
	bob := api.seed("bob")

	res := api.call("POST", "/api/payment/create/", alice.token, jsonObject{
		"date_due": "2017-04-10", "amount_due": "10.00", "payment_plan": bob.plan,
	}, fiber.StatusBadRequest)
	fields := res["fields"].(jsonObject)
	assert.Equal(t, []interface{}{fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", bob.plan)}, fields["payment_plan"])

	res = api.call("POST", "/api/payer/create/", alice.token, payerBody(bob.plan, "sneaky"), fiber.StatusBadRequest)
	assert.Contains(t, res["fields"], "payment_plan")

	res = api.call("POST", "/api/transaction/create/", alice.token, jsonObject{
		"date": "2017-04-10", "amount": "10.00", "payer": bob.payer,
	}, fiber.StatusBadRequest)
	assert.Contains(t, res["fields"], "payer")

	// Moving an own record under a foreign parent is rejected too.
	api.call("PATCH", path("/payment/", alice.payment), alice.token, jsonObject{"payment_plan": bob.plan}, fiber.StatusBadRequest)
	api.call("PATCH", path("/payer/", alice.payer), alice.token, jsonObject{"payment_plan": bob.plan}, fiber.StatusBadRequest)
	api.call("PATCH", path("/transaction/", alice.transaction), alice.token, jsonObject{"payer": bob.payer}, fiber.StatusBadRequest)
}

func TestDeletePlanCascades(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.seed("alice")

	api.call("DELETE", path("/paymentplan/", alice.plan), alice.token, nil, fiber.StatusNoContent)

	api.call("GET", path("/paymentplan/", alice.plan), alice.token, nil, fiber.StatusNotFound)
	api.call("GET", path("/payment/", alice.payment), alice.token, nil, fiber.StatusNotFound)
	api.call("GET", path("/payer/", alice.payer), alice.token, nil, fiber.StatusNotFound)
	api.call("GET", path("/transaction/", alice.transaction), alice.token, nil, fiber.StatusNotFound)

	for _, model := range []interface{}{&models.Payment{}, &models.Payer{}, &models.Transaction{}} {
		var count int64
		require.NoError(t, api.db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestDeletePayerCascadesTransactions(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.seed("alice")

	api.call("DELETE", path("/payer/", alice.payer), alice.token, nil, fiber.StatusNoContent)
	api.call("GET", path("/transaction/", alice.transaction), alice.token, nil, fiber.StatusNotFound)
	api.call("GET", path("/paymentplan/", alice.plan), alice.token, nil, fiber.StatusOK)
}

func TestPlanRoundTrip(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.seed("alice")

	plan := api.call("GET", path("/paymentplan/", alice.plan), alice.token, nil, fiber.StatusOK)
	assert.Equal(t, "alice plan", plan["option_name"])
	payments := plan["payments"].([]interface{})
	require.Len(t, payments, 1)
	payment := payments[0].(jsonObject)
	assert.Equal(t, float64(alice.payment), payment["id"])
	assert.Equal(t, "100.00", payment["amount_due"])
	assert.Equal(t, "2017-03-10T00:00:00Z", payment["date_due"])

	transaction := api.call("GET", path("/transaction/", alice.transaction), alice.token, nil, fiber.StatusOK)
	assert.Equal(t, "25.50", transaction["amount"])
	assert.Equal(t, float64(alice.payer), transaction["payer"])

	payer := api.call("GET", path("/payer/", alice.payer), alice.token, nil, fiber.StatusOK)
	require.Len(t, payer["transactions"], 1)
	assert.NotContains(t, payer, "profile")
	assert.NotContains(t, payer, "user_profile")
}

func TestPutRequiresEveryFieldPatchDoesNot(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.seed("alice")
	p := path("/paymentplan/", alice.plan)

	res := api.call("PUT", p, alice.token, jsonObject{"description": "monthly"}, fiber.StatusBadRequest)
	assert.Equal(t, []interface{}{"This field is required."}, res["fields"].(jsonObject)["option_name"])

	patched := api.call("PATCH", p, alice.token, jsonObject{"description": "monthly"}, fiber.StatusOK)
	assert.Equal(t, "alice plan", patched["option_name"])
	assert.Equal(t, "monthly", patched["description"])

	put := api.call("PUT", p, alice.token, jsonObject{"option_name": "Renamed"}, fiber.StatusOK)
	assert.Equal(t, "Renamed", put["option_name"])

	payer := api.call("PATCH", path("/payer/", alice.payer), alice.token, jsonObject{
		"total_paid":      "25.50",
		"last_pay_date":   "2017-03-10T12:00:00Z",
		"next_pay_amount": nil,
	}, fiber.StatusOK)
	assert.Equal(t, "25.50", payer["total_paid"])
	assert.Equal(t, "2017-03-10T12:00:00Z", payer["last_pay_date"])
	assert.Nil(t, payer["next_pay_amount"])
	assert.Equal(t, "John", payer["first_name"])
}

func TestInvalidAmountsAreRejected(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.seed("alice")

	for _, amount := range []interface{}{"1.234", "12345678901.00", "abc"} {
		res := api.call("POST", "/api/payment/create/", alice.token, jsonObject{
			"date_due": "2017-04-10", "amount_due": amount, "payment_plan": alice.plan,
		}, fiber.StatusBadRequest)
		assert.Contains(t, res["fields"], "amount_due", "amount %v", amount)
	}
}

func TestVenmoUsernameIsUnique(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.seed("alice")

	res := api.call("POST", "/api/payer/create/", alice.token, payerBody(alice.plan, "alice_venmo"), fiber.StatusBadRequest)
	assert.Equal(t, []interface{}{"payer with this venmo username already exists."}, res["fields"].(jsonObject)["venmo_username"])

	// Re-saving the same payer keeps its own username.
	api.call("PATCH", path("/payer/", alice.payer), alice.token, jsonObject{"venmo_username": "alice_venmo"}, fiber.StatusOK)
}

func TestProfileOmitsWalletTokens(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.seed("alice")

	auth := "secret-wallet-token"
	require.NoError(t, api.db.Model(&models.Profile{}).
		Where("id = ?", alice.reg.Profile.ID).
		Updates(map[string]interface{}{"venmo_auth_token": auth, "venmo_refresh_token": auth}).Error)

	resp := api.do("GET", "/api/user/", alice.token, nil)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(raw), auth)
	assert.NotContains(t, string(raw), "venmo_auth_token")
	assert.NotContains(t, string(raw), "venmo_refresh_token")
}

func TestSurveyQRCode(t *testing.T) {
	api := newTestAPI(t, 100)
	alice := api.register("alice")

	resp := api.do("GET", "/api/user/survey-code/qr/", alice.Token.Key, nil)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))
}

func TestRateLimit(t *testing.T) {
	api := newTestAPI(t, 2)

	api.call("GET", "/api/", "", nil, fiber.StatusOK)
	api.call("GET", "/api/", "", nil, fiber.StatusOK)
	res := api.call("GET", "/api/", "", nil, fiber.StatusTooManyRequests)
	assert.Equal(t, "too_many_requests", res["error"])
}
