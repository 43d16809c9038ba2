package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/application/inventory"
	"github.com/jhoicas/bodegas-api/internal/application/usecase"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
	"github.com/jhoicas/bodegas-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bodegas-api/internal/interfaces/http"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app   *fiber.App
	store *memory.Store
	wh    entity.Warehouse
	box   entity.Product
}

// buildTestApp arma el router completo sobre el almacén en memoria:
// bodega "Central" (capacidad 100, empleado 1) con 5 cajas de tamaño 10.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	capacity := decimal.NewFromInt(100)
	size := decimal.NewFromInt(10)
	env := &testEnv{store: store}
	env.wh = store.AddWarehouse(1, "Central", &capacity)
	env.box = store.AddProduct("Caja", &size)
	store.SetStock(env.wh.ID, env.box.ID, 5)

	log := logger.Nop()
	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		WarehouseUC: usecase.NewWarehouseUseCase(store.Warehouses(), nil, log),
		StockUC:     inventory.NewStockUseCase(store, nil),
		InboundUC:   inventory.NewInboundUseCase(store, nil),
		OutboundUC:  inventory.NewOutboundUseCase(store, nil),
		Log:         log,
	})
	return env
}

// doRequest lanza la petición con body JSON opcional y devuelve estado y cuerpo.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e), "cuerpo: %s", raw)
	return e
}

func intp(v int) *int { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_BodegasPorEmpleado(t *testing.T) {
	env := buildTestApp(t)

	status, raw := doRequest(t, env.app, http.MethodGet, "/api/warehouse/1", nil)
	require.Equal(t, http.StatusOK, status)
	var list []dto.WarehouseResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Central", list[0].Name)
	require.NotNil(t, list[0].Capacity)
	assert.True(t, list[0].Capacity.Equal(decimal.NewFromInt(100)))

	status, raw = doRequest(t, env.app, http.MethodGet, "/api/warehouse/99", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))

	status, raw = doRequest(t, env.app, http.MethodGet, "/api/warehouse/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeError(t, raw).Code)
}

func TestRouter_StockSetQuantityYCapacidad(t *testing.T) {
	env := buildTestApp(t)
	path := "/api/stock/1/1?empId=1"

	status, raw := doRequest(t, env.app, http.MethodPut, path, dto.SetStockRequest{Quantity: intp(8)})
	require.Equal(t, http.StatusOK, status, string(raw))
	var out dto.SetStockResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 5, out.OldQuantity)
	assert.Equal(t, 8, out.NewQuantity)

	status, raw = doRequest(t, env.app, http.MethodPut, path, dto.SetStockRequest{Quantity: intp(11)})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CAPACITY_EXCEEDED", decodeError(t, raw).Code)

	q, _ := env.store.Quantity(env.wh.ID, env.box.ID)
	assert.Equal(t, 8, q)
}

func TestRouter_MutacionSinEmpleadoEsValidacion(t *testing.T) {
	env := buildTestApp(t)

	status, raw := doRequest(t, env.app, http.MethodPut, "/api/stock/1/1", dto.SetStockRequest{Quantity: intp(1)})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeError(t, raw).Code)
}

func TestRouter_CuerpoInvalido(t *testing.T) {
	env := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/inbound/full/1?empId=1", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, raw).Code)
}

func TestRouter_InicializarYBorrarStock(t *testing.T) {
	env := buildTestApp(t)
	size := decimal.NewFromInt(1)

	status, raw := doRequest(t, env.app, http.MethodPost, "/api/stock/initialize/1?empId=1",
		dto.InitializeStockRequest{ProductName: "Tornillo", Quantity: 3, Size: &size})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var init dto.InitializeStockResponse
	require.NoError(t, json.Unmarshal(raw, &init))
	assert.Equal(t, 3, init.Quantity)

	status, raw = doRequest(t, env.app, http.MethodGet, "/api/stock/1", nil)
	require.Equal(t, http.StatusOK, status)
	var items []dto.StockItemResponse
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 2)

	// con cantidad distinta de cero no se puede borrar
	status, raw = doRequest(t, env.app, http.MethodDelete, "/api/stock/1/1?empId=1", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decodeError(t, raw).Code)

	status, _ = doRequest(t, env.app, http.MethodPut, "/api/stock/1/1?empId=1", dto.SetStockRequest{Quantity: intp(0)})
	require.Equal(t, http.StatusOK, status)
	status, _ = doRequest(t, env.app, http.MethodDelete, "/api/stock/1/1?empId=1", nil)
	assert.Equal(t, http.StatusOK, status)

	status, raw = doRequest(t, env.app, http.MethodDelete, "/api/stock/1/1?empId=1", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_EntradaCicloCompleto(t *testing.T) {
	env := buildTestApp(t)

	status, raw := doRequest(t, env.app, http.MethodPost, "/api/inbound/full/1?empId=1", dto.CreateInboundRequest{
		Supplier: "ACME",
		Lines:    []dto.InboundLineRequest{{ProductID: env.box.ID, Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var created dto.CreateInboundResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	require.Len(t, created.LineIDs, 1)

	status, raw = doRequest(t, env.app, http.MethodGet, "/api/inbound/1", nil)
	require.Equal(t, http.StatusOK, status)
	var orders []dto.InboundOrderResponse
	require.NoError(t, json.Unmarshal(raw, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "ACME", orders[0].Supplier)

	status, raw = doRequest(t, env.app, http.MethodPut, "/api/inbound/1?empId=1",
		map[string]any{"supplier": "Proveedor Nuevo", "received_date": "2026-01-15"})
	require.Equal(t, http.StatusOK, status, string(raw))

	status, raw = doRequest(t, env.app, http.MethodGet, "/api/inbound/order/1", nil)
	require.Equal(t, http.StatusOK, status)
	var order dto.InboundOrderResponse
	require.NoError(t, json.Unmarshal(raw, &order))
	assert.Equal(t, "Proveedor Nuevo", order.Supplier)
	assert.Equal(t, "2026-01-15", order.ReceivedDate.Format(dto.DateLayout))
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Caja", order.Lines[0].ProductName)

	// 7 cajas * 10 = 70; pasar la línea a 10 cajas deja 13 * 10 = 130 > 100
	status, raw = doRequest(t, env.app, http.MethodPut, "/api/inbound/detail/1?empId=1",
		dto.UpdateInboundLineRequest{ProductID: env.box.ID, Quantity: intp(10)})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CAPACITY_EXCEEDED", decodeError(t, raw).Code)

	status, raw = doRequest(t, env.app, http.MethodDelete, "/api/inbound/detail/1?empId=1", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	var deleted dto.DeleteLineResponse
	require.NoError(t, json.Unmarshal(raw, &deleted))
	assert.True(t, deleted.OrderDeleted)

	status, raw = doRequest(t, env.app, http.MethodGet, "/api/inbound/order/1", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)

	q, _ := env.store.Quantity(env.wh.ID, env.box.ID)
	assert.Equal(t, 5, q)
}

func TestRouter_EntradaExcedeCapacidad(t *testing.T) {
	env := buildTestApp(t)

	status, raw := doRequest(t, env.app, http.MethodPost, "/api/inbound/full/1?empId=1", dto.CreateInboundRequest{
		Lines: []dto.InboundLineRequest{{ProductID: env.box.ID, Quantity: 6}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CAPACITY_EXCEEDED", decodeError(t, raw).Code)

	status, raw = doRequest(t, env.app, http.MethodGet, "/api/inbound/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de salida
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SalidaStockInsuficiente(t *testing.T) {
	env := buildTestApp(t)

	status, raw := doRequest(t, env.app, http.MethodPost, "/api/outbound/full/1?empId=1", dto.CreateOutboundRequest{
		Address: "Calle 1",
		Lines:   []dto.OutboundLineRequest{{ProductID: env.box.ID, Quantity: 6}},
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, raw).Code)
}

func TestRouter_SalidaEditarYBorrar(t *testing.T) {
	env := buildTestApp(t)

	status, raw := doRequest(t, env.app, http.MethodPost, "/api/outbound/full/1?empId=1", dto.CreateOutboundRequest{
		Address: "Calle 1",
		Lines:   []dto.OutboundLineRequest{{ProductName: "caja", Quantity: 3}},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = doRequest(t, env.app, http.MethodPut, "/api/outbound/detail/1?empId=1",
		dto.UpdateOutboundLineRequest{Quantity: intp(1)})
	require.Equal(t, http.StatusOK, status, string(raw))
	q, _ := env.store.Quantity(env.wh.ID, env.box.ID)
	assert.Equal(t, 4, q)

	status, raw = doRequest(t, env.app, http.MethodGet, "/api/outbound/detail/1", nil)
	require.Equal(t, http.StatusOK, status)
	var lines []dto.OrderLineResponse
	require.NoError(t, json.Unmarshal(raw, &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	status, _ = doRequest(t, env.app, http.MethodDelete, "/api/outbound/detail/1?empId=1", nil)
	require.Equal(t, http.StatusOK, status)
	q, _ = env.store.Quantity(env.wh.ID, env.box.ID)
	assert.Equal(t, 5, q)

	status, raw = doRequest(t, env.app, http.MethodGet, "/api/outbound/order/1", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)

	status, raw = doRequest(t, env.app, http.MethodDelete, "/api/outbound/detail/1?empId=1", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)
}
