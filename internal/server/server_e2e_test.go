package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/snowflake"
	auditrepository "github.com/quetzalpay/cobros/internal/audit/repository"
	auditservice "github.com/quetzalpay/cobros/internal/audit/service"
	chargedomain "github.com/quetzalpay/cobros/internal/charge/domain"
	chargerepository "github.com/quetzalpay/cobros/internal/charge/repository"
	chargeservice "github.com/quetzalpay/cobros/internal/charge/service"
	clientrepository "github.com/quetzalpay/cobros/internal/client/repository"
	clientservice "github.com/quetzalpay/cobros/internal/client/service"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFullServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	stmts := []string{
		`CREATE TABLE clientes (
			id BIGINT PRIMARY KEY,
			nombre TEXT NOT NULL,
			dpi TEXT NOT NULL UNIQUE,
			email TEXT,
			telefono TEXT,
			fecha_creacion DATETIME NOT NULL,
			fecha_actualizacion DATETIME NOT NULL
		)`,
		`CREATE TABLE cobros (
			id BIGINT PRIMARY KEY,
			cliente_id BIGINT NOT NULL,
			monto REAL NOT NULL,
			moneda TEXT NOT NULL,
			referencia_externa TEXT,
			estado TEXT NOT NULL DEFAULT 'PENDIENTE',
			fecha_creacion DATETIME NOT NULL,
			fecha_proceso DATETIME
		)`,
		`CREATE TABLE auditoria (
			id BIGINT PRIMARY KEY,
			evento TEXT NOT NULL,
			resumen_payload TEXT,
			usuario_sistema TEXT NOT NULL,
			fecha_creacion DATETIME NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatal(err)
		}
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}
	log := zap.NewNop()

	clienteSvc := clientservice.New(clientservice.Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Repo:  clientrepository.Provide(),
	})
	auditSvc := auditservice.NewService(auditservice.Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Repo:  auditrepository.Provide(),
	})
	cobroSvc := chargeservice.New(chargeservice.Params{
		DB:         conn,
		Log:        log,
		GenID:      node,
		Repo:       chargerepository.Provide(),
		ClienteSvc: clienteSvc,
		AuditSvc:   auditSvc,
	})

	return newTestServer(t, clienteSvc, cobroSvc), conn
}

// Exercises the whole lifecycle through the HTTP surface: alta de cliente,
// registro de cobros, procesamiento individual y por lote, y consulta.
func TestCobroLifecycle(t *testing.T) {
	s, conn := setupFullServer(t)

	w := doRequest(t, s, http.MethodPost, "/clientes", testAPIKey,
		`{"nombre": "Ana López", "dpi": "1234567890101", "email": "ana@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create cliente: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	clienteID, _ := decodeBody(t, w)["id"].(string)
	if clienteID == "" {
		t.Fatalf("cliente id missing in response: %s", w.Body.String())
	}

	registrar := func(monto float64) string {
		t.Helper()
		// the id goes back exactly as the API returned it: a JSON string
		body := fmt.Sprintf(`{"clienteId": %q, "monto": %v, "moneda": "GTQ"}`, clienteID, monto)
		w := doRequest(t, s, http.MethodPost, "/cobros", testAPIKey, body)
		if w.Code != http.StatusCreated {
			t.Fatalf("create cobro: expected 201, got %d (%s)", w.Code, w.Body.String())
		}
		got := decodeBody(t, w)
		if got["estado"] != string(chargedomain.EstadoPendiente) {
			t.Fatalf("new cobro should be pendiente: %v", got)
		}
		id, _ := got["id"].(string)
		return id
	}

	smallID := registrar(500)
	largeID := registrar(1500)

	// individual processing settles the small cobro
	w = doRequest(t, s, http.MethodPost, "/cobros/"+smallID+"/procesar", testAPIKey, "")
	if w.Code != http.StatusOK {
		t.Fatalf("process: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w); got["estado"] != string(chargedomain.EstadoProcesado) {
		t.Fatalf("expected PROCESADO, got: %v", got)
	}

	// a second attempt is a no-op
	w = doRequest(t, s, http.MethodPost, "/cobros/"+smallID+"/procesar", testAPIKey, "")
	if w.Code != http.StatusOK {
		t.Fatalf("reprocess: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w); got["message"] != "Cobro ya procesado" {
		t.Fatalf("expected idempotent message, got: %v", got)
	}

	// the lote settles the large cobro and counts the small one as-is
	loteBody := fmt.Sprintf(`{"cobrosIds": ["%s", "%s"]}`, smallID, largeID)
	w = doRequest(t, s, http.MethodPost, "/cobros/lotes/procesar", testAPIKey, loteBody)
	if w.Code != http.StatusOK {
		t.Fatalf("lote: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	lote := decodeBody(t, w)
	if lote["total"] != float64(2) || lote["procesados"] != float64(1) || lote["fallidos"] != float64(1) {
		t.Fatalf("unexpected lote result: %v", lote)
	}

	w = doRequest(t, s, http.MethodGet, "/clientes/"+clienteID+"/cobros", testAPIKey, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 cobros, got %d", len(list))
	}

	w = doRequest(t, s, http.MethodGet, "/clientes/"+clienteID+"/cobros?estado=FALLIDO", testAPIKey, "")
	if w.Code != http.StatusOK {
		t.Fatalf("filtered list: expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0]["id"] != largeID {
		t.Fatalf("expected only the fallido cobro, got: %v", list)
	}

	// one audit entry per settled cobro
	var count int64
	if err := conn.Raw(`SELECT COUNT(*) FROM auditoria`).Scan(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("expected 2 audit entries, got %d", count)
	}
	var eventos []string
	if err := conn.Raw(`SELECT evento FROM auditoria ORDER BY fecha_creacion`).Scan(&eventos).Error; err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{
		chargedomain.EventoProcesamiento:     false,
		chargedomain.EventoProcesamientoLote: false,
	}
	for _, evento := range eventos {
		want[evento] = true
	}
	for evento, seen := range want {
		if !seen {
			t.Fatalf("missing audit evento %s (got %v)", evento, eventos)
		}
	}
}
