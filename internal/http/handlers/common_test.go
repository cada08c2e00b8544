package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pgat/internal/domain"
)

func ejecutar(handler gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x/:id", handler)
	r.GET("/x", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRespondDomainErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ValidationError{Msg: "datos inválidos"}, http.StatusBadRequest},
		{domain.NotFoundError{Resource: "oferta"}, http.StatusNotFound},
		{domain.ConflictError{Resource: "oferta", Current: "activa"}, http.StatusBadRequest},
		{domain.InternalError{Err: errors.New("se cayó la base")}, http.StatusInternalServerError},
		{errors.New("sin clasificar"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		w := ejecutar(func(gc *gin.Context) { RespondDomainError(gc, c.err) }, "/x")
		if w.Code != c.status {
			t.Fatalf("%T: status = %d, want %d", c.err, w.Code, c.status)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("respuesta no es JSON: %v", err)
		}
		if body["success"] != false {
			t.Fatalf("success debe ser false: %v", body)
		}
	}
}

func TestRespondDomainErrorConflictoNombraEstado(t *testing.T) {
	w := ejecutar(func(gc *gin.Context) {
		RespondDomainError(gc, domain.ConflictError{Resource: "oferta", Current: "cancelada"})
	}, "/x")
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if body["message"] != "la oferta se encuentra en estado 'cancelada'" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestRespondDomainErrorInternoNoFiltraDetalle(t *testing.T) {
	w := ejecutar(func(gc *gin.Context) {
		RespondDomainError(gc, domain.InternalError{Err: errors.New("pq: connection refused host=10.0.0.5")})
	}, "/x")
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if body["message"] != "ocurrió un error interno" {
		t.Fatalf("el detalle interno no debe salir al cliente: %v", body["message"])
	}
}

func TestParseIDParam(t *testing.T) {
	var got int64
	var ok bool
	w := ejecutar(func(gc *gin.Context) {
		got, ok = ParseIDParam(gc)
		if ok {
			gc.Status(http.StatusOK)
		}
	}, "/x/42")
	if !ok || got != 42 || w.Code != http.StatusOK {
		t.Fatalf("id = %d ok = %v status = %d", got, ok, w.Code)
	}

	w = ejecutar(func(gc *gin.Context) {
		_, ok = ParseIDParam(gc)
	}, "/x/cero")
	if ok || w.Code != http.StatusBadRequest {
		t.Fatalf("un id no numérico debe responder 400, status = %d", w.Code)
	}

	w = ejecutar(func(gc *gin.Context) {
		_, ok = ParseIDParam(gc)
	}, "/x/-1")
	if ok || w.Code != http.StatusBadRequest {
		t.Fatalf("un id negativo debe responder 400, status = %d", w.Code)
	}
}

func TestParseOptionalID(t *testing.T) {
	var id int64
	var err error
	ejecutar(func(gc *gin.Context) {
		id, err = ParseOptionalID(gc, "escuela_id")
		gc.Status(http.StatusOK)
	}, "/x?escuela_id=7")
	if err != nil || id != 7 {
		t.Fatalf("id = %d err = %v", id, err)
	}

	ejecutar(func(gc *gin.Context) {
		id, err = ParseOptionalID(gc, "escuela_id")
		gc.Status(http.StatusOK)
	}, "/x")
	if err != nil || id != 0 {
		t.Fatalf("un filtro ausente vale cero: id = %d err = %v", id, err)
	}

	ejecutar(func(gc *gin.Context) {
		id, err = ParseOptionalID(gc, "escuela_id")
		gc.Status(http.StatusOK)
	}, "/x?escuela_id=abc")
	if !domain.IsValidation(err) {
		t.Fatalf("un filtro no numérico es error de validación, got %v", err)
	}
}
