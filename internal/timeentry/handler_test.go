package timeentry_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"

	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/internal/employee"
	employeePostgres "github.com/frahmantamala/ponto-eletronico/internal/employee/postgres"
	"github.com/frahmantamala/ponto-eletronico/internal/timeentry"
	timeentryPostgres "github.com/frahmantamala/ponto-eletronico/internal/timeentry/postgres"
	"github.com/frahmantamala/ponto-eletronico/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TimeEntry Handler Integration", func() {
	var (
		router        *chi.Mux
		funcionarioID int64
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db := newTestDB()

		employees := employee.NewService(employeePostgres.NewEmployeeRepository(db), slogger)
		entries := timeentry.NewService(timeentryPostgres.NewTimeEntryRepository(db), slogger)
		ledger := timeentry.NewLedger(entries, employees, nil, slogger)
		handler := timeentry.NewHandler(transport.NewBaseHandler(slogger), ledger, internal.PaginationConfig{PageSize: 2, MaxPageSize: 5})

		funcionarioID = seedEmployee(context.Background(), employees, "joao@ponto.com", "11144477735")

		router = chi.NewRouter()
		router.Get("/api/lancamentos/funcionario/{funcionarioId}", handler.ListByFuncionario)
		router.Get("/api/lancamentos/{id}", handler.Get)
		router.Post("/api/lancamentos", handler.Create)
		router.Put("/api/lancamentos/{id}", handler.Update)
		router.Delete("/api/lancamentos/{id}", handler.Delete)
	})

	send := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var payload []byte
		if body != nil {
			var err error
			payload, err = json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
		}
		req := httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	entry := func(tipo string) map[string]interface{} {
		return map[string]interface{}{
			"data":          "2024-01-01 08:00:00",
			"tipo":          tipo,
			"descricao":     "D",
			"localizacao":   "L",
			"funcionarioId": funcionarioID,
		}
	}

	It("creates an entry and wraps it in the envelope", func() {
		w := send(http.MethodPost, "/api/lancamentos", entry("INICIO_TRABALHO"))
		Expect(w.Code).To(Equal(http.StatusOK))

		body := decode(w)
		Expect(body["errors"]).To(BeEmpty())
		data := body["data"].(map[string]interface{})
		Expect(data["id"]).To(BeNumerically(">", 0))
		Expect(data["data"]).To(Equal("2024-01-01 08:00:00"))
		Expect(data["tipo"]).To(Equal("INICIO_TRABALHO"))
		Expect(data["funcionarioId"]).To(BeNumerically("==", funcionarioID))
	})

	It("answers 400 with the error list for an unknown employee", func() {
		payload := entry("INICIO_TRABALHO")
		payload["funcionarioId"] = 9999

		w := send(http.MethodPost, "/api/lancamentos", payload)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		body := decode(w)
		Expect(body["data"]).To(BeNil())
		Expect(body["errors"]).To(ConsistOf("Funcionário não encontrado. ID inexistente"))
	})

	It("answers 400 for a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/lancamentos", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("deletes an entry and then fails to read it", func() {
		created := decode(send(http.MethodPost, "/api/lancamentos", entry("INICIO_TRABALHO")))
		id := int64(created["data"].(map[string]interface{})["id"].(float64))
		path := "/api/lancamentos/" + strconv.FormatInt(id, 10)

		w := send(http.MethodDelete, path, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["errors"]).To(BeEmpty())

		w = send(http.MethodGet, path, nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["errors"]).To(ConsistOf("Lançamento não encontrado para o id " + strconv.FormatInt(id, 10)))
	})

	It("answers 400 when deleting a missing entry", func() {
		w := send(http.MethodDelete, "/api/lancamentos/123", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["errors"]).To(ConsistOf("Erro ao remover lançamento. Registro não encontrado para o id 123"))
	})

	It("updates an entry", func() {
		created := decode(send(http.MethodPost, "/api/lancamentos", entry("INICIO_TRABALHO")))
		id := int64(created["data"].(map[string]interface{})["id"].(float64))

		w := send(http.MethodPut, "/api/lancamentos/"+strconv.FormatInt(id, 10), entry("TERMINO_TRABALHO"))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["data"].(map[string]interface{})["tipo"]).To(Equal("TERMINO_TRABALHO"))
	})

	Describe("listing", func() {
		listPath := func(query string) string {
			return "/api/lancamentos/funcionario/" + strconv.FormatInt(funcionarioID, 10) + query
		}

		BeforeEach(func() {
			for _, tipo := range []string{"INICIO_TRABALHO", "INICIO_ALMOCO", "TERMINO_ALMOCO"} {
				Expect(send(http.MethodPost, "/api/lancamentos", entry(tipo)).Code).To(Equal(http.StatusOK))
			}
		})

		It("uses the configured page size", func() {
			w := send(http.MethodGet, listPath(""), nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			data := decode(w)["data"].(map[string]interface{})
			Expect(data["content"]).To(HaveLen(2))
			Expect(data["totalElements"]).To(BeNumerically("==", 3))
			Expect(data["totalPages"]).To(BeNumerically("==", 2))
		})

		It("honours pag, ord, dir and tam", func() {
			w := send(http.MethodGet, listPath("?pag=1&ord=id&dir=ASC&tam=2"), nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			data := decode(w)["data"].(map[string]interface{})
			content := data["content"].([]interface{})
			Expect(content).To(HaveLen(1))
			Expect(content[0].(map[string]interface{})["tipo"]).To(Equal("TERMINO_ALMOCO"))
			Expect(data["number"]).To(BeNumerically("==", 1))
		})

		It("answers 400 for an unknown sort field", func() {
			w := send(http.MethodGet, listPath("?ord=senha"), nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["errors"]).To(ConsistOf("Campo de ordenação inválido: senha"))
		})

		It("answers 400 for a page size above the limit", func() {
			w := send(http.MethodGet, listPath("?tam=6"), nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
