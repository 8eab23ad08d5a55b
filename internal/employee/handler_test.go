package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/ponto-eletronico/internal/company"
	companyPostgres "github.com/frahmantamala/ponto-eletronico/internal/company/postgres"
	"github.com/frahmantamala/ponto-eletronico/internal/employee"
	employeePostgres "github.com/frahmantamala/ponto-eletronico/internal/employee/postgres"
	"github.com/frahmantamala/ponto-eletronico/internal/transport"
	"github.com/frahmantamala/ponto-eletronico/pkg/password"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("Employee Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		password.SetCost(bcrypt.MinCost)
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db := newTestDB()

		employees := employee.NewService(employeePostgres.NewEmployeeRepository(db), slogger)
		companies := company.NewService(companyPostgres.NewCompanyRepository(db), slogger)
		_, err := companies.Persist(context.Background(), company.NewCompany(testCNPJ, "Ponto Inteligente LTDA"))
		Expect(err).NotTo(HaveOccurred())

		handler := employee.NewHandler(transport.NewBaseHandler(slogger), employee.NewAccountService(employees, companies, nil, slogger))

		router = chi.NewRouter()
		router.Post("/api/cadastrar-pf", handler.RegisterPF)
		router.Post("/api/cadastrar-pj", handler.RegisterPJ)
		router.Put("/api/funcionarios/{id}", handler.Update)
	})

	AfterEach(func() {
		password.SetCost(bcrypt.DefaultCost)
	})

	send := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("registers an employee and never echoes the password", func() {
		w := send(http.MethodPost, "/api/cadastrar-pf", validPF())
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).NotTo(ContainSubstring("senha"))

		var response transport.Response[employee.CadastroPFDTO]
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Errors).To(BeEmpty())
		Expect(response.Data.ID).To(BeNumerically(">", 0))
		Expect(response.Data.Email).To(Equal("maria@ponto.com"))
	})

	It("answers 400 with every message and a null payload", func() {
		Expect(send(http.MethodPost, "/api/cadastrar-pf", validPF()).Code).To(Equal(http.StatusOK))

		w := send(http.MethodPost, "/api/cadastrar-pf", validPF())
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var raw map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&raw)).To(Succeed())
		Expect(raw).To(HaveKeyWithValue("data", BeNil()))
		Expect(raw["errors"]).To(ConsistOf("CPF já existente", "Email já existente"))
	})

	It("rejects a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/cadastrar-pf", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("registers a company with its admin", func() {
		w := send(http.MethodPost, "/api/cadastrar-pj", employee.CadastroPJDTO{
			Nome:        "João Souza",
			Email:       "joao@empresa.com",
			Senha:       "segredo",
			CPF:         "11144477735",
			CNPJ:        "11222333000181",
			RazaoSocial: "Empresa Nova LTDA",
		})
		Expect(w.Code).To(Equal(http.StatusOK))

		var response transport.Response[employee.CadastroPJDTO]
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Data.CNPJ).To(Equal("11222333000181"))
	})

	It("updates an employee", func() {
		w := send(http.MethodPost, "/api/cadastrar-pf", validPF())
		var created transport.Response[employee.CadastroPFDTO]
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		w = send(http.MethodPut, "/api/funcionarios/"+jsonNumber(created.Data.ID), employee.FuncionarioDTO{
			Nome:           "Maria Atualizada",
			Email:          "maria.nova@ponto.com",
			QtdHorasAlmoco: strPtr("1"),
		})
		Expect(w.Code).To(Equal(http.StatusOK))

		var response transport.Response[employee.FuncionarioDTO]
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Data.Nome).To(Equal("Maria Atualizada"))
		Expect(response.Data.Email).To(Equal("maria.nova@ponto.com"))
		Expect(*response.Data.QtdHorasAlmoco).To(Equal("1"))
		Expect(response.Data.ValorHora).To(BeNil())
	})

	It("answers 400 for an unknown employee", func() {
		w := send(http.MethodPut, "/api/funcionarios/777", employee.FuncionarioDTO{Nome: "Fulano", Email: "fulano@ponto.com"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var response transport.Response[employee.FuncionarioDTO]
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Errors).To(Equal([]string{"Funcionário não encontrado"}))
	})

	It("answers 400 for a non numeric id", func() {
		w := send(http.MethodPut, "/api/funcionarios/abc", employee.FuncionarioDTO{Nome: "Fulano", Email: "fulano@ponto.com"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
