package company_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/ponto-eletronico/internal/company"
	companyPostgres "github.com/frahmantamala/ponto-eletronico/internal/company/postgres"
	companyDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/company"
	"github.com/frahmantamala/ponto-eletronico/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Company Handler Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(&companyDatamodel.Company{})).To(Succeed())

		service := company.NewService(companyPostgres.NewCompanyRepository(db), slogger)
		handler := company.NewHandler(transport.NewBaseHandler(slogger), service)

		_, err = service.Persist(context.Background(), company.NewCompany("51463645000100", "Ponto Inteligente LTDA"))
		Expect(err).NotTo(HaveOccurred())

		router = chi.NewRouter()
		router.Get("/api/empresas/cnpj/{cnpj}", handler.GetByCNPJ)
	})

	It("returns the company for a known cnpj", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/empresas/cnpj/51463645000100", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response transport.Response[company.EmpresaDTO]
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Errors).To(BeEmpty())
		Expect(response.Data.ID).To(BeNumerically(">", 0))
		Expect(response.Data.CNPJ).To(Equal("51463645000100"))
		Expect(response.Data.RazaoSocial).To(Equal("Ponto Inteligente LTDA"))
	})

	It("accepts a formatted cnpj", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/empresas/cnpj/51.463.645.0001-00", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("answers 400 with the not found message for an unknown cnpj", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/empresas/cnpj/11222333000181", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var response transport.Response[company.EmpresaDTO]
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Data).To(BeNil())
		Expect(response.Errors).To(Equal([]string{"Empresa não encontrada para o cnpj 11222333000181"}))
	})
})
