package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/ponto-eletronico/internal/auth"
	"github.com/frahmantamala/ponto-eletronico/internal/transport"
	"github.com/frahmantamala/ponto-eletronico/pkg/password"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("Auth Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		password.SetCost(bcrypt.MinCost)
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := auth.NewService(newMockEmployeeFinder(), auth.NewJWTTokenGenerator(securityConfig()), slogger)
		handler := auth.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Post("/auth", handler.Login)
		router.Post("/auth/refresh", handler.RefreshToken)
	})

	AfterEach(func() {
		password.SetCost(bcrypt.DefaultCost)
	})

	post := func(path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
		payload, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var decoded map[string]interface{}
		Expect(json.Unmarshal(w.Body.Bytes(), &decoded)).To(Succeed())
		return w, decoded
	}

	It("returns the token pair inside the envelope", func() {
		w, body := post("/auth", map[string]string{"email": "usuario@ponto.com", "senha": "123456"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body["errors"]).To(BeEmpty())

		data := body["data"].(map[string]interface{})
		Expect(data["token"]).NotTo(BeEmpty())
		Expect(data["refreshToken"]).NotTo(BeEmpty())

		w, body = post("/auth/refresh", map[string]interface{}{"refreshToken": data["refreshToken"]})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(body["data"].(map[string]interface{})["token"]).NotTo(BeEmpty())
	})

	It("answers 401 for bad credentials", func() {
		w, body := post("/auth", map[string]string{"email": "usuario@ponto.com", "senha": "errada"})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(body["data"]).To(BeNil())
		Expect(body["errors"]).To(ConsistOf("Email ou senha inválidos"))
	})

	It("answers 401 for a bad refresh token", func() {
		w, body := post("/auth/refresh", map[string]string{"refreshToken": "x.y.z"})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(body["errors"]).To(ConsistOf("Token inválido"))
	})
})
