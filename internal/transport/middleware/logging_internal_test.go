package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Request logging", func() {
	It("masks credentials and documents at any depth", func() {
		out := redactBody([]byte(`{"nome":"Ana","senha":"123456","cpf":"52998224725","nested":[{"refreshToken":"x"}]}`))
		Expect(out).To(ContainSubstring(`"nome":"Ana"`))
		Expect(out).To(ContainSubstring(`"senha":"[FILTERED]"`))
		Expect(out).To(ContainSubstring(`"cpf":"[FILTERED]"`))
		Expect(out).To(ContainSubstring(`"refreshToken":"[FILTERED]"`))
		Expect(out).NotTo(ContainSubstring("123456"))
	})

	It("omits bodies that are not JSON", func() {
		Expect(redactBody([]byte("senha=123456"))).To(Equal("[non-JSON body omitted]"))
		Expect(redactBody(nil)).To(BeEmpty())
	})

	It("truncates large bodies", func() {
		big := `{"descricao":"` + strings.Repeat("x", 2*maxLoggedBody) + `"}`
		Expect(redactBody([]byte(big))).To(HaveSuffix("...[truncated]"))
	})

	It("writes a single line with the status and without the token", func() {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"email":"a@b.com","senha":"segredo"}`))
		req.Header.Set("Authorization", "Bearer abc.def")
		LoggingMiddleware(log)(next).ServeHTTP(httptest.NewRecorder(), req)

		line := buf.String()
		Expect(strings.Count(line, "\n")).To(Equal(1))
		Expect(line).To(ContainSubstring("level=WARN"))
		Expect(line).To(ContainSubstring("status_code=400"))
		Expect(line).To(ContainSubstring("authenticated=true"))
		Expect(line).NotTo(ContainSubstring("segredo"))
		Expect(line).NotTo(ContainSubstring("abc.def"))
	})

	It("skips the configured prefixes", func() {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		LoggingMiddleware(log, "/health")(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		Expect(buf.Len()).To(BeZero())
	})
})
