package timeentry_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/frahmantamala/ponto-eletronico/internal"
	employeeDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/employee"
	timeentryDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/timeentry"
	"github.com/frahmantamala/ponto-eletronico/internal/core/events"
	"github.com/frahmantamala/ponto-eletronico/internal/employee"
	employeePostgres "github.com/frahmantamala/ponto-eletronico/internal/employee/postgres"
	"github.com/frahmantamala/ponto-eletronico/internal/timeentry"
	timeentryPostgres "github.com/frahmantamala/ponto-eletronico/internal/timeentry/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

func newTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	Expect(err).NotTo(HaveOccurred())
	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	sqlDB.SetMaxOpenConns(1)
	Expect(db.AutoMigrate(&employeeDatamodel.Employee{}, &timeentryDatamodel.TimeEntry{})).To(Succeed())
	return db
}

func seedEmployee(ctx context.Context, employees *employee.Service, email, cpf string) int64 {
	stored, err := employees.Persist(ctx, &employee.Employee{
		Nome:   "Maria da Silva",
		Email:  email,
		CPF:    cpf,
		Senha:  "hash",
		Perfil: employee.PerfilUsuario,
	})
	Expect(err).NotTo(HaveOccurred())
	return stored.ID
}

func int64Ptr(v int64) *int64 {
	return &v
}

func messagesOf(err error) []string {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue())
	return appErr.Messages()
}

var _ = Describe("Ledger", func() {
	var (
		publisher     *recordingPublisher
		ledger        *timeentry.Ledger
		ctx           context.Context
		funcionarioID int64
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db := newTestDB()
		ctx = context.Background()

		employees := employee.NewService(employeePostgres.NewEmployeeRepository(db), slogger)
		entries := timeentry.NewService(timeentryPostgres.NewTimeEntryRepository(db), slogger)
		publisher = &recordingPublisher{}
		ledger = timeentry.NewLedger(entries, employees, publisher, slogger)

		funcionarioID = seedEmployee(ctx, employees, "maria@ponto.com", "52998224725")
	})

	validEntry := func() timeentry.LancamentoDTO {
		return timeentry.LancamentoDTO{
			Data:          "2024-01-01 08:00:00",
			Tipo:          "INICIO_TRABALHO",
			Descricao:     "D",
			Localizacao:   "L",
			FuncionarioID: int64Ptr(funcionarioID),
		}
	}

	Describe("Create", func() {
		It("echoes the stored entry with a generated id", func() {
			out, err := ledger.Create(ctx, validEntry())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ID).NotTo(BeNil())
			Expect(*out.ID).To(BeNumerically(">", 0))
			Expect(out.Data).To(Equal("2024-01-01 08:00:00"))
			Expect(out.Tipo).To(Equal("INICIO_TRABALHO"))
			Expect(out.Descricao).To(Equal("D"))
			Expect(out.Localizacao).To(Equal("L"))
			Expect(*out.FuncionarioID).To(Equal(funcionarioID))
			Expect(publisher.Types()).To(Equal([]string{events.EventTypeTimeEntryCreated}))
		})

		It("rejects an unknown employee", func() {
			dto := validEntry()
			dto.FuncionarioID = int64Ptr(9999)

			_, err := ledger.Create(ctx, dto)
			Expect(messagesOf(err)).To(ConsistOf("Funcionário não encontrado. ID inexistente"))
			Expect(publisher.Types()).To(BeEmpty())
		})

		It("accumulates every problem of the request", func() {
			_, err := ledger.Create(ctx, timeentry.LancamentoDTO{Tipo: "ALMOCO"})
			Expect(messagesOf(err)).To(ConsistOf(
				"Funcionário não informado",
				"Data não pode ser vazia.",
				"Tipo inválido",
			))
		})

		It("rejects a malformed date", func() {
			dto := validEntry()
			dto.Data = "01/01/2024 08:00"

			_, err := ledger.Create(ctx, dto)
			Expect(messagesOf(err)).To(ConsistOf("Data inválida"))
		})

		It("rejects texts longer than the stored columns", func() {
			dto := validEntry()
			dto.Descricao = strings.Repeat("d", 256)
			dto.Localizacao = strings.Repeat("ç", 256)

			_, err := ledger.Create(ctx, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(appErr.Messages()).To(ConsistOf(
				"Descrição deve conter no máximo 255 caracteres.",
				"Localização deve conter no máximo 255 caracteres.",
			))

			page, err := ledger.List(ctx, funcionarioID, timeentry.PageRequest{Size: 10, Sort: "id", Direction: "DESC"})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.TotalElements).To(BeZero())
		})

		It("accepts texts of exactly 255 characters", func() {
			dto := validEntry()
			dto.Localizacao = strings.Repeat("ç", 255)

			out, err := ledger.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Localizacao).To(Equal(dto.Localizacao))
		})
	})

	Describe("Get", func() {
		It("returns the entry created before", func() {
			created, err := ledger.Create(ctx, validEntry())
			Expect(err).NotTo(HaveOccurred())

			out, err := ledger.Get(ctx, *created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(created))
		})

		It("reports a missing entry", func() {
			_, err := ledger.Get(ctx, 42)
			Expect(messagesOf(err)).To(ConsistOf("Lançamento não encontrado para o id 42"))
		})
	})

	Describe("Update", func() {
		It("rewrites the entry and keeps its employee", func() {
			created, err := ledger.Create(ctx, validEntry())
			Expect(err).NotTo(HaveOccurred())

			dto := validEntry()
			dto.Data = "2024-01-01 12:00:00"
			dto.Tipo = "INICIO_ALMOCO"
			dto.Descricao = "almoço"

			out, err := ledger.Update(ctx, *created.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(*out.ID).To(Equal(*created.ID))
			Expect(out.Tipo).To(Equal("INICIO_ALMOCO"))
			Expect(out.Data).To(Equal("2024-01-01 12:00:00"))
			Expect(*out.FuncionarioID).To(Equal(funcionarioID))
			Expect(publisher.Types()).To(Equal([]string{
				events.EventTypeTimeEntryCreated,
				events.EventTypeTimeEntryUpdated,
			}))
		})

		It("reports a missing entry together with shape errors", func() {
			dto := validEntry()
			dto.Tipo = ""

			_, err := ledger.Update(ctx, 77, dto)
			Expect(messagesOf(err)).To(ConsistOf("Lançamento não encontrado", "Tipo inválido"))
		})
	})

	Describe("Delete", func() {
		It("removes an entry so that reading it fails", func() {
			created, err := ledger.Create(ctx, validEntry())
			Expect(err).NotTo(HaveOccurred())

			Expect(ledger.Delete(ctx, *created.ID)).To(Succeed())

			_, err = ledger.Get(ctx, *created.ID)
			Expect(err).To(HaveOccurred())
			Expect(publisher.Types()).To(ContainElement(events.EventTypeTimeEntryRemoved))
		})

		It("reports a missing entry", func() {
			err := ledger.Delete(ctx, 5)
			Expect(messagesOf(err)).To(ConsistOf("Erro ao remover lançamento. Registro não encontrado para o id 5"))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for _, tipo := range []string{"INICIO_TRABALHO", "INICIO_ALMOCO", "TERMINO_ALMOCO", "TERMINO_TRABALHO"} {
				dto := validEntry()
				dto.Tipo = tipo
				_, err := ledger.Create(ctx, dto)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns the newest entries first by default", func() {
			page, err := ledger.List(ctx, funcionarioID, timeentry.PageRequest{Size: 10, Sort: "id", Direction: timeentry.DirectionDesc})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.TotalElements).To(Equal(int64(4)))
			Expect(page.TotalPages).To(Equal(1))
			Expect(page.Content).To(HaveLen(4))
			Expect(page.Content[0].Tipo).To(Equal("TERMINO_TRABALHO"))
		})

		It("honours page number and size", func() {
			page, err := ledger.List(ctx, funcionarioID, timeentry.PageRequest{Page: 1, Size: 3, Sort: "id", Direction: timeentry.DirectionAsc})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Number).To(Equal(1))
			Expect(page.Size).To(Equal(3))
			Expect(page.TotalPages).To(Equal(2))
			Expect(page.Content).To(HaveLen(1))
			Expect(page.Content[0].Tipo).To(Equal("TERMINO_TRABALHO"))
		})

		It("returns an empty page for an employee without entries", func() {
			page, err := ledger.List(ctx, 9999, timeentry.PageRequest{Size: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Content).To(BeEmpty())
			Expect(page.TotalElements).To(BeZero())
		})
	})
})
