package employee

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/internal/company"
	"github.com/frahmantamala/ponto-eletronico/internal/core/common/validation"
	"github.com/frahmantamala/ponto-eletronico/internal/core/events"
	"github.com/frahmantamala/ponto-eletronico/pkg/password"
)

const (
	msgCompanyNotRegistered = "Empresa não cadastrada"
	msgCompanyExists        = "Empresa já existente"
	msgCPFExists            = "CPF já existente"
	msgEmailExists          = "Email já existente"
	msgEmailTaken           = "Email já existente."
	msgEmployeeNotFound     = "Funcionário não encontrado"
)

type ServiceAPI interface {
	Persist(ctx context.Context, employee *Employee) (*Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByCPF(ctx context.Context, cpf string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindByCPFOrEmail(ctx context.Context, cpf, email string) (*Employee, error)
}

// AccountService runs the registration and update flows. Shape and business
// errors are accumulated and nothing is stored while any error is present.
type AccountService struct {
	employees ServiceAPI
	companies company.ServiceAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewAccountService(employees ServiceAPI, companies company.ServiceAPI, publisher events.Publisher, logger *slog.Logger) *AccountService {
	return &AccountService{
		employees: employees,
		companies: companies,
		publisher: publisher,
		logger:    logger,
	}
}

// RegisterPF registers an individual employee against an existing company.
func (s *AccountService) RegisterPF(ctx context.Context, dto CadastroPFDTO) (*CadastroPFDTO, error) {
	s.logger.Info("registering individual employee", "email", dto.Email, "cnpj", dto.CNPJ)

	result := validation.NewResult()
	result.Merge(validateCadastroPF(dto))

	cpf := validation.OnlyDigits(dto.CPF)
	cnpj := validation.OnlyDigits(dto.CNPJ)
	email := strings.TrimSpace(dto.Email)

	comp, err := s.companies.FindByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if comp == nil {
		result.AddError("empresa", msgCompanyNotRegistered)
	}

	if err := s.checkUniqueness(ctx, cpf, email, result); err != nil {
		return nil, err
	}

	if result.HasErrors() {
		s.logger.Error("registration rejected", "errors", result.Messages())
		return nil, result.Err()
	}

	emp, err := s.newEmployee(dto.Nome, email, cpf, dto.Senha, PerfilUsuario)
	if err != nil {
		return nil, err
	}
	emp.ValorHora = parseOptionalDecimal(dto.ValorHora)
	emp.QtdHorasTrabalhoDia = parseOptionalDecimal(dto.QtdHorasTrabalhoDia)
	emp.QtdHorasAlmoco = parseOptionalDecimal(dto.QtdHorasAlmoco)
	emp.CompanyID = &comp.ID

	stored, err := s.employees.Persist(ctx, emp)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.publish(ctx, events.NewEmployeeRegisteredEvent(stored.ID, stored.CompanyID, stored.Perfil))

	out := stored.ToCadastroPFDTO(comp.CNPJ)
	return &out, nil
}

// RegisterPJ creates a company and its first employee, who becomes its admin.
func (s *AccountService) RegisterPJ(ctx context.Context, dto CadastroPJDTO) (*CadastroPJDTO, error) {
	s.logger.Info("registering company", "email", dto.Email, "cnpj", dto.CNPJ)

	result := validation.NewResult()
	result.Merge(validateCadastroPJ(dto))

	cpf := validation.OnlyDigits(dto.CPF)
	cnpj := validation.OnlyDigits(dto.CNPJ)
	email := strings.TrimSpace(dto.Email)

	existing, err := s.companies.FindByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if existing != nil {
		result.AddError("empresa", msgCompanyExists)
	}

	if err := s.checkUniqueness(ctx, cpf, email, result); err != nil {
		return nil, err
	}

	if result.HasErrors() {
		s.logger.Error("company registration rejected", "errors", result.Messages())
		return nil, result.Err()
	}

	emp, err := s.newEmployee(dto.Nome, email, cpf, dto.Senha, PerfilAdmin)
	if err != nil {
		return nil, err
	}

	comp, err := s.companies.Persist(ctx, company.NewCompany(cnpj, strings.TrimSpace(dto.RazaoSocial)))
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	emp.CompanyID = &comp.ID

	stored, err := s.employees.Persist(ctx, emp)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.publish(ctx, events.NewEmployeeRegisteredEvent(stored.ID, stored.CompanyID, stored.Perfil))

	out := stored.ToCadastroPJDTO(comp.CNPJ, comp.RazaoSocial)
	return &out, nil
}

// Update replaces the editable fields of an employee. Optional numeric fields
// absent from dto are cleared.
func (s *AccountService) Update(ctx context.Context, id int64, dto FuncionarioDTO) (*FuncionarioDTO, error) {
	s.logger.Info("updating employee", "id", id)

	result := validation.NewResult()
	result.Merge(validateFuncionario(dto))

	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if emp == nil {
		result.AddError("funcionario", msgEmployeeNotFound)
		s.logger.Error("update rejected", "id", id, "errors", result.Messages())
		return nil, result.Err()
	}

	emp.Nome = strings.TrimSpace(dto.Nome)

	email := strings.TrimSpace(dto.Email)
	if emp.Email != email {
		other, err := s.employees.FindByEmail(ctx, email)
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		if other != nil && other.ID != emp.ID {
			result.AddError("email", msgEmailTaken)
		}
		emp.Email = email
	}

	emp.QtdHorasAlmoco = parseOptionalDecimal(dto.QtdHorasAlmoco)
	emp.QtdHorasTrabalhoDia = parseOptionalDecimal(dto.QtdHorasTrabalhoDia)
	emp.ValorHora = parseOptionalDecimal(dto.ValorHora)

	if result.HasErrors() {
		s.logger.Error("update rejected", "id", id, "errors", result.Messages())
		return nil, result.Err()
	}

	if dto.Senha != nil && *dto.Senha != "" {
		hashed, err := password.Hash(dto.Senha)
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		emp.Senha = *hashed
	}

	stored, err := s.employees.Persist(ctx, emp)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	out := stored.ToFuncionarioDTO()
	return &out, nil
}

// checkUniqueness reports a taken cpf and a taken email. The combined lookup
// avoids the two individual queries in the common case where both are free.
func (s *AccountService) checkUniqueness(ctx context.Context, cpf, email string, result *validation.Result) error {
	match, err := s.employees.FindByCPFOrEmail(ctx, cpf, email)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if match == nil {
		return nil
	}

	byCPF, err := s.employees.FindByCPF(ctx, cpf)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if byCPF != nil {
		result.AddError("funcionario", msgCPFExists)
	}

	byEmail, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if byEmail != nil {
		result.AddError("funcionario", msgEmailExists)
	}
	return nil
}

func (s *AccountService) newEmployee(nome, email, cpf, senha, perfil string) (*Employee, error) {
	hashed, err := password.Hash(&senha)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	return &Employee{
		Nome:   strings.TrimSpace(nome),
		Email:  email,
		CPF:    cpf,
		Senha:  *hashed,
		Perfil: perfil,
	}, nil
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func parseOptionalDecimal(s *string) *float64 {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	f, err := validation.ParseDecimal(*s)
	if err != nil {
		return nil
	}
	return &f
}
