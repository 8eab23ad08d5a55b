package employee

import (
	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/internal/core/common/validation"
)

const (
	msgNomeRequired  = "Nome não pode ser vazio."
	msgNomeLength    = "Nome deve conter entre 3 e 200 caracteres."
	msgEmailRequired = "Email não pode ser vazio."
	msgEmailLength   = "Email deve conter entre 5 e 200 caracteres."
	msgEmailInvalid  = "Email inválido."
	msgSenhaRequired = "Senha não pode ser vazia."
	msgSenhaLength   = "Senha deve conter no máximo 72 bytes."
	msgCPFRequired   = "CPF não pode ser vazio."
	msgCPFInvalid    = "CPF inválido."
	msgCNPJRequired  = "CNPJ não pode ser vazio."
	msgCNPJInvalid   = "CNPJ inválido."
	msgRazaoRequired = "Razão social não pode ser vazia."
	msgRazaoLength   = "Razão social deve conter entre 5 e 200 caracteres."
	msgValorHora     = "Valor hora inválido."
	msgHorasDia      = "Quantidade de horas de trabalho por dia inválida."
	msgHorasAlmoco   = "Quantidade de horas de almoço inválida."
)

// bcrypt refuses longer inputs.
const maxSenhaBytes = 72

func identityRules(v *validation.ValidationBuilder, nome, email string) {
	v.Field("nome", nome).
		Required(msgNomeRequired).
		Length(3, 200, msgNomeLength)
	v.Field("email", email).
		Required(msgEmailRequired).
		Length(5, 200, msgEmailLength).
		Email(msgEmailInvalid)
}

func workloadRules(v *validation.ValidationBuilder, valorHora, horasDia, horasAlmoco *string) {
	v.Field("valorHora", valorHora).Optional().Decimal(msgValorHora)
	v.Field("qtdHorasTrabalhoDia", horasDia).Optional().Decimal(msgHorasDia)
	v.Field("qtdHorasAlmoco", horasAlmoco).Optional().Decimal(msgHorasAlmoco)
}

func validateCadastroPF(dto CadastroPFDTO) *internal.AppError {
	v := validation.NewValidator()
	identityRules(v, dto.Nome, dto.Email)
	v.Field("senha", dto.Senha).Required(msgSenhaRequired).MaxBytes(maxSenhaBytes, msgSenhaLength)
	v.Field("cpf", dto.CPF).Required(msgCPFRequired).CPF(msgCPFInvalid)
	v.Field("cnpj", dto.CNPJ).Required(msgCNPJRequired).CNPJ(msgCNPJInvalid)
	workloadRules(v, dto.ValorHora, dto.QtdHorasTrabalhoDia, dto.QtdHorasAlmoco)
	return v.Validate()
}

func validateCadastroPJ(dto CadastroPJDTO) *internal.AppError {
	v := validation.NewValidator()
	identityRules(v, dto.Nome, dto.Email)
	v.Field("senha", dto.Senha).Required(msgSenhaRequired).MaxBytes(maxSenhaBytes, msgSenhaLength)
	v.Field("cpf", dto.CPF).Required(msgCPFRequired).CPF(msgCPFInvalid)
	v.Field("cnpj", dto.CNPJ).Required(msgCNPJRequired).CNPJ(msgCNPJInvalid)
	v.Field("razaoSocial", dto.RazaoSocial).Required(msgRazaoRequired).Length(5, 200, msgRazaoLength)
	return v.Validate()
}

func validateFuncionario(dto FuncionarioDTO) *internal.AppError {
	v := validation.NewValidator()
	identityRules(v, dto.Nome, dto.Email)
	v.Field("senha", dto.Senha).Optional().MaxBytes(maxSenhaBytes, msgSenhaLength)
	workloadRules(v, dto.ValorHora, dto.QtdHorasTrabalhoDia, dto.QtdHorasAlmoco)
	return v.Validate()
}
