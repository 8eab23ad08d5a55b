package employee

// CadastroPFDTO is the self registration payload of an individual employee.
type CadastroPFDTO struct {
	ID                  int64   `json:"id,omitempty"`
	Nome                string  `json:"nome"`
	Email               string  `json:"email"`
	Senha               string  `json:"senha,omitempty"`
	CPF                 string  `json:"cpf"`
	CNPJ                string  `json:"cnpj"`
	ValorHora           *string `json:"valorHora,omitempty"`
	QtdHorasTrabalhoDia *string `json:"qtdHorasTrabalhoDia,omitempty"`
	QtdHorasAlmoco      *string `json:"qtdHorasAlmoco,omitempty"`
}

// CadastroPJDTO registers a company together with its first, admin, employee.
type CadastroPJDTO struct {
	ID          int64  `json:"id,omitempty"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Senha       string `json:"senha,omitempty"`
	CPF         string `json:"cpf"`
	CNPJ        string `json:"cnpj"`
	RazaoSocial string `json:"razaoSocial"`
}

type FuncionarioDTO struct {
	ID                  int64   `json:"id,omitempty"`
	Nome                string  `json:"nome"`
	Email               string  `json:"email"`
	Senha               *string `json:"senha,omitempty"`
	ValorHora           *string `json:"valorHora,omitempty"`
	QtdHorasTrabalhoDia *string `json:"qtdHorasTrabalhoDia,omitempty"`
	QtdHorasAlmoco      *string `json:"qtdHorasAlmoco,omitempty"`
}
