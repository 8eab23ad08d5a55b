package company

type EmpresaDTO struct {
	ID          int64  `json:"id"`
	CNPJ        string `json:"cnpj"`
	RazaoSocial string `json:"razaoSocial"`
}
