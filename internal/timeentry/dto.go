package timeentry

type LancamentoDTO struct {
	ID            *int64 `json:"id,omitempty"`
	Data          string `json:"data"`
	Tipo          string `json:"tipo"`
	Descricao     string `json:"descricao"`
	Localizacao   string `json:"localizacao"`
	FuncionarioID *int64 `json:"funcionarioId"`
}

type PageDTO struct {
	Content       []LancamentoDTO `json:"content"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
	Number        int             `json:"number"`
	Size          int             `json:"size"`
}
