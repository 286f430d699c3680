package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarFornecedorRequest struct {
	Nome     string  `json:"nome"     validate:"required,min=2,max=100"`
	CNPJ     string  `json:"cnpj"     validate:"required,min=14,max=18"`
	Contato  string  `json:"contato"  validate:"required,min=3,max=100"`
	Endereco *string `json:"endereco" validate:"omitempty,max=200"`
}

type AtualizarFornecedorRequest struct {
	Nome     string  `json:"nome"     validate:"omitempty,min=2,max=100"`
	CNPJ     string  `json:"cnpj"     validate:"omitempty,min=14,max=18"`
	Contato  string  `json:"contato"  validate:"omitempty,min=3,max=100"`
	Endereco *string `json:"endereco" validate:"omitempty,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type FornecedorResponse struct {
	ID       uint    `json:"id"`
	Nome     string  `json:"nome"`
	CNPJ     string  `json:"cnpj"`
	Contato  string  `json:"contato"`
	Endereco *string `json:"endereco"`
}
