package repository

import "errors"

// Sentinel errors surfaced by repositories so services and handlers can
// translate them into domain responses via errors.Is.
var (
	ErrEstoqueInsuficiente = errors.New("estoque insuficiente")
	ErrProdutoReferenciado = errors.New("produto referenciado por vendas")
	ErrCNPJDuplicado       = errors.New("cnpj ja cadastrado")
)
