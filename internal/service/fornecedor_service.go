package service

import (
	"context"
	"errors"

	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"
)

type FornecedorService interface {
	Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error)
	Obter(ctx context.Context, id uint) (*dto.FornecedorResponse, error)
	Listar(ctx context.Context) ([]dto.FornecedorResponse, error)
	Atualizar(ctx context.Context, id uint, req dto.AtualizarFornecedorRequest) (*dto.FornecedorResponse, error)
	Remover(ctx context.Context, id uint) error
}

type fornecedorService struct {
	repo repository.FornecedorRepository
}

func NewFornecedorService(repo repository.FornecedorRepository) FornecedorService {
	return &fornecedorService{repo: repo}
}

func (s *fornecedorService) Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error) {
	f := &model.Fornecedor{
		Nome:     req.Nome,
		CNPJ:     req.CNPJ,
		Contato:  req.Contato,
		Endereco: req.Endereco,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, repository.ErrCNPJDuplicado) {
			return nil, errors.New("já existe fornecedor com esse CNPJ")
		}
		return nil, err
	}
	resp := fornecedorToResponse(f)
	return &resp, nil
}

func (s *fornecedorService) Obter(ctx context.Context, id uint) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fornecedor não encontrado")
	}
	resp := fornecedorToResponse(f)
	return &resp, nil
}

func (s *fornecedorService) Listar(ctx context.Context) ([]dto.FornecedorResponse, error) {
	fornecedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FornecedorResponse, len(fornecedores))
	for i := range fornecedores {
		resp[i] = fornecedorToResponse(&fornecedores[i])
	}
	return resp, nil
}

func (s *fornecedorService) Atualizar(ctx context.Context, id uint, req dto.AtualizarFornecedorRequest) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fornecedor não encontrado")
	}
	if req.Nome != "" {
		f.Nome = req.Nome
	}
	if req.CNPJ != "" {
		f.CNPJ = req.CNPJ
	}
	if req.Contato != "" {
		f.Contato = req.Contato
	}
	if req.Endereco != nil {
		f.Endereco = req.Endereco
	}
	if err := s.repo.Update(ctx, f); err != nil {
		if errors.Is(err, repository.ErrCNPJDuplicado) {
			return nil, errors.New("já existe fornecedor com esse CNPJ")
		}
		return nil, err
	}
	resp := fornecedorToResponse(f)
	return &resp, nil
}

// Remover deletes the supplier. Linked products keep existing with
// fornecedor_id reset to NULL by the FK.
func (s *fornecedorService) Remover(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("fornecedor não encontrado")
	}
	return s.repo.Delete(ctx, id)
}

func fornecedorToResponse(f *model.Fornecedor) dto.FornecedorResponse {
	return dto.FornecedorResponse{
		ID:       f.ID,
		Nome:     f.Nome,
		CNPJ:     f.CNPJ,
		Contato:  f.Contato,
		Endereco: f.Endereco,
	}
}
