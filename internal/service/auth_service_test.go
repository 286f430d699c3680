package service_test

import (
	"context"
	"testing"

	"github.com/Junior36912/Projeto-Acougue/internal/config"
	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/model"
	"github.com/Junior36912/Projeto-Acougue/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func buildAuthSvc() (service.AuthService, *stubUsuarioRepo) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "segredo-de-teste",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func seedUsuario(repo *stubUsuarioRepo, username, password, role string) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		Username:     username,
		Email:        username + "@acougue.local",
		PasswordHash: string(hash),
		Role:         role,
	}
	_ = repo.Create(context.Background(), u)
	return u
}

func TestLogin(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUsuario(repo, "gerente", "1234", model.RoleGerente)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "gerente", Password: "1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "gerente", resp.User.Username)
	assert.Equal(t, model.RoleGerente, resp.User.Role)
}

func TestLoginSenhaErrada(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUsuario(repo, "gerente", "1234", model.RoleGerente)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "gerente", Password: "4321"})
	assert.ErrorContains(t, err, "credenciais inválidas")
}

func TestLoginUsuarioInexistente(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ninguem", Password: "x"})
	assert.ErrorContains(t, err, "credenciais inválidas")
}

func TestRefresh(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUsuario(repo, "gerente", "1234", model.RoleGerente)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "gerente", Password: "1234"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, "gerente", renovado.User.Username)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Refresh(context.Background(), "nao-e-um-jwt")
	assert.ErrorContains(t, err, "inválido")
}

func TestCriarUsuarioHashDaSenha(t *testing.T) {
	svc, repo := buildAuthSvc()

	resp, err := svc.CriarUsuario(context.Background(), dto.CriarUsuarioRequest{
		Username: "balconista",
		Email:    "balconista@acougue.local",
		Password: "segredo",
		Role:     model.RoleFuncionario,
	})
	require.NoError(t, err)
	assert.Equal(t, "balconista", resp.Username)

	stored := repo.usuarios[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "segredo", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("segredo")))
}

func TestAtualizarUsuarioRebaixarUltimoGerente(t *testing.T) {
	svc, repo := buildAuthSvc()
	gerente := seedUsuario(repo, "gerente", "1234", model.RoleGerente)

	_, err := svc.AtualizarUsuario(context.Background(), gerente.ID, dto.AtualizarUsuarioRequest{
		Role: model.RoleFuncionario,
	})
	assert.ErrorIs(t, err, service.ErrUltimoGerente)
}

func TestAtualizarUsuarioRebaixarComOutroGerente(t *testing.T) {
	svc, repo := buildAuthSvc()
	gerente := seedUsuario(repo, "gerente", "1234", model.RoleGerente)
	seedUsuario(repo, "socio", "1234", model.RoleGerente)

	resp, err := svc.AtualizarUsuario(context.Background(), gerente.ID, dto.AtualizarUsuarioRequest{
		Role: model.RoleFuncionario,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleFuncionario, resp.Role)
}

func TestRemoverProprioUsuario(t *testing.T) {
	svc, repo := buildAuthSvc()
	gerente := seedUsuario(repo, "gerente", "1234", model.RoleGerente)

	err := svc.RemoverUsuario(context.Background(), gerente.ID, gerente.ID)
	assert.ErrorContains(t, err, "próprio usuário")
}

func TestRemoverUltimoGerente(t *testing.T) {
	svc, repo := buildAuthSvc()
	gerente := seedUsuario(repo, "gerente", "1234", model.RoleGerente)
	funcionario := seedUsuario(repo, "balconista", "1234", model.RoleFuncionario)

	err := svc.RemoverUsuario(context.Background(), gerente.ID, funcionario.ID)
	assert.ErrorIs(t, err, service.ErrUltimoGerente)
}

func TestRemoverFuncionario(t *testing.T) {
	svc, repo := buildAuthSvc()
	gerente := seedUsuario(repo, "gerente", "1234", model.RoleGerente)
	funcionario := seedUsuario(repo, "balconista", "1234", model.RoleFuncionario)

	err := svc.RemoverUsuario(context.Background(), funcionario.ID, gerente.ID)
	require.NoError(t, err)
	_, existe := repo.usuarios[funcionario.ID]
	assert.False(t, existe)
}

// contaGerentesTravando intercepta o repo para registrar que a contagem de
// gerentes aconteceu dentro da mesma transação que a mutação, e não antes dela.
type contaGerentesTravando struct {
	*stubUsuarioRepo
	chamadas []string
}

func (r *contaGerentesTravando) CountByRoleTx(tx *gorm.DB, role string) (int64, error) {
	r.chamadas = append(r.chamadas, "count")
	return r.stubUsuarioRepo.CountByRoleTx(tx, role)
}

func (r *contaGerentesTravando) UpdateTx(tx *gorm.DB, u *model.Usuario) error {
	r.chamadas = append(r.chamadas, "update")
	return r.stubUsuarioRepo.UpdateTx(tx, u)
}

func (r *contaGerentesTravando) DeleteTx(tx *gorm.DB, id uint) error {
	r.chamadas = append(r.chamadas, "delete")
	return r.stubUsuarioRepo.DeleteTx(tx, id)
}

func TestRebaixarGerenteContaDentroDaTransacao(t *testing.T) {
	repo := &contaGerentesTravando{stubUsuarioRepo: newStubUsuarioRepo()}
	cfg := &config.Config{JWTSecret: "segredo-de-teste", JWTExpirationHours: 1, JWTRefreshHours: 24}
	svc := service.NewAuthService(repo, cfg)

	seedUsuario(repo.stubUsuarioRepo, "ana", "1234", model.RoleGerente)
	alvo := seedUsuario(repo.stubUsuarioRepo, "bia", "1234", model.RoleGerente)

	_, err := svc.AtualizarUsuario(context.Background(), alvo.ID, dto.AtualizarUsuarioRequest{Role: model.RoleFuncionario})
	require.NoError(t, err)
	assert.Equal(t, []string{"count", "update"}, repo.chamadas)
}

func TestRemoverGerenteContaDentroDaTransacao(t *testing.T) {
	repo := &contaGerentesTravando{stubUsuarioRepo: newStubUsuarioRepo()}
	cfg := &config.Config{JWTSecret: "segredo-de-teste", JWTExpirationHours: 1, JWTRefreshHours: 24}
	svc := service.NewAuthService(repo, cfg)

	seedUsuario(repo.stubUsuarioRepo, "ana", "1234", model.RoleGerente)
	alvo := seedUsuario(repo.stubUsuarioRepo, "bia", "1234", model.RoleGerente)

	require.NoError(t, svc.RemoverUsuario(context.Background(), alvo.ID, 99))
	assert.Equal(t, []string{"count", "delete"}, repo.chamadas)
}

func TestRemoverFuncionarioNaoTravaGerentes(t *testing.T) {
	repo := &contaGerentesTravando{stubUsuarioRepo: newStubUsuarioRepo()}
	cfg := &config.Config{JWTSecret: "segredo-de-teste", JWTExpirationHours: 1, JWTRefreshHours: 24}
	svc := service.NewAuthService(repo, cfg)

	seedUsuario(repo.stubUsuarioRepo, "ana", "1234", model.RoleGerente)
	alvo := seedUsuario(repo.stubUsuarioRepo, "caio", "1234", model.RoleFuncionario)

	require.NoError(t, svc.RemoverUsuario(context.Background(), alvo.ID, 99))
	assert.Equal(t, []string{"delete"}, repo.chamadas)
}
