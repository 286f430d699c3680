package repository

import (
	"context"

	"github.com/Junior36912/Projeto-Acougue/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	UpdateTx(tx *gorm.DB, u *model.Usuario) error
	DeleteTx(tx *gorm.DB, id uint) error
	// CountByRoleTx conta segurando lock de linha (FOR UPDATE) nas linhas do
	// papel, para que duas mutações concorrentes sobre gerentes se serializem.
	CountByRoleTx(tx *gorm.DB, role string) (int64, error)
	DB() *gorm.DB
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) DB() *gorm.DB { return r.db }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).Order("username ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) UpdateTx(tx *gorm.DB, u *model.Usuario) error {
	return tx.Save(u).Error
}

func (r *usuarioRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Usuario{}, id).Error
}

func (r *usuarioRepo) CountByRoleTx(tx *gorm.DB, role string) (int64, error) {
	// COUNT não aceita FOR UPDATE; trava as linhas via Pluck dos ids.
	var ids []uint
	err := tx.Model(&model.Usuario{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("role = ?", role).
		Pluck("id", &ids).Error
	return int64(len(ids)), err
}
