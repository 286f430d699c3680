package infra

import (
	"fmt"

	"github.com/Junior36912/Projeto-Acougue/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial indexes, FK delete rules).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Fornecedor{},
		&model.Produto{},
		&model.Venda{},
		&model.VendaItem{},
		&model.MovimentoEstoque{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Partial index backing the caderneta screen and the reminder cron:
		// only open credit sales are ever scanned.
		{"partial index on open fiados", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_vendas_fiado_aberto') THEN
    CREATE INDEX idx_vendas_fiado_aberto
        ON vendas (data_vencimento)
        WHERE metodo_pagamento = 'prazo' AND status_pagamento = 'pendente';
  END IF;
END $$`},
		// venda_itens.produto_id must RESTRICT deletes: line items are the
		// sale history and removing a sold product would corrupt it.
		{"restrict produto delete while referenced", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_venda_itens_produto_restrict') THEN
    ALTER TABLE venda_itens
      ADD CONSTRAINT fk_venda_itens_produto_restrict
      FOREIGN KEY (produto_id) REFERENCES produtos(id) ON DELETE RESTRICT;
  END IF;
END $$`},
		// Check constraint: stock can never go negative even if application
		// logic regresses.
		{"non-negative stock check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_produtos_quantidade_nao_negativa') THEN
    ALTER TABLE produtos
      ADD CONSTRAINT chk_produtos_quantidade_nao_negativa CHECK (quantidade >= 0);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
