package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/frahmantamala/ponto-eletronico/internal/employee"
	"github.com/frahmantamala/ponto-eletronico/pkg/logger"
	"github.com/frahmantamala/ponto-eletronico/pkg/password"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

const (
	seedCNPJ     = "82198127000121"
	seedPassword = "123456"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo company, its administrator and one employee.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		setupRuntime(cfg)
		log := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer db.Close()

		ctx := context.Background()

		if clearData {
			for _, table := range []string{"lancamentos", "funcionarios", "empresas"} {
				if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
					return fmt.Errorf("failed to clear %s: %w", table, err)
				}
			}
			log.Info("cleared existing data")
		}

		companyID, err := seedCompany(ctx, db, seedCNPJ, "Ponto Inteligente LTDA")
		if err != nil {
			return err
		}

		employees := []struct {
			Nome   string
			Email  string
			CPF    string
			Perfil string
		}{
			{"Administrador Ponto", "admin@ponto.com", "12345678909", employee.PerfilAdmin},
			{"Funcionário Ponto", "funcionario@ponto.com", "52998224725", employee.PerfilUsuario},
		}

		senha := seedPassword
		hash, err := password.Hash(&senha)
		if err != nil {
			return err
		}

		for _, e := range employees {
			res, err := db.ExecContext(ctx,
				`INSERT INTO funcionarios (nome, email, cpf, senha, perfil, empresa_id, data_criacao, data_atualizacao)
				 VALUES ($1, $2, $3, $4, $5, $6, now(), now())
				 ON CONFLICT (email) DO NOTHING`,
				e.Nome, e.Email, e.CPF, *hash, e.Perfil, companyID)
			if err != nil {
				return fmt.Errorf("failed to insert %s: %w", e.Email, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				log.Info("employee already exists", "email", e.Email)
				continue
			}
			log.Info("seeded employee", "email", e.Email, "perfil", e.Perfil)
		}

		log.Info("seed complete", "cnpj", seedCNPJ)
		return nil
	},
}

func seedCompany(ctx context.Context, db *sqlx.DB, cnpj, razaoSocial string) (int64, error) {
	var id int64
	err := db.GetContext(ctx, &id, "SELECT id FROM empresas WHERE cnpj = $1", cnpj)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up company: %w", err)
	}

	err = db.QueryRowxContext(ctx,
		`INSERT INTO empresas (cnpj, razao_social, data_criacao, data_atualizacao)
		 VALUES ($1, $2, now(), now()) RETURNING id`,
		cnpj, razaoSocial).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert company: %w", err)
	}
	return id, nil
}
