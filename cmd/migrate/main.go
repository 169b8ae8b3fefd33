// cmd/migrate/main.go
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/onerilhan/go-student-records/internal/config"
	"github.com/onerilhan/go-student-records/internal/db"
	"github.com/onerilhan/go-student-records/internal/logger"
)

var (
	migrationFilePattern = regexp.MustCompile(`^(\d+)_.+\.(up|down)\.sql$`)
	migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Öğrenci kayıt veritabanı migration aracı",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				fmt.Println("Warning: .env file not found, using environment variables")
			}
			cfg := config.LoadConfig()
			logger.Init(cfg.AppEnv, cfg.LogLevel)
		},
	}

	rootCmd.AddCommand(newUpCmd(), newDownCmd(), newVersionCmd(), newForceCmd(), newCreateCmd())
	return rootCmd
}

// withMigrator gömülü migration'lar için migrator açar ve iş bitince kapatır
func withMigrator(fn func(m *migrate.Migrate) error) error {
	m, err := db.NewMigrator(config.LoadConfig().GetDSN())
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()
	return fn(m)
}

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Bekleyen tüm migration'ları uygula",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return db.MigrateUp(config.LoadConfig().GetDSN())
		},
	}
}

func newDownCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "down [n]",
		Short: "Son n migration'ı geri al (varsayılan 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("geçersiz adım sayısı: %s", args[0])
				}
				steps = n
			}

			return withMigrator(func(m *migrate.Migrate) error {
				var err error
				if all {
					err = m.Down()
				} else {
					err = m.Steps(-steps)
				}
				if err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("migrate down hatası: %w", err)
				}
				fmt.Println("✅ Migration'lar geri alındı")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "tüm migration'ları geri al")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Uygulanmış son migration versiyonunu göster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *migrate.Migrate) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Println("Henüz migration uygulanmamış")
					return nil
				}
				if err != nil {
					return fmt.Errorf("versiyon okunamadı: %w", err)
				}
				fmt.Printf("version: %d, dirty: %t\n", version, dirty)
				return nil
			})
		},
	}
}

func newForceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Dirty durumdaki şemayı verilen versiyona işaretle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("geçersiz versiyon: %s", args[0])
			}
			return withMigrator(func(m *migrate.Migrate) error {
				if err := m.Force(version); err != nil {
					return fmt.Errorf("force hatası: %w", err)
				}
				fmt.Printf("✅ Versiyon %d olarak işaretlendi\n", version)
				return nil
			})
		},
	}
}

func newCreateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Yeni boş up/down migration dosyaları oluştur",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToLower(strings.TrimSpace(args[0]))
			if !migrationNamePattern.MatchString(name) {
				return fmt.Errorf("migration adı sadece a-z, 0-9 ve _ içerebilir: %s", args[0])
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("migration klasörü okunamadı: %w", err)
			}
			files := make([]string, 0, len(entries))
			for _, e := range entries {
				files = append(files, e.Name())
			}

			up, down := migrationFileNames(nextSequence(files), name)
			for _, f := range []string{up, down} {
				path := filepath.Join(dir, f)
				if err := os.WriteFile(path, []byte("-- "+f+"\n"), 0o644); err != nil {
					return fmt.Errorf("dosya yazılamadı: %w", err)
				}
				fmt.Println("📝 Oluşturuldu:", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", db.MigrationsDir, "migration klasörü")
	return cmd
}

// nextSequence mevcut dosyalardaki en büyük sıra numarasının bir fazlası
func nextSequence(files []string) int {
	highest := 0
	for _, f := range files {
		match := migrationFilePattern.FindStringSubmatch(f)
		if match == nil {
			continue
		}
		if n, err := strconv.Atoi(match[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

func migrationFileNames(seq int, name string) (string, string) {
	base := fmt.Sprintf("%06d_%s", seq, name)
	return base + ".up.sql", base + ".down.sql"
}
