package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// migration driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

// MigrationsDir migration dosyalarının repo içindeki yolu (create komutu için)
const MigrationsDir = "internal/db/migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewMigrator binary'ye gömülü migration'lar için migrator oluşturur.
// Kendi bağlantısını açar, iş bitince Close çağrılmalıdır.
func NewMigrator(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migration kaynağı okunamadı: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("migrator başlatılamadı: %w", err)
	}
	m.Log = migrateLogger{}
	return m, nil
}

// MigrateUp bekleyen tüm migration'ları uygular
func MigrateUp(dsn string) error {
	m, err := NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("Veritabanı şeması güncel")
			return nil
		}
		return fmt.Errorf("migrate up hatası: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("migration versiyonu okunamadı: %w", err)
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("✅ Migration'lar uygulandı")
	return nil
}

// migrateLogger golang-migrate loglarını zerolog'a yönlendirir
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	log.Debug().Str("component", "migrate").Msgf(format, v...)
}

func (migrateLogger) Verbose() bool {
	return false
}
