package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DBTX *sql.DB ve *sql.Tx için ortak sorgu arayüzü
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TransactionFunc transaction içinde çalışacak fonksiyon tipi.
// Aldığı context aktif transaction'ı taşır.
type TransactionFunc func(ctx context.Context) error

// Transactor service katmanının transaction sınırlarını yönetir
type Transactor interface {
	WithTransaction(ctx context.Context, fn TransactionFunc) error
	WithSavepoint(ctx context.Context, name string, fn TransactionFunc) error
}

type txKey struct{}

// TxFrom context'teki aktif transaction'ı döner
func TxFrom(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}

// Executor context'te transaction varsa onu, yoksa fallback'i döner
func Executor(ctx context.Context, fallback DBTX) DBTX {
	if tx, ok := TxFrom(ctx); ok {
		return tx
	}
	return fallback
}

// TxManager *sql.DB üzerinde Transactor implementasyonu
type TxManager struct {
	db *sql.DB
}

// NewTxManager yeni transaction yöneticisi oluşturur
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// WithTransaction database transaction'ı yönetir.
// Hata durumunda otomatik rollback, başarı durumunda commit yapar.
// Context'te zaten transaction varsa fn aynı transaction içinde çalışır.
func (m *TxManager) WithTransaction(ctx context.Context, fn TransactionFunc) (err error) {
	if _, ok := TxFrom(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaction başlatılamadı: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("Rollback hatası (panic)")
			}
			log.Error().Interface("panic", r).Msg("Transaction panic ile rollback yapıldı")
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error().Err(rollbackErr).Msg("Rollback hatası")
			return fmt.Errorf("transaction hatası ve rollback hatası: %w, rollback: %v", err, rollbackErr)
		}
		log.Debug().Err(err).Msg("Transaction rollback yapıldı")
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Msg("Commit hatası")
		return fmt.Errorf("transaction commit hatası: %w", err)
	}

	log.Debug().Msg("Transaction başarıyla commit edildi")
	return nil
}

// WithSavepoint fn'i aktif transaction içinde bir SAVEPOINT altında çalıştırır.
// fn hata dönerse sadece savepoint'e kadar geri alınır, dış transaction devam eder.
// Transaction yoksa fn doğrudan çalıştırılır. name sabit bir identifier olmalıdır.
func (m *TxManager) WithSavepoint(ctx context.Context, name string, fn TransactionFunc) error {
	tx, ok := TxFrom(ctx)
	if !ok {
		return fn(ctx)
	}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("savepoint oluşturulamadı: %w", err)
	}

	if err := fn(ctx); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return fmt.Errorf("savepoint geri alınamadı: %w, rollback: %v", err, rbErr)
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("savepoint serbest bırakılamadı: %w", err)
	}
	return nil
}
