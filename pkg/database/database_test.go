package database

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ghuser/worktrack/pkg/logger"
)

func newTestLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, "error")
}

type counter struct {
	ID    int `gorm:"primaryKey"`
	Value int
}

func openSQLite(t *testing.T) *Database {
	t.Helper()
	d, err := Open(sqlite.Open("file::memory:"), newTestLogger())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	sqlDB, err := d.DB().DB()
	if err != nil {
		t.Fatalf("underlying pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(d.Close)
	if err := d.DB().AutoMigrate(&counter{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	d := openSQLite(t)
	ctx := context.Background()

	err := d.WithTx(ctx, func(tx *gorm.DB) error {
		if SQLTx(tx) == nil {
			t.Error("expected an *sql.Tx inside the transaction")
		}
		return tx.Create(&counter{ID: 1, Value: 10}).Error
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var n int64
	d.DB().Model(&counter{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	d := openSQLite(t)
	boom := errors.New("boom")

	err := d.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&counter{ID: 2, Value: 20}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var n int64
	d.DB().Model(&counter{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected rollback, found %d rows", n)
	}
}

func TestWithTx_TranslatesDuplicateKey(t *testing.T) {
	d := openSQLite(t)
	ctx := context.Background()
	if err := d.DB().Create(&counter{ID: 3}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := d.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&counter{ID: 3}).Error
	})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestPing(t *testing.T) {
	d := openSQLite(t)
	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestSQLTx_OutsideTransaction(t *testing.T) {
	d := openSQLite(t)
	if SQLTx(d.DB()) != nil {
		t.Fatal("expected nil outside a transaction")
	}
	if SQLTx(nil) != nil {
		t.Fatal("expected nil for a nil handle")
	}
}

// Integration test, skipped unless TEST_POSTGRES_DSN is set.
func TestNewPool_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}
	d, err := NewPool(context.Background(), dsn, newTestLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Close()
	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}
