package db

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const (
	maxOpenConns = 50
	maxIdleConns = 10
	connMaxLife  = time.Minute * 15

	DefaultMigrationDir = "file://db/migration"
)

func Migrate(db *sql.DB, migrationDir string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationDir, "postgres", driver)
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	if dirty {
		return errors.New("database is dirty")
	}
	log.Println("migration version:", version)

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	log.Println("migration successful...")
	return nil
}

func ConnectToDb(psqlUrl, migrationDir string) (*sql.DB, error) {
	// Open may just validate its arguments without creating a connection to the database
	db, err := sql.Open("postgres", psqlUrl)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLife)

	if err := Migrate(db, migrationDir); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func MustConnectToDb(psqlUrl string) *sql.DB {
	db, err := ConnectToDb(psqlUrl, DefaultMigrationDir)
	if err != nil {
		panic(err)
	}
	return db
}
