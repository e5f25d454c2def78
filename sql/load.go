package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	"github.com/lib/pq"
)

//go:embed init.sql
var initSQL string

//go:embed sources.sql
var sourcesSQL string

//go:embed passages.sql
var passagesSQL string

// Function lists for verification
var SourcesFunctions = []string{
	"init_sources",
	"insert_source",
	"select_source",
	"select_all_sources",
	"delete_all_sources",
}

var PassagesFunctions = []string{
	"init_passages",
	"insert_passage",
	"select_passage",
	"select_passages_by_source",
	"select_passages_by_distance",
	"count_passages",
	"delete_all_passages",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadSourcesSql loads source-related SQL functions
func LoadSourcesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, SourcesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing sources functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(sourcesSQL)
	if err != nil {
		return fmt.Errorf("error executing sources SQL: %w", err)
	}

	exist, err := checkFunctions(db, SourcesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL sources functions loaded successfully")
	return nil
}

// LoadPassagesSql loads passage-related SQL functions
func LoadPassagesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, PassagesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing passages functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(passagesSQL)
	if err != nil {
		return fmt.Errorf("error executing passages SQL: %w", err)
	}

	exist, err := checkFunctions(db, PassagesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL passages functions loaded successfully")
	return nil
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadSourcesSql(db, force); err != nil {
		return err
	}

	if err := LoadPassagesSql(db, force); err != nil {
		return err
	}

	return nil
}

// checkFunctions reports whether all named SQL functions already exist.
func checkFunctions(db *sql.DB, functions []string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT count(*) FROM pg_proc WHERE proname = ANY($1)`,
		pq.Array(functions),
	).Scan(&count)
	if err != nil {
		return false, err
	}

	return count >= len(functions), nil
}
