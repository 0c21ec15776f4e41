package notes_module

import (
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"
	"github.com/notesnap/notesnap/internal/stores/note"
	"github.com/notesnap/notesnap/pkg/utils"
)

// noteStore is the persistence backend for saved notes
var noteStore note.Store

// Init creates the note store, choosing MySQL or in-memory storage
// based on configuration
func Init(cfg *utils.Config) error {
	dbConfig := mysql.Config{
		User:      cfg.Get("MYSQL_USER"),
		Passwd:    cfg.Get("MYSQL_PASSWORD"),
		Net:       "tcp",
		Addr:      fmt.Sprintf("%s:%s", cfg.Get("MYSQL_HOST"), cfg.GetWithDefault("MYSQL_PORT", "3306")),
		DBName:    cfg.Get("MYSQL_DATABASE"),
		ParseTime: true,
	}

	if dbConfig.DBName != "" {
		store, err := note.NewMySqlStore(dbConfig.FormatDSN())
		if err != nil {
			return err
		}
		noteStore = store
		return nil
	}

	log.Println("[NOTES]: Warning, MYSQL_DATABASE not set, using in-memory store (notes will not persist across restarts)")
	noteStore = note.NewInMemoryStore()
	return nil
}
