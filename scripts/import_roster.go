// scripts/import_roster.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/elad-asi/attendance-manager/config"
	"github.com/elad-asi/attendance-manager/database"
	"github.com/elad-asi/attendance-manager/models"
	"github.com/elad-asi/attendance-manager/roster"
)

// Imports a roster spreadsheet straight into a sheet, bypassing the HTTP
// upload flow. Replaces the sheet's member set.
func main() {
	file := flag.String("file", "", "roster file (.xlsx or .csv)")
	sheetID := flag.String("sheet", "", "spreadsheet id of the target sheet")
	sheetName := flag.String("name", "roster", "sheet name used when creating a new sheet")
	flag.Parse()

	if *file == "" || *sheetID == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	database.Connect(cfg)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open roster file: %v", err)
	}
	defer f.Close()

	members, _, err := roster.ParseFile(f, *file)
	if err != nil {
		log.Fatalf("failed to parse roster: %v", err)
	}
	if len(members) == 0 {
		log.Fatal("no members found in file")
	}

	var sheet models.Sheet
	if err := database.DB.First(&sheet, "spreadsheet_id = ?", *sheetID).Error; err != nil {
		sheet = models.Sheet{
			SpreadsheetID: *sheetID,
			SheetName:     *sheetName,
			StartDate:     models.DefaultStartDate,
			EndDate:       models.DefaultEndDate,
		}
		if err := database.DB.Create(&sheet).Error; err != nil {
			log.Fatalf("failed to create sheet: %v", err)
		}
		fmt.Println("created sheet:", *sheetID)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("spreadsheet_id = ?", sheet.SpreadsheetID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].SpreadsheetID = sheet.SpreadsheetID
			if err := tx.Create(&members[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("failed to save members: %v", err)
	}

	fmt.Printf("imported %d members into sheet %s\n", len(members), sheet.SpreadsheetID)
}
