package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mroshb/debate_arena/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Imports debate topics from a spreadsheet into the debate_topics table.
// Expected columns: Topic Text, Category. The first row is a header.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: import_topics <topics.xlsx>")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	totalImported := 0

	for _, sheetName := range f.GetSheetList() {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 1 {
				continue
			}

			text := strings.TrimSpace(row[0])
			if text == "" {
				continue
			}

			category := sheetName
			if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
				category = strings.TrimSpace(row[1])
			}

			topic := models.DebateTopic{
				Text:     text,
				Category: category,
			}

			// Skip topics that are already in the catalogue.
			var existing int64
			db.Model(&models.DebateTopic{}).Where("text = ?", text).Count(&existing)
			if existing > 0 {
				continue
			}

			if err := db.Create(&topic).Error; err != nil {
				fmt.Printf("Error creating topic in row %d: %v\n", i, err)
			} else {
				totalImported++
			}
		}
	}

	fmt.Printf("Successfully imported %d topics.\n", totalImported)
}
