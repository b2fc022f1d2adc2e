package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"Foodgram-Backend/cmd/config"
	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/catalog"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "loader",
	Short: "Seed the catalog tables from CSV files",
	Long: `loader imports reference data into the database.

Examples:

  loader ingredients data/ingredients.csv
  loader tags data/tags.csv
`,
}

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients [file]",
	Short: "Upsert ingredients from a name,measurement_unit CSV",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runLoad(args[0], loadIngredients)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags [file]",
	Short: "Upsert tags from a name,color,slug CSV",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runLoad(args[0], loadTags)
	},
}

func init() {
	rootCmd.AddCommand(ingredientsCmd)
	rootCmd.AddCommand(tagsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}

type loadFunc func(ctx context.Context, repo catalog.CatalogRepository, rec []string) (bool, error)

func runLoad(path string, load loadFunc) {
	_ = godotenv.Load()
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		color.Red("❌ Database connection failed: %v", err)
		os.Exit(1)
	}
	if err := migration.Migrate(db); err != nil {
		color.Red("❌ Migration failed: %v", err)
		os.Exit(1)
	}

	file, err := os.Open(path)
	if err != nil {
		color.Red("❌ Cannot open %s: %v", path, err)
		os.Exit(1)
	}
	defer file.Close()

	repo := catalog.NewCatalogRepository(db)
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	created, skipped := 0, 0
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			color.Red("❌ %s:%d: %v", path, line, err)
			os.Exit(1)
		}

		isNew, err := load(context.Background(), repo, rec)
		if err != nil {
			color.Red("❌ %s:%d: %v", path, line, err)
			os.Exit(1)
		}
		if isNew {
			created++
		} else {
			skipped++
		}
	}

	green := color.New(color.FgGreen, color.Bold)
	green.Printf("✅ Done: %d created, %d already present\n", created, skipped)
}

func loadIngredients(ctx context.Context, repo catalog.CatalogRepository, rec []string) (bool, error) {
	if len(rec) != 2 {
		return false, fmt.Errorf("expected name,measurement_unit but got %d fields", len(rec))
	}
	_, created, err := repo.GetOrCreateIngredient(ctx, rec[0], rec[1])
	return created, err
}

func loadTags(ctx context.Context, repo catalog.CatalogRepository, rec []string) (bool, error) {
	if len(rec) != 3 {
		return false, fmt.Errorf("expected name,color,slug but got %d fields", len(rec))
	}
	_, created, err := repo.GetOrCreateTag(ctx, rec[0], rec[1], rec[2])
	return created, err
}
