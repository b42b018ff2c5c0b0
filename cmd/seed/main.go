package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"newsgraph-ai/config"
	"newsgraph-ai/internal/models"
	"newsgraph-ai/internal/repositories"
	"newsgraph-ai/pkg/postgres"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	articleCount int
	randomSeed   int64
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a sample news corpus into the article store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(); err != nil {
			return fmt.Errorf("failed to load environment: %v", err)
		}
		return run()
	},
}

func init() {
	rootCmd.Flags().IntVar(&articleCount, "articles", 50, "number of sample articles to create")
	rootCmd.Flags().Int64Var(&randomSeed, "seed", 42, "random seed for reproducible corpora")
}

var categories = []models.Category{
	{ID: "cat-politics", Name: "Politics", Slug: "politics"},
	{ID: "cat-technology", Name: "Technology", Slug: "technology"},
	{ID: "cat-science", Name: "Science", Slug: "science"},
	{ID: "cat-sports", Name: "Sports", Slug: "sports"},
	{ID: "cat-business", Name: "Business", Slug: "business"},
}

var tagNames = []string{"climate", "elections", "ai", "space", "health", "economy", "energy", "football"}

var authors = []string{"Dana Whitfield", "Marcus Obi", "Priya Raman", "Jonas Keller", "Alma Reyes"}

var headlines = []string{
	"%s breakthrough reshapes the debate",
	"What the latest %s numbers really mean",
	"Inside the %s story everyone is talking about",
	"Five things to know about %s this week",
	"How %s is changing faster than expected",
}

func run() error {
	db, err := postgres.NewClient(config.Env.PostgresDSN)
	if err != nil {
		return err
	}
	if err := postgres.AutoMigrate(db, &models.Article{}, &models.Category{}, &models.Tag{}); err != nil {
		return err
	}

	repo := repositories.NewArticleRepository(db)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(randomSeed))

	for i := range categories {
		category := categories[i]
		if err := repo.CreateCategory(ctx, &category); err != nil {
			log.Printf("category %s already present or failed: %v", category.ID, err)
		}
	}

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag := models.Tag{ID: "tag-" + name, Name: name}
		if err := db.WithContext(ctx).Create(&tag).Error; err != nil {
			log.Printf("tag %s already present or failed: %v", tag.ID, err)
		}
		tags = append(tags, tag)
	}

	for i := 0; i < articleCount; i++ {
		category := categories[rng.Intn(len(categories))]
		topic := tagNames[rng.Intn(len(tagNames))]

		article := models.Article{
			ID:           uuid.NewString(),
			Title:        fmt.Sprintf(headlines[rng.Intn(len(headlines))], topic),
			Content:      fmt.Sprintf("A detailed report on %s from the %s desk.", topic, category.Name),
			Author:       authors[rng.Intn(len(authors))],
			PublishedAt:  time.Now().Add(-time.Duration(rng.Intn(90*24)) * time.Hour),
			ViewCount:    rng.Intn(50000),
			LikeCount:    rng.Intn(5000),
			CommentCount: rng.Intn(800),
			CategoryID:   category.ID,
			Tags:         []models.Tag{tags[rng.Intn(len(tags))]},
		}
		if err := repo.Create(ctx, &article); err != nil {
			return fmt.Errorf("failed to create article %d: %v", i, err)
		}
	}

	log.Printf("Seeded %d articles across %d categories", articleCount, len(categories))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
