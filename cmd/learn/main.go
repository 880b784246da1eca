package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"digitalseekho/internal/config"
	"digitalseekho/internal/i18n"
	"digitalseekho/internal/lesson"
	"digitalseekho/internal/progress"
	"digitalseekho/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	langFlag := flag.String("lang", "", "Language: english, urdu or bilingual (default from LANGUAGE)")
	levelFlag := flag.Int("level", 0, "Level of the lesson to play (found from -lesson when omitted)")
	lessonFlag := flag.String("lesson", "", "Lesson ID to play; without it the level overview is shown")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded, using environment variables")
	}

	cfg := config.Load()
	if *langFlag != "" {
		cfg.Language = *langFlag
	}

	mode, err := i18n.ParseMode(cfg.Language)
	if err != nil {
		log.Fatalf("Invalid language: %v", err)
	}

	catalog, err := lesson.Default()
	if err != nil {
		log.Fatalf("Failed to load lessons: %v", err)
	}

	backend, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open progress storage: %v", err)
	}
	defer backend.Close()

	store := progress.NewStore(backend, progress.WithKey(cfg.ProgressKey))
	p := newPlayer(os.Stdin, os.Stdout, mode)

	if *lessonFlag == "" {
		p.overview(catalog, store)
		return
	}

	levelID := *levelFlag
	if levelID == 0 {
		levelID = findLevel(catalog, *lessonFlag)
	}

	err = p.playFrom(catalog, store, levelID, *lessonFlag, lesson.WithPassingScore(cfg.PassingScore))
	if errors.Is(err, lesson.ErrLessonNotFound) {
		p.println(i18n.Lookup("lesson.notfound", mode) + ": " + *lessonFlag)
		os.Exit(1)
	}
	if err != nil && !errors.Is(err, errQuit) {
		log.Fatalf("Lesson failed: %v", err)
	}
}

// findLevel returns the level holding lessonID, or 0 when no level does
func findLevel(catalog *lesson.Catalog, lessonID string) int {
	for _, level := range catalog.Levels() {
		if catalog.Lesson(level.ID, lessonID) != nil {
			return level.ID
		}
	}
	return 0
}
