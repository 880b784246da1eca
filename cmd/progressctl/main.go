package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"digitalseekho/internal/config"
	"digitalseekho/internal/i18n"
	"digitalseekho/internal/lesson"
	"digitalseekho/internal/progress"
	"digitalseekho/internal/service"
	"digitalseekho/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded, using environment variables")
	}
	cfg := config.Load()

	backend, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open progress storage: %v", err)
	}
	defer backend.Close()

	if err := run(os.Args[1], os.Args[2:], cfg, backend, os.Stdin, os.Stdout); err != nil {
		backend.Close()
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

// run dispatches one subcommand. Flags common to all subcommands are parsed here.
func run(command string, args []string, cfg *config.Config, backend storage.Backend, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(out)
	key := fs.String("key", cfg.ProgressKey, "Storage key of the learner")
	lang := fs.String("lang", cfg.Language, "Language for lesson and badge names")
	output := fs.String("output", "", "Output file path")
	input := fs.String("input", "", "Input file path")
	clearData := fs.Bool("clear", false, "Remove all stored progress before import (WARNING: destructive)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode, err := i18n.ParseMode(*lang)
	if err != nil {
		return err
	}
	store := progress.NewStore(backend, progress.WithKey(*key))
	backups := service.NewBackupService(backend, cfg.StorageType)

	switch command {
	case "show":
		return handleShow(out, store, mode)
	case "badges":
		return handleBadges(out, store, mode)
	case "keys":
		return handleKeys(out, backend)
	case "export":
		return handleExport(backups, *output)
	case "import":
		if *input == "" {
			return fmt.Errorf("-input flag is required")
		}
		return handleImport(in, out, backups, *input, *clearData)
	case "report":
		return handleReport(store, mode, *output)
	case "reset":
		return handleReset(in, out, store)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func handleShow(out io.Writer, store *progress.Store, mode i18n.Mode) error {
	catalog, err := lesson.Default()
	if err != nil {
		return err
	}

	p := store.GetUserProgress()
	fmt.Fprintf(out, "Key:           %s\n", store.Key())
	fmt.Fprintf(out, "Points:        %d\n", p.Points)
	fmt.Fprintf(out, "Current level: %d\n", p.CurrentLevel)
	fmt.Fprintf(out, "Last active:   %s\n", p.LastActive.Format(time.RFC3339))

	for _, level := range catalog.Levels() {
		fmt.Fprintf(out, "\nLevel %d: %s (%d%%)\n", level.ID, i18n.T(level.Title, mode), store.GetLevelProgress(level.ID, len(level.Lessons)))
		for _, l := range level.Lessons {
			lp := store.GetLessonProgress(level.ID, l.ID)
			if lp == nil {
				fmt.Fprintf(out, "  [ ] %s\n", l.ID)
				continue
			}
			score := "-"
			if lp.QuizScore != nil {
				score = fmt.Sprintf("%d%%", *lp.QuizScore)
			}
			fmt.Fprintf(out, "  [x] %s  score %s  %s\n", l.ID, score, time.Duration(lp.TimeSpent)*time.Millisecond)
		}
	}
	return nil
}

func handleBadges(out io.Writer, store *progress.Store, mode i18n.Mode) error {
	p := store.GetUserProgress()
	for _, badge := range store.GetAllBadges() {
		mark := "[ ]"
		if p.HasBadge(badge.ID) {
			mark = "[x]"
		}
		fmt.Fprintf(out, "%s %s %s: %s\n", mark, badge.Icon, i18n.T(badge.Name, mode), i18n.T(badge.Requirement, mode))
	}
	return nil
}

func handleKeys(out io.Writer, lister storage.Lister) error {
	keys, err := lister.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Fprintln(out, key)
	}
	return nil
}

func handleExport(backups *service.BackupService, outputPath string) error {
	if outputPath == "" {
		outputPath = fmt.Sprintf("progress_%s.json", time.Now().Format("20060102_150405"))
	}
	if err := ensureDir(outputPath); err != nil {
		return err
	}

	log.Printf("Exporting progress to: %s", outputPath)
	return backups.Export(outputPath)
}

func handleImport(in io.Reader, out io.Writer, backups *service.BackupService, inputPath string, clearData bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	if clearData {
		if !confirm(in, out, "WARNING: This will delete all existing progress. Type 'yes' to confirm: ") {
			log.Println("Import cancelled")
			return nil
		}
		if err := backups.Clear(); err != nil {
			return err
		}
	}

	n, err := backups.Import(inputPath)
	if err != nil {
		return err
	}
	log.Printf("Import complete! %d records", n)
	return nil
}

func handleReport(store *progress.Store, mode i18n.Mode, outputPath string) error {
	catalog, err := lesson.Default()
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = fmt.Sprintf("report_%s_%s.xlsx", store.Key(), time.Now().Format("20060102"))
	}
	if err := ensureDir(outputPath); err != nil {
		return err
	}

	reports := service.NewReportService(catalog, mode)
	if err := reports.SaveReport(outputPath, store.Key(), store.GetUserProgress()); err != nil {
		return err
	}
	log.Printf("Report written to: %s", outputPath)
	return nil
}

func handleReset(in io.Reader, out io.Writer, store *progress.Store) error {
	prompt := fmt.Sprintf("WARNING: This will delete all progress for %s. Type 'yes' to confirm: ", store.Key())
	if !confirm(in, out, prompt) {
		log.Println("Reset cancelled")
		return nil
	}
	if err := store.ResetProgress(); err != nil {
		return err
	}
	log.Printf("Progress reset for %s", store.Key())
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}

func printUsage() {
	fmt.Println("Digital Seekho Progress Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  progressctl show [options]      Show a learner's lessons, points and level progress")
	fmt.Println("  progressctl badges [options]    List badges and which are earned")
	fmt.Println("  progressctl keys                List stored learner keys")
	fmt.Println("  progressctl export [options]    Export all progress to a JSON file")
	fmt.Println("  progressctl import [options]    Import progress from a JSON file")
	fmt.Println("  progressctl report [options]    Write an .xlsx progress report for a learner")
	fmt.Println("  progressctl reset [options]     Delete a learner's progress")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -key <key>        Learner storage key (default: PROGRESS_KEY)")
	fmt.Println("  -lang <mode>      english, urdu or bilingual (default: LANGUAGE)")
	fmt.Println("  -output <file>    Output file for export and report")
	fmt.Println("  -input <file>     Input file for import (required)")
	fmt.Println("  -clear            Remove all progress before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  STORAGE_TYPE     file, memory or database (default: file)")
	fmt.Println("  DATA_DIR         Directory for file storage (default: ./data)")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./digitalseekho.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
