package lesson

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"digitalseekho/internal/quiz"
)

//go:embed data/*.json
var courseData embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Catalog is the loaded course: levels in order, each with its lessons in order
type Catalog struct {
	levels  []*Level
	byLevel map[int]*Level
}

// Default returns the built-in course, loaded once from the embedded data files
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadFS(courseData, "data")
	})
	return defaultCatalog, defaultErr
}

// LoadFS reads every *.json level file in dir. Each file holds one level.
// Quizzes are checked here so a bad data file fails at load, not mid-lesson.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson data: %w", err)
	}

	c := &Catalog{byLevel: make(map[int]*Level)}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		var level Level
		if err := json.Unmarshal(data, &level); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		if err := c.add(&level); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}

	if len(c.levels) == 0 {
		return nil, fmt.Errorf("no levels found in %s", dir)
	}
	sort.Slice(c.levels, func(i, j int) bool {
		return c.levels[i].ID < c.levels[j].ID
	})
	return c, nil
}

func (c *Catalog) add(level *Level) error {
	if level.ID <= 0 {
		return fmt.Errorf("level id must be positive, got %d", level.ID)
	}
	if _, ok := c.byLevel[level.ID]; ok {
		return fmt.Errorf("duplicate level %d", level.ID)
	}
	if len(level.Lessons) == 0 {
		return fmt.Errorf("level %d has no lessons", level.ID)
	}

	seen := make(map[string]bool, len(level.Lessons))
	for _, l := range level.Lessons {
		if l.ID == "" {
			return fmt.Errorf("level %d has a lesson without an id", level.ID)
		}
		if seen[l.ID] {
			return fmt.Errorf("level %d has duplicate lesson %q", level.ID, l.ID)
		}
		seen[l.ID] = true
		l.LevelID = level.ID

		if err := decodeQuestions(&l.Quiz); err != nil {
			return fmt.Errorf("lesson %q: %w", l.ID, err)
		}
		// Build once with a fixed shuffle to surface configuration errors now
		if _, err := newRunner(&l.Quiz, quiz.Config{}, noShuffle); err != nil {
			return fmt.Errorf("lesson %q: %w", l.ID, err)
		}
	}

	c.levels = append(c.levels, level)
	c.byLevel[level.ID] = level
	return nil
}

func decodeQuestions(q *Quiz) error {
	var err error
	switch q.Kind {
	case KindTrueFalse:
		err = json.Unmarshal(q.Questions, &q.trueFalse)
	case KindMultipleChoice:
		err = json.Unmarshal(q.Questions, &q.multipleChoice)
	case KindMatching:
		err = json.Unmarshal(q.Questions, &q.matching)
	default:
		return fmt.Errorf("unknown quiz kind %q", q.Kind)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s questions: %w", q.Kind, err)
	}
	return nil
}

func noShuffle(int, func(i, j int)) {}

// Levels returns the levels in order
func (c *Catalog) Levels() []*Level {
	return append([]*Level(nil), c.levels...)
}

// Level returns a level by ID, or nil if there is none
func (c *Catalog) Level(id int) *Level {
	return c.byLevel[id]
}

// Lesson returns a lesson by level and lesson ID, or nil if there is none
func (c *Catalog) Lesson(levelID int, lessonID string) *Lesson {
	level := c.byLevel[levelID]
	if level == nil {
		return nil
	}
	for _, l := range level.Lessons {
		if l.ID == lessonID {
			return l
		}
	}
	return nil
}

// Next returns the lesson after the given one: the next in its level, or the first of the following level.
// It returns nil after the last lesson of the course.
func (c *Catalog) Next(levelID int, lessonID string) *Lesson {
	for i, level := range c.levels {
		if level.ID != levelID {
			continue
		}
		for j, l := range level.Lessons {
			if l.ID != lessonID {
				continue
			}
			if j+1 < len(level.Lessons) {
				return level.Lessons[j+1]
			}
			if i+1 < len(c.levels) {
				return c.levels[i+1].Lessons[0]
			}
			return nil
		}
	}
	return nil
}

// TotalLessons is the number of lessons in a level, 0 for an unknown level
func (c *Catalog) TotalLessons(levelID int) int {
	if level := c.byLevel[levelID]; level != nil {
		return len(level.Lessons)
	}
	return 0
}
