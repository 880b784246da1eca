package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"digitalseekho/internal/i18n"
	"digitalseekho/internal/lesson"
	"digitalseekho/internal/models"
	"digitalseekho/internal/progress"
	"digitalseekho/internal/quiz"

	"github.com/fatih/color"
)

// errQuit is returned when input ends mid-lesson
var errQuit = errors.New("input closed")

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	correctColor = color.New(color.FgGreen, color.Bold)
	wrongColor   = color.New(color.FgRed, color.Bold)
	tipColor     = color.New(color.FgYellow)
)

// player runs lessons over a line-based terminal
type player struct {
	in   *bufio.Scanner
	out  io.Writer
	mode i18n.Mode
}

func newPlayer(in io.Reader, out io.Writer, mode i18n.Mode) *player {
	return &player{in: bufio.NewScanner(in), out: out, mode: mode}
}

func (p *player) t(text i18n.Text) string {
	return i18n.T(text, p.mode)
}

func (p *player) ui(key string) string {
	return i18n.Lookup(key, p.mode)
}

func (p *player) println(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *player) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// overview prints each level's completion, the points total and the badges held
func (p *player) overview(catalog *lesson.Catalog, store *progress.Store) {
	headingColor.Fprintln(p.out, p.ui("app.title"))
	p.println("")
	p.println(p.ui("levels.heading"))

	for _, level := range catalog.Levels() {
		percent := store.GetLevelProgress(level.ID, len(level.Lessons))
		fmt.Fprintf(p.out, "  %d. %s: %d%% %s\n", level.ID, p.t(level.Title), percent, p.ui("level.progress"))
		for _, l := range level.Lessons {
			mark := "[ ]"
			if store.IsLessonCompleted(level.ID, l.ID) {
				mark = "[x]"
			}
			fmt.Fprintf(p.out, "     %s %s %s (%s)\n", mark, l.Icon, p.t(l.Title), l.ID)
		}
	}

	up := store.GetUserProgress()
	p.println("")
	fmt.Fprintf(p.out, "%s: %d\n", p.ui("points"), up.Points)
	p.println(p.ui("badges") + ":")
	if len(up.Badges) == 0 {
		p.println("  " + p.ui("badges.none"))
	}
	for _, id := range up.Badges {
		if badge, ok := progress.GetBadgeInfo(id); ok {
			fmt.Fprintf(p.out, "  %s %s\n", badge.Icon, p.t(badge.Name))
		}
	}
}

// playFrom plays a lesson and keeps offering the next one while the learner passes and agrees
func (p *player) playFrom(catalog *lesson.Catalog, store *progress.Store, levelID int, lessonID string, opts ...lesson.SessionOption) error {
	for {
		s, err := lesson.NewSession(catalog, store, levelID, lessonID, opts...)
		if err != nil {
			return err
		}
		if err := p.play(s); err != nil {
			return err
		}

		next := s.NextLesson()
		if next == nil {
			return nil
		}
		if next.LevelID != levelID {
			p.println(p.ui("lesson.level_done"))
		}
		fmt.Fprintf(p.out, "%s: %s %s? (y/n) ", p.ui("lesson.next"), next.Icon, p.t(next.Title))
		answer, err := p.readLine()
		if err != nil {
			return err
		}
		if !strings.HasPrefix(strings.ToLower(answer), "y") {
			return nil
		}
		levelID, lessonID = next.LevelID, next.ID
	}
}

// play shows the lesson content, runs its quiz and reports the result
func (p *player) play(s *lesson.Session) error {
	l := s.Lesson()
	headingColor.Fprintf(p.out, "%s %s\n", l.Icon, p.t(l.Title))

	for !s.InQuiz() {
		step, _ := s.CurrentStep()
		p.println("")
		fmt.Fprintf(p.out, "(%d/%d) ", s.Step()+1, s.TotalSteps())
		headingColor.Fprintln(p.out, p.t(step.Title))
		p.println(p.t(step.Body))
		for _, tip := range step.Tips {
			tipColor.Fprintln(p.out, "  * "+p.t(tip))
		}
		fmt.Fprintf(p.out, "%s ", p.ui("step.continue"))
		if _, err := p.readLine(); err != nil {
			return err
		}
		if err := s.Advance(); err != nil {
			return err
		}
	}

	runner, err := s.Quiz()
	if err != nil {
		return err
	}
	p.println("")
	headingColor.Fprintf(p.out, "%s %s\n", p.ui("quiz.start"), p.t(runner.Title()))
	if desc := p.t(runner.Description()); desc != "" {
		p.println(desc)
	}

	for runner.State() != quiz.StateCompleted {
		p.println("")
		fmt.Fprintf(p.out, "%s %d/%d\n", p.ui("quiz.question"), runner.Index()+1, runner.Len())

		explanation, err := p.askCurrent(runner)
		if err != nil {
			return err
		}

		if fb, ok := runner.Feedback(); ok {
			if fb.Correct {
				correctColor.Fprintln(p.out, p.ui("quiz.correct"))
			} else {
				wrongColor.Fprintln(p.out, p.ui("quiz.incorrect"))
			}
		}
		if text := p.t(explanation); text != "" {
			p.println(text)
		}
		fmt.Fprintf(p.out, "%s ", p.ui("step.continue"))
		if _, err := p.readLine(); err != nil {
			return err
		}
		if err := runner.Next(); err != nil {
			return err
		}
	}

	p.report(s)
	return nil
}

// askCurrent asks the current question until a valid answer is submitted and returns its explanation
func (p *player) askCurrent(runner lesson.Runner) (i18n.Text, error) {
	switch q := runner.(type) {
	case *quiz.TrueFalseQuiz:
		return p.askTrueFalse(q)
	case *quiz.MultipleChoiceQuiz:
		return p.askMultipleChoice(q)
	case *quiz.MatchingQuiz:
		return p.askMatching(q)
	default:
		return i18n.Text{}, fmt.Errorf("unsupported quiz type %T", runner)
	}
}

func (p *player) askTrueFalse(q *quiz.TrueFalseQuiz) (i18n.Text, error) {
	current := q.Current()
	p.println(p.t(current.Statement))
	for {
		fmt.Fprintf(p.out, "%s: ", p.ui("quiz.answer.tf"))
		line, err := p.readLine()
		if err != nil {
			return i18n.Text{}, err
		}
		switch strings.ToLower(line) {
		case "t", "true", "y", "yes":
			_, err = q.Submit(true)
		case "f", "false", "n", "no":
			_, err = q.Submit(false)
		default:
			p.println(p.ui("quiz.invalid"))
			continue
		}
		return current.Explanation, err
	}
}

func (p *player) askMultipleChoice(q *quiz.MultipleChoiceQuiz) (i18n.Text, error) {
	current := q.Current()
	p.println(p.t(current.Question))
	for i, option := range current.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, p.t(option))
	}
	for {
		fmt.Fprintf(p.out, "%s: ", p.ui("quiz.answer.mc"))
		line, err := p.readLine()
		if err != nil {
			return i18n.Text{}, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil {
			p.println(p.ui("quiz.invalid"))
			continue
		}
		if _, err := q.Submit(n - 1); errors.Is(err, quiz.ErrInvalidAnswer) {
			p.println(p.ui("quiz.invalid"))
			continue
		} else if err != nil {
			return i18n.Text{}, err
		}
		return current.Explanation, nil
	}
}

// askMatching asks for a right item per left item; a blank line leaves that left item empty
func (p *player) askMatching(q *quiz.MatchingQuiz) (i18n.Text, error) {
	current := q.Current()
	items := q.RightItems()
	p.println(p.t(current.Prompt))
	for i, item := range items {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, p.t(item.Text))
	}

	for {
		matches := quiz.Matches{}
		for _, pair := range current.Pairs {
			item, err := p.askMatchItem(pair, items)
			if err != nil {
				return i18n.Text{}, err
			}
			if item != "" {
				matches[pair.ID] = item
			}
		}

		if _, err := q.Submit(matches); errors.Is(err, quiz.ErrInvalidAnswer) {
			p.println(p.ui("quiz.invalid"))
			continue
		} else if err != nil {
			return i18n.Text{}, err
		}
		return current.Explanation, nil
	}
}

// askMatchItem reads the right item for one left item. A blank line leaves it empty;
// anything else that is not a listed number is asked again.
func (p *player) askMatchItem(pair quiz.MatchPair, items []quiz.MatchItem) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s -> %s: ", p.t(pair.Left), p.ui("quiz.answer.match"))
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			return "", nil
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(items) {
			p.println(p.ui("quiz.invalid"))
			continue
		}
		return items[n-1].ID, nil
	}
}

func (p *player) report(s *lesson.Session) {
	result, _ := s.Result()
	p.println("")
	headingColor.Fprintln(p.out, p.ui("lesson.done"))
	fmt.Fprintf(p.out, "%s: %d%% (%d/%d)\n", p.ui("quiz.score"), result.Score, result.Correct, result.TotalQuestions)
	if result.Passed {
		correctColor.Fprintln(p.out, p.ui("quiz.passed"))
	} else {
		wrongColor.Fprintln(p.out, p.ui("quiz.failed"))
	}

	for _, id := range s.NewBadges() {
		p.printBadge(id)
	}
	if err := s.SaveErr(); err != nil {
		wrongColor.Fprintf(p.out, "Warning: progress was not saved: %v\n", err)
	}
}

func (p *player) printBadge(id models.BadgeID) {
	badge, ok := progress.GetBadgeInfo(id)
	if !ok {
		return
	}
	tipColor.Fprintf(p.out, "%s %s %s\n", p.ui("badge.earned"), badge.Icon, p.t(badge.Name))
}
