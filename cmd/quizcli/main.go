// Command quizcli takes one quiz in the terminal through the assessment API.
package main

import (
	"bufio"
	"context"
	"elearn_backend/internal/model"
	"elearn_backend/pkg/logger"
	"elearn_backend/pkg/quizflow"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	baseURL := flag.String("base", "http://localhost:8080/api", "API base URL")
	token := flag.String("token", os.Getenv("ELEARN_TOKEN"), "bearer token; overrides -email/-password")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	quizID := flag.Uint("quiz", 0, "quiz id to take")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	mode := "release"
	if *verbose {
		mode = "debug"
	}
	logger.InitLogger(logger.Options{Mode: mode})
	defer logger.Log.Sync()
	log := logger.Named("quizcli")

	if *quizID == 0 {
		fmt.Fprintln(os.Stderr, "usage: quizcli -quiz <id> [-token <jwt> | -email <e> -password <p>]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := quizflow.NewClient(quizflow.Session{BaseURL: *baseURL, Token: *token}, quizflow.WithLogger(log))
	if *token == "" {
		if err := client.Login(ctx, *email, *password); err != nil {
			log.Fatal("Login failed", zap.Error(err))
		}
	}

	router := quizflow.NewRouter(client, log)
	if err := run(ctx, router, uint(*quizID), os.Stdin, os.Stdout); err != nil {
		log.Fatal("Quiz flow failed", zap.Error(err))
	}
}

func run(ctx context.Context, router *quizflow.Router, quizID uint, in io.Reader, out io.Writer) error {
	if err := router.Load(ctx, quizID); err != nil {
		return err
	}
	v := router.View()
	fmt.Fprintln(out, v.Gate.Message)

	switch v.State {
	case quizflow.GatedAlreadyPassed:
		return nil
	case quizflow.GatedNeedsEnhancement:
		printEnhancement(out, v)
		return nil
	case quizflow.GatedAlreadyFailed:
		printRecommendation(out, v)
		return nil
	}

	scanner := bufio.NewScanner(in)
	for i, q := range v.Gate.Quiz.Questions {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "   %d) %s\n", j+1, opt)
		}
		if err := askAnswer(router, scanner, out, i, q); err != nil {
			return err
		}
	}

	for {
		res, err := router.Submit(ctx)
		if err == nil {
			printEvaluation(out, res)
			return nil
		}
		fmt.Fprintf(out, "Submission failed: %v\nPress enter to retry, or type q to quit: ", err)
		if !scanner.Scan() || strings.TrimSpace(scanner.Text()) == "q" {
			return err
		}
	}
}

func askAnswer(router *quizflow.Router, scanner *bufio.Scanner, out io.Writer, index int, q model.Question) error {
	prompt := "Your answer (number, empty to skip): "
	if q.IsMultiSelect() {
		prompt = "Your answers (comma separated numbers, empty to skip): "
	}
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errors.New("input closed before the quiz was finished")
		}
		picks, err := parsePicks(scanner.Text(), len(q.Options))
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if !q.IsMultiSelect() && len(picks) > 1 {
			fmt.Fprintln(out, "pick a single option")
			continue
		}
		for _, p := range picks {
			if err := router.Toggle(index, q.Options[p]); err != nil {
				return err
			}
		}
		return nil
	}
}

// parsePicks turns "1, 3" into zero-based option indexes.
func parsePicks(line string, options int) ([]int, error) {
	var picks []int
	seen := map[int]bool{}
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > options {
			return nil, fmt.Errorf("%q is not an option between 1 and %d", field, options)
		}
		if !seen[n] {
			seen[n] = true
			picks = append(picks, n-1)
		}
	}
	return picks, nil
}

func printEvaluation(out io.Writer, res *quizflow.Evaluation) {
	if res.QuizAttempt != nil {
		fmt.Fprintf(out, "\n%s (score %.0f)\n", res.Message, res.QuizAttempt.Score)
	} else {
		fmt.Fprintf(out, "\n%s\n", res.Message)
	}
	for i, ok := range res.Marks {
		mark := "wrong"
		if ok {
			mark = "correct"
		}
		fmt.Fprintf(out, "  %d. %s\n", i+1, mark)
	}
	for _, r := range res.Review {
		fmt.Fprintf(out, "\n%s\n  answer: %s\n", r.QuestionText, strings.Join(r.CorrectAnswers, ", "))
		if r.Explanation != "" {
			fmt.Fprintf(out, "  %s\n", r.Explanation)
		}
	}
}

func printEnhancement(out io.Writer, v quizflow.View) {
	switch {
	case v.EnhancementErr != nil:
		fmt.Fprintf(out, "Enhanced lesson unavailable: %v\n", v.EnhancementErr)
	case v.Enhancement != nil:
		fmt.Fprintf(out, "\n%s\n%s\n", v.Enhancement.Message, v.Enhancement.AI)
	}
	switch {
	case v.ResourcesErr != nil:
		fmt.Fprintf(out, "Resources unavailable: %v\n", v.ResourcesErr)
	case v.Resources != nil:
		fmt.Fprintf(out, "\n%s\n", v.Resources.AI.Title)
		for _, links := range [][]quizflow.ResourceLink{v.Resources.AI.YoutubeLinks, v.Resources.AI.CourseLinks} {
			for _, l := range links {
				fmt.Fprintf(out, "  - %s <%s>\n", l.Title, l.Link)
			}
		}
	}
}

func printRecommendation(out io.Writer, v quizflow.View) {
	switch {
	case v.RecommendationErr != nil:
		fmt.Fprintf(out, "No recommendation available: %v\n", v.RecommendationErr)
	case v.Recommendation == nil || v.Recommendation.CourseRecommended == nil:
		fmt.Fprintln(out, "No recommendation available")
	default:
		fmt.Fprintf(out, "Try this course next: %s\n", v.Recommendation.CourseRecommended.Title)
	}
}
