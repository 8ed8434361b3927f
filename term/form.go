// Package term renders survey forms on a plain terminal, one question at a
// time. It has no cursor handling: everything is line-oriented so it works
// over ssh, in CI logs, and under expect-style scripting.
package term

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gradlink/gradlink-cli/model"
	"github.com/gradlink/gradlink-cli/survey"
)

type Form struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewForm(in io.Reader, out io.Writer) *Form {
	return &Form{in: bufio.NewScanner(in), out: out}
}

// Fill prompts for every question in order, writing responses into answers.
// Required questions are re-asked until they hold something; optional ones
// accept a blank line as "skip". Returns io.EOF if input runs dry.
func (f *Form) Fill(questions []model.Question, answers *survey.Answers) error {
	for i, q := range questions {
		fmt.Fprintf(f.out, "\n%d. %s", i+1, q.Text)
		if q.Required {
			fmt.Fprint(f.out, " *")
		}
		fmt.Fprintln(f.out)

		var err error
		switch q.Type {
		case model.KindLongText:
			err = f.askLongText(q, answers)
		case model.KindSingleChoice:
			err = f.askSingleChoice(q, answers)
		case model.KindMultiChoice:
			err = f.askMultiChoice(q, answers)
		case model.KindRating:
			err = f.askRating(q, answers)
		default:
			err = f.askShortText(q, answers)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) askShortText(q model.Question, answers *survey.Answers) error {
	for {
		line, err := f.readLine("> ")
		if err != nil {
			return err
		}
		if line == "" && q.Required {
			fmt.Fprintln(f.out, "An answer is required.")
			continue
		}
		answers.SetText(q.ID, line)
		return nil
	}
}

// askLongText collects lines until a lone "." terminator, the same convention
// as mail(1).
func (f *Form) askLongText(q model.Question, answers *survey.Answers) error {
	for {
		fmt.Fprintln(f.out, `(end with a single "." on its own line)`)
		var lines []string
		for {
			line, err := f.readLine("| ")
			if err != nil {
				return err
			}
			if line == "." {
				break
			}
			lines = append(lines, line)
		}
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text == "" && q.Required {
			fmt.Fprintln(f.out, "An answer is required.")
			continue
		}
		answers.SetText(q.ID, text)
		return nil
	}
}

func (f *Form) askSingleChoice(q model.Question, answers *survey.Answers) error {
	for i, opt := range q.Options {
		fmt.Fprintf(f.out, "  %d) %s\n", i+1, opt)
	}
	for {
		line, err := f.readLine("choice> ")
		if err != nil {
			return err
		}
		if line == "" {
			if q.Required {
				fmt.Fprintln(f.out, "An answer is required.")
				continue
			}
			answers.SetText(q.ID, "")
			return nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(q.Options) {
			fmt.Fprintf(f.out, "Enter a number between 1 and %d.\n", len(q.Options))
			continue
		}
		answers.SetText(q.ID, q.Options[n-1])
		return nil
	}
}

// askMultiChoice takes comma-separated option numbers and toggles each one,
// so "1,3" then "3" leaves only option 1 selected.
func (f *Form) askMultiChoice(q model.Question, answers *survey.Answers) error {
	for i, opt := range q.Options {
		fmt.Fprintf(f.out, "  %d) %s\n", i+1, opt)
	}
	for {
		line, err := f.readLine("choices (e.g. 1,3)> ")
		if err != nil {
			return err
		}
		if line != "" {
			ok := true
			for _, part := range strings.Split(line, ",") {
				n, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil || n < 1 || n > len(q.Options) {
					fmt.Fprintf(f.out, "Enter numbers between 1 and %d.\n", len(q.Options))
					ok = false
					break
				}
				answers.Toggle(q.ID, q.Options[n-1])
			}
			if !ok {
				continue
			}
		}
		if q.Required && len(answers.Get(q.ID).Selected) == 0 {
			fmt.Fprintln(f.out, "Pick at least one option.")
			continue
		}
		return nil
	}
}

func (f *Form) askRating(q model.Question, answers *survey.Answers) error {
	max := q.ScaleMax
	for {
		line, err := f.readLine(fmt.Sprintf("rating (1-%d)> ", max))
		if err != nil {
			return err
		}
		if line == "" {
			if q.Required {
				fmt.Fprintln(f.out, "An answer is required.")
				continue
			}
			answers.SetRating(q.ID, 0)
			return nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > max {
			fmt.Fprintf(f.out, "Enter a number between 1 and %d.\n", max)
			continue
		}
		answers.SetRating(q.ID, n)
		return nil
	}
}

// ReadLine prompts once and returns the trimmed input line.
func (f *Form) ReadLine(prompt string) (string, error) {
	return f.readLine(prompt)
}

func (f *Form) readLine(prompt string) (string, error) {
	fmt.Fprint(f.out, prompt)
	if !f.in.Scan() {
		if err := f.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(f.in.Text()), nil
}
