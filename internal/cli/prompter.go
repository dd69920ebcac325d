package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshsymonds/sift/internal/filter"
)

// FilterPrompter asks the user for optional filter criteria on the terminal.
type FilterPrompter struct {
	reader *LineReader
	writer io.Writer
}

// NewFilterPrompter creates a prompter reading from in and writing to out.
func NewFilterPrompter(in io.Reader, out io.Writer) *FilterPrompter {
	return &FilterPrompter{
		reader: NewLineReader(in),
		writer: out,
	}
}

// PromptCriteria walks the user through the optional filters. It lists the
// available regions, asks whether to filter at all, and then prompts for
// region and amount bounds, with blank answers leaving a criterion unset.
func (p *FilterPrompter) PromptCriteria(ctx context.Context, regions []string) (filter.Criteria, error) {
	var criteria filter.Criteria

	fmt.Fprintf(p.writer, "%s %s\n",
		TitleStyle.Render("Available regions:"),
		strings.Join(regions, ", "))

	apply, err := p.ask(ctx, "Apply filters? (y/n): ")
	if err != nil {
		return criteria, err
	}
	if !strings.EqualFold(apply, "y") {
		return criteria, nil
	}

	criteria.Region, err = p.ask(ctx, "Region (blank to skip): ")
	if err != nil {
		return criteria, err
	}

	criteria.MinAmount, err = p.askAmount(ctx, "Min amount (blank to skip): ")
	if err != nil {
		return criteria, err
	}

	criteria.MaxAmount, err = p.askAmount(ctx, "Max amount (blank to skip): ")
	if err != nil {
		return criteria, err
	}

	return criteria, nil
}

func (p *FilterPrompter) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.writer, PromptStyle.Render(prompt))
	return p.reader.ReadLine(ctx)
}

func (p *FilterPrompter) askAmount(ctx context.Context, prompt string) (*float64, error) {
	answer, err := p.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, nil
	}

	amount, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", answer, err)
	}
	return &amount, nil
}
