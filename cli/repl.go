package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nojimay/jack/lang"
)

// runREPL reads Jack expressions interactively, one at a time, evaluating
// and printing each. A line is read at the `expr> ` prompt; if the parser
// hits end of input mid-expression the prompt switches to the continuation
// form `....| ` and another line is appended, exactly as the reference
// implementation's repl_read_and_parse does. A blank line ends a
// multi-line entry. Ctrl-D (EOF) exits the REPL cleanly; any partially
// entered expression is discarded.
func runREPL(ctx context.Context, format outputFormat) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		expr, err := replReadAndParse(scanner)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			fmt.Println(errorStyle.Render("ERROR: " + err.Error()))

			continue
		}

		value, err := lang.Eval(ctx, expr, lang.Empty())
		if err != nil {
			fmt.Println(errorStyle.Render("ERROR: " + err.Error()))

			continue
		}

		j, err := lang.DeepForce(ctx, value)
		if err != nil {
			fmt.Println(errorStyle.Render("ERROR: " + err.Error()))

			continue
		}

		data, err := marshal(format, j)
		if err != nil {
			fmt.Println(errorStyle.Render("ERROR: " + err.Error()))

			continue
		}

		fmt.Println(resultStyle.Render(resultPrefix) + string(data))
	}
}

// replReadAndParse accumulates lines from scanner until they form a
// complete expression, switching to the continuation prompt whenever the
// parser reports ErrIncompleteInput. A hard parse error (not an
// incomplete-input error) is returned immediately without further reads.
// A blank line on an empty buffer is ignored; a blank line after earlier
// lines ends the entry, and the accumulated text is parsed as it stands.
func replReadAndParse(scanner *bufio.Scanner) (*lang.Expr, error) {
	var line strings.Builder

	prompt, style := evalPrompt, promptStyle

	for {
		fmt.Print(style.Render(prompt))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}

			return nil, io.EOF
		}

		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			if strings.TrimSpace(line.String()) == "" {
				continue
			}

			return lang.ParseString(line.String())
		}

		line.WriteString(text)
		line.WriteByte('\n')

		expr, err := lang.ParseString(line.String())
		if err == nil {
			return expr, nil
		}

		if !errors.Is(err, lang.ErrIncompleteInput) {
			return nil, err
		}

		prompt, style = continuationPrompt, continuationStyle
	}
}
