package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nojimay/jack/lang"
	"github.com/nojimay/jack/log"
)

// runSource reads, parses, and evaluates a single Jack expression from the
// named file ("-" for stdin) and prints the deep-forced result in format.
func runSource(ctx context.Context, name string, format outputFormat) error {
	source, err := readSource(name)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "evaluating source", slog.String("name", name), slog.Int("bytes", len(source)))

	j, err := evalToJSON(ctx, source)
	if err != nil {
		return err
	}

	data, err := marshal(format, j)
	if err != nil {
		return err
	}

	_, err = fmt.Println(string(data))

	return err
}

func readSource(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}

		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// evalToJSON parses, evaluates, and deep-forces a Jack expression in one
// shot for file mode. The REPL performs the same steps itself.
func evalToJSON(ctx context.Context, source string) (*lang.JSON, error) {
	expr, err := lang.ParseString(source)
	if err != nil {
		return nil, err
	}

	value, err := lang.Eval(ctx, expr, lang.Empty())
	if err != nil {
		return nil, err
	}

	return lang.DeepForce(ctx, value)
}
