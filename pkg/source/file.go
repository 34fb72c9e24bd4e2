package source

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// FromFile builds a cached source over a plain-text word list: one value
// per line, blank lines and '#' comments skipped. A line may carry extra
// whitespace-separated fields; only the first becomes the record value.
func FromFile(path string) *Source {
	return FromFuncContext(func(_ context.Context) ([]Record, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open word list: %w", err)
		}
		defer f.Close()

		var records []Record
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			fields := strings.Fields(line)
			records = append(records, Record{Value: fields[0]})
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read word list: %w", err)
		}
		return records, nil
	}).WithCache(true)
}
