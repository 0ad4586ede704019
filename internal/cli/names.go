package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gnomegl/mcavail/internal/core"
)

// LoadNames reads one candidate name per line, trimming whitespace and
// skipping blank lines. The whole file is read before any checking starts.
func LoadNames(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, core.NewDataError(fmt.Sprintf("failed to open names file %s", path), err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	if err := scanner.Err(); err != nil {
		return nil, core.NewDataError(fmt.Sprintf("failed to read names file %s", path), err)
	}

	return names, nil
}
