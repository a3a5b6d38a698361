package env

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// LoadDotEnv parses a .env file into variable pairs sorted by name.
func LoadDotEnv(path string) ([]Variable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open env file: %w", err)
	}
	defer file.Close()

	return ParseDotEnv(file)
}

// ParseDotEnv reads .env formatted content from r. Quoting, escapes,
// comments, "export" prefixes and ${VAR} expansion follow godotenv. A name
// defined twice keeps its last value, as the shell would.
func ParseDotEnv(r io.Reader) ([]Variable, error) {
	values, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}

	result := make([]Variable, 0, len(values))
	for name, value := range values {
		result = append(result, Variable{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}
