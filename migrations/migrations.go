// Package migrations embeds the SQL schema so cmd/migrate and integration tests share it
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var FS embed.FS

const (
	Up   = "up"
	Down = "down"
)

// Migration is one versioned SQL file
type Migration struct {
	Version string // "000001"
	Name    string // "000001_create_authors.up.sql"
	SQL     string
}

// Load returns the migrations for a direction: ascending for up, descending for down
func Load(direction string) ([]Migration, error) {
	if direction != Up && direction != Down {
		return nil, fmt.Errorf("unknown migration direction %q", direction)
	}

	names, err := fs.Glob(FS, "*."+direction+".sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	if direction == Down {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	}

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		data, err := FS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		version, _, _ := strings.Cut(name, "_")
		out = append(out, Migration{Version: version, Name: name, SQL: string(data)})
	}
	return out, nil
}
