// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"postgres_scheme", "postgres://u:p@localhost:5432/manabase", "pgx5://u:p@localhost:5432/manabase"},
		{"postgresql_scheme", "postgresql://localhost/manabase", "pgx5://localhost/manabase"},
		{"already_pgx5", "pgx5://localhost/manabase", "pgx5://localhost/manabase"},
		{"keyword_dsn_untouched", "host=localhost dbname=manabase", "host=localhost dbname=manabase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
		})
	}
}
