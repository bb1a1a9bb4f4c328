// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/komik/internal/platform/migration"
)

/*
TestPgx5DSN rewrites only the postgres schemes.
*/
func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"postgres://u:p@db:5432/komik", "pgx5://u:p@db:5432/komik"},
		{"postgresql://u:p@db/komik?sslmode=disable", "pgx5://u:p@db/komik?sslmode=disable"},
		{"pgx5://u:p@db/komik", "pgx5://u:p@db/komik"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.Pgx5DSN(tt.input))
		})
	}
}
