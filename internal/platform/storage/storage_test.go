// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/komik/internal/platform/storage"
)

/*
TestObjectKeys checks the cover and page layouts.
*/
func TestObjectKeys(t *testing.T) {
	now := time.UnixMilli(1718000000123)

	assert.Equal(t, "1718000000123.png", storage.CoverPath(now, "Cover.PNG"))
	assert.Equal(t, "ch-1/1718000000123-0.webp", storage.PagePath("ch-1", now, 0, "001.webp"))
	assert.Equal(t, "ch-1/1718000000123-2.jpg", storage.PagePath("ch-1", now, 2, "scan"))
}

/*
TestPublicURL prefers the configured public base and falls back to the endpoint.
*/
func TestPublicURL(t *testing.T) {
	withCDN, err := storage.NewMinioStore(storage.Options{
		Endpoint:  "localhost:9000",
		PublicURL: "https://cdn.komik.app/",
	}, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.komik.app/comic-pages/ch-1/1-0.jpg", withCDN.PublicURL("comic-pages", "ch-1/1-0.jpg"))

	direct, err := storage.NewMinioStore(storage.Options{Endpoint: "localhost:9000"}, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/comic-covers/1.jpg", direct.PublicURL("comic-covers", "1.jpg"))
}
