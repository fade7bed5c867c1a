// Package queries embeds the Athena statement templates that build the
// emissions table and its views.
package queries

import (
	"embed"
	"io/fs"
)

// Template file names, in the order they must run.
const (
	CreateDatabase      = "create_database.sql"
	CreateTable         = "create_table.ddl"
	CreateView          = "create_view.sql"
	CreateAggregateView = "create_aggregate_view.sql"
	CreateForecastView  = "create_forecast_view.sql"
)

// Order lists the templates in dependency order: database, table, views.
var Order = []string{
	CreateDatabase,
	CreateTable,
	CreateView,
	CreateAggregateView,
	CreateForecastView,
}

//go:embed sql/*
var files embed.FS

// FS returns the templates rooted at their directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
