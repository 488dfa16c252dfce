// Package persistence provides the database-backed snapshot store for the
// portal cache, using GORM with SQLite or PostgreSQL.
package persistence
