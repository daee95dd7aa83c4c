// Package main: Repository katmanı başlatma.
//
// Portfolyo verisi harici backend'dedir; yerelde sadece oturum tablosu vardır.
package main

import (
	"database/sql"

	"github.com/portfolyo/site/repository"
)

// Repositories, repository instance'larını tutan container struct.
type Repositories struct {
	Session repository.SessionRepository
}

// initRepositories, tüm repository'leri oluşturur.
func initRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Session: repository.NewSQLiteSessionRepo(db),
	}
}
