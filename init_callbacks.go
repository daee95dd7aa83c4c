// Package main: oturum callback wire-up.
//
// AuthService ws ve ProjectService'i tanımaz; oturum kapandığında ne
// olacağı burada bağlanır (Dependency Inversion).
package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/portfolyo/site/services"
	"github.com/portfolyo/site/ws"
)

// registerSessionCallbacks, logout / oturum silinmesi sonrası temizliği bağlar:
// oturumun sıralama editor'ü kapanır, açık sekmeleri login'e döner.
//
// Arka plandaki sıralama yazması backend'den 401 alırsa oturum da kapatılır;
// aynı temizlik OnLogout üzerinden çalışır.
func registerSessionCallbacks(auth services.AuthService, projects services.ProjectService, hub *ws.Hub, log *zap.Logger) {
	auth.OnLogout(func(sessionID string) {
		projects.CloseEditor(sessionID)
		hub.DisconnectSession(sessionID)
	})
	projects.OnSessionRejected(func(sessionID string) {
		if err := auth.Logout(context.Background(), sessionID); err != nil {
			log.Warn("failed to end rejected session", zap.Error(err))
		}
	})
}
